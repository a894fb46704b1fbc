package events

import "github.com/atomicstack/tagsort/internal/logging"

type SuggestTracer struct{}

var Suggest = SuggestTracer{}

func (SuggestTracer) Open(id string, count int) {
	logging.Trace("suggest.open", map[string]interface{}{"id": id, "count": count})
}

func (SuggestTracer) Refresh(id string, count int) {
	logging.Trace("suggest.refresh", map[string]interface{}{"id": id, "count": count})
}

func (SuggestTracer) Close(id string) {
	logging.Trace("suggest.close", map[string]interface{}{"id": id})
}

func (SuggestTracer) Cursor(id string, index int) {
	logging.Trace("suggest.cursor", map[string]interface{}{"id": id, "index": index})
}

func (SuggestTracer) Select(id, text string) {
	logging.Trace("suggest.select", map[string]interface{}{"id": id, "text": text})
}
