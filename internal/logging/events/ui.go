package events

import "github.com/atomicstack/tagsort/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type formReason string

const (
	FormReasonEscape formReason = "escape"
	FormReasonEmpty  formReason = "empty"
)

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) RuleCursor(cursor int) {
	logging.Trace("rules.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) FormOpen(mode string, index int) {
	logging.Trace("form.open", map[string]interface{}{"mode": mode, "index": index})
}

func (UITracer) FormFocus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (UITracer) FormSubmit(tag, folder string) {
	logging.Trace("form.submit", map[string]interface{}{"tag": tag, "folder": folder})
}

func (UITracer) FormCancel(reason formReason) {
	logging.Trace("form.cancel", map[string]interface{}{"reason": string(reason)})
}

func (UITracer) RuleDelete(tag, folder string) {
	logging.Trace("rules.delete", map[string]interface{}{"tag": tag, "folder": folder})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
