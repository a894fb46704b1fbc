package events

import "github.com/atomicstack/tagsort/internal/logging"

type VaultTracer struct{}

var Vault = VaultTracer{}

func (VaultTracer) Scan(root string, folders, notes, tags int) {
	logging.Trace("vault.scan", map[string]interface{}{
		"root":    root,
		"folders": folders,
		"notes":   notes,
		"tags":    tags,
	})
}

func (VaultTracer) Move(from, to string) {
	logging.Trace("vault.move", map[string]interface{}{"from": from, "to": to})
}

func (VaultTracer) Failure(note string, err error) {
	payload := map[string]interface{}{"note": note}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("vault.failure", payload)
}

func (VaultTracer) Watch(path string) {
	logging.Trace("vault.watch", map[string]interface{}{"path": path})
}
