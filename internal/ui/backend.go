package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/backend"
	"github.com/atomicstack/tagsort/internal/logging"
	"github.com/atomicstack/tagsort/internal/ui/command"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// scanCmd scans the vault once without a watcher and delivers the snapshot
// as a backend event.
func (m *Model) scanCmd() tea.Cmd {
	if m.vault == nil {
		return nil
	}
	v := m.vault
	return m.bus.Execute(command.Request{ID: "vault:scan", Label: "Scanning vault", Handler: func(ctx context.Context) tea.Msg {
		snap, err := v.Scan(ctx)
		if err != nil {
			logging.Error(err)
			return backendEventMsg{event: backend.Event{Kind: backend.KindSnapshot, Err: err}}
		}
		return backendEventMsg{event: backend.Event{Kind: backend.KindSnapshot, Data: snap}}
	}})
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendErr = res.Err.Error()
		return
	}
	m.backendErr = ""
	if m.form == nil {
		return
	}
	if res.FoldersUpdated && m.form.folder.IsOpen() {
		m.form.folder.Refresh()
	}
	if res.TagsUpdated && m.form.tag.IsOpen() {
		m.form.tag.Refresh()
	}
}
