package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeRules {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursor(m.rules.MoveCursorPageUp(m.maxVisibleItems()))
	case "pgdown":
		m.moveCursor(m.rules.MoveCursorPageDown(m.maxVisibleItems()))
	case "home":
		m.moveCursor(m.rules.MoveCursorHome())
	case "end":
		m.moveCursor(m.rules.MoveCursorEnd())
	case "a":
		return m.openRuleForm(-1)
	case "e", "enter":
		if _, ok := m.rules.Current(); ok {
			return m.openRuleForm(m.rules.Cursor)
		}
	case "d":
		return m.deleteCurrentRule()
	case "o":
		return m.organiseCmd("organise:all", "Organising all rules", m.Rules())
	case "O":
		if rule, ok := m.rules.Current(); ok {
			return m.organiseCmd("organise:rule", fmt.Sprintf("Organising #%s", rule.Tag), m.Rules()[m.rules.Cursor:m.rules.Cursor+1])
		}
	case "y":
		return m.copyReportCmd()
	}
	return nil
}

func (m *Model) moveCursorUp() {
	m.moveCursor(m.rules.MoveCursorUp())
}

func (m *Model) moveCursorDown() {
	m.moveCursor(m.rules.MoveCursorDown())
}

func (m *Model) moveCursor(moved bool) {
	if moved {
		events.UI.RuleCursor(m.rules.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.rules.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) deleteCurrentRule() tea.Cmd {
	if m.loading {
		return nil
	}
	removed, ok := m.rules.Remove(m.rules.Cursor)
	if !ok {
		return nil
	}
	events.UI.RuleDelete(removed.Tag, removed.Folder)
	m.syncViewport()
	m.setInfo(fmt.Sprintf("Deleted rule #%s", removed.Tag))
	return m.saveSettingsCmd()
}
