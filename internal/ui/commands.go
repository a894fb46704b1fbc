package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/logging"
	"github.com/atomicstack/tagsort/internal/logging/events"
	"github.com/atomicstack/tagsort/internal/settings"
	"github.com/atomicstack/tagsort/internal/ui/command"
	"github.com/atomicstack/tagsort/internal/vault"
)

// maxNotices caps how many failures are listed under the rules table.
const maxNotices = 5

type organiseResultMsg struct {
	id     string
	report vault.Report
	err    error
}

type settingsSavedMsg struct {
	err error
}

type clipboardResultMsg struct {
	err error
}

// organiseCmd runs rules against the vault in the background.
func (m *Model) organiseCmd(id, label string, rules []settings.Rule) tea.Cmd {
	if m.loading {
		return nil
	}
	if m.vault == nil {
		m.errMsg = "no vault open"
		return nil
	}
	if len(rules) == 0 {
		m.setInfo("No rules to run.")
		return nil
	}
	v := m.vault
	vaultRules := settings.Settings{Rules: rules}.VaultRules()
	m.loading = true
	m.pendingID = id
	m.pendingLabel = label
	m.errMsg = ""
	m.forceClearInfo()
	return m.bus.Execute(command.Request{ID: id, Label: label, Handler: func(ctx context.Context) tea.Msg {
		report, err := v.Organise(ctx, vaultRules)
		return organiseResultMsg{id: id, report: report, err: err}
	}})
}

func (m *Model) handleOrganiseResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(organiseResultMsg)
	if !ok {
		return nil
	}
	if result.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	report := result.report
	m.lastReport = &report
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		events.Action.Error(result.err)
	} else {
		m.setInfo(report.Summary())
		events.Action.Success(report.Summary())
	}
	m.setNotices(reportNotices(report, m.verbose))
	if m.backend != nil {
		m.backend.Rescan()
		return nil
	}
	return m.scanCmd()
}

// reportNotices lists failures, and moves too when verbose.
func reportNotices(report vault.Report, verbose bool) []string {
	var lines []string
	if verbose {
		for _, mv := range report.Moved {
			lines = append(lines, fmt.Sprintf("moved %s -> %s", mv.From, mv.To))
		}
	}
	for _, f := range report.Failures {
		lines = append(lines, fmt.Sprintf("failed %s: %v", f.Note, f.Err))
	}
	if len(lines) > maxNotices {
		extra := len(lines) - maxNotices
		lines = append(lines[:maxNotices], fmt.Sprintf("…and %d more (y copies the full report)", extra))
	}
	return lines
}

// saveSettingsCmd persists the current rules.
func (m *Model) saveSettingsCmd() tea.Cmd {
	if m.settingsPath == "" {
		return nil
	}
	path := m.settingsPath
	s := settings.Settings{Rules: m.Rules()}
	return m.bus.Execute(command.Request{ID: "settings:save", Label: "Saving rules", Handler: func(context.Context) tea.Msg {
		return settingsSavedMsg{err: settings.Save(path, s)}
	}})
}

func (m *Model) handleSettingsSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(settingsSavedMsg)
	if !ok {
		return nil
	}
	if saved.err != nil {
		logging.Error(saved.err)
		m.errMsg = saved.err.Error()
		return nil
	}
	if m.verbose {
		m.setInfo(fmt.Sprintf("Saved rules to %s", m.settingsPath))
	}
	return nil
}

// copyReportCmd puts the last organise report on the clipboard.
func (m *Model) copyReportCmd() tea.Cmd {
	if m.lastReport == nil {
		m.setInfo("Nothing to copy yet.")
		return nil
	}
	text := m.lastReport.String()
	write := m.clipboard
	return m.bus.Execute(command.Request{ID: "report:copy", Label: "Copy report", Handler: func(context.Context) tea.Msg {
		return clipboardResultMsg{err: write(text)}
	}})
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		logging.Error(result.err)
		m.errMsg = fmt.Sprintf("copy report: %v", result.err)
		return nil
	}
	m.setInfo("Copied report to clipboard.")
	return nil
}
