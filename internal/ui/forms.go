package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/logging/events"
	"github.com/atomicstack/tagsort/internal/settings"
	"github.com/atomicstack/tagsort/internal/sources"
	"github.com/atomicstack/tagsort/internal/state"
	"github.com/atomicstack/tagsort/internal/suggest"
	"github.com/atomicstack/tagsort/internal/vault"
)

type formField int

const (
	fieldTag formField = iota
	fieldFolder
	fieldCount
)

const (
	fieldLabelWidth = 8
	minFieldWidth   = 16
	maxFieldWidth   = 48
)

var errTagRequired = errors.New("tag is required")

func (f formField) String() string {
	switch f {
	case fieldTag:
		return "tag"
	case fieldFolder:
		return "folder"
	default:
		return "none"
	}
}

// ruleForm edits a single rule. Each field carries a suggestion binding; the
// anchors read the field positions recorded by the last render.
type ruleForm struct {
	index       int
	tagInput    textinput.Model
	folderInput textinput.Model
	tag         *suggest.Binding[state.TagEntry]
	folder      *suggest.Binding[state.FolderEntry]
	focus       formField
	rects       [fieldCount]suggest.Rect
	err         string
}

func newRuleForm(m *Model, index int, rule settings.Rule) *ruleForm {
	f := &ruleForm{index: index, focus: fieldCount}
	f.tagInput = newFieldInput("work", rule.Tag, m.staticCursor)
	f.folderInput = newFieldInput(vault.RootFolder, rule.Folder, m.staticCursor)
	host := suggest.Host{Scopes: m.scopes, Layer: m.layer}
	clearErr := suggest.WithOnChange(func(string) { f.err = "" })
	rows := suggest.WithRows(m.panelRows)
	f.tag = suggest.Bind[state.TagEntry]("tag", &f.tagInput, sources.NewTags(m.tags), host, f.anchor(fieldTag), rows, clearErr)
	f.folder = suggest.Bind[state.FolderEntry]("folder", &f.folderInput, sources.NewFolders(m.folders), host, f.anchor(fieldFolder), rows, clearErr)
	return f
}

func newFieldInput(placeholder, value string, static bool) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	if styles.FieldPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FieldPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	if static {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

func (f *ruleForm) anchor(field formField) suggest.Anchor {
	return suggest.AnchorFunc(func() suggest.Rect {
		return f.rects[field]
	})
}

func (f *ruleForm) title() string {
	if f.index < 0 {
		return "New rule"
	}
	return fmt.Sprintf("Edit rule %d", f.index+1)
}

func (f *ruleForm) setWidth(width int) {
	w := width - fieldLabelWidth - 2
	if w > maxFieldWidth {
		w = maxFieldWidth
	}
	if w < minFieldWidth {
		w = minFieldWidth
	}
	f.tagInput.Width = w
	f.folderInput.Width = w
}

func (f *ruleForm) fieldWidth() int {
	return f.tagInput.Width + 1
}

// setFocus moves focus to field, blurring the previous one first so its
// panel closes before the next one can open.
func (f *ruleForm) setFocus(field formField) tea.Cmd {
	if field == f.focus {
		return nil
	}
	f.blurField(f.focus)
	f.focus = field
	switch field {
	case fieldTag:
		events.UI.FormFocus(field.String())
		return f.tag.Focus()
	case fieldFolder:
		events.UI.FormFocus(field.String())
		return f.folder.Focus()
	}
	return nil
}

func (f *ruleForm) blurField(field formField) {
	switch field {
	case fieldTag:
		f.tag.Blur()
	case fieldFolder:
		f.folder.Blur()
	}
}

func (f *ruleForm) cycleFocus(delta int) tea.Cmd {
	next := fieldTag
	if f.focus != fieldCount {
		next = formField(suggest.Wrap(int(f.focus)+delta, int(fieldCount)))
	}
	return f.setFocus(next)
}

func (f *ruleForm) updateFocused(msg tea.Msg) tea.Cmd {
	switch f.focus {
	case fieldTag:
		return f.tag.Update(msg)
	case fieldFolder:
		return f.folder.Update(msg)
	}
	return nil
}

func (f *ruleForm) fieldAt(x, y int) formField {
	for field := fieldTag; field < fieldCount; field++ {
		r := f.rects[field]
		hit := r
		hit.X = 0
		hit.W = r.X + r.W
		if hit.Contains(x, y) {
			return field
		}
	}
	return fieldCount
}

// rule validates the fields.
func (f *ruleForm) rule() (settings.Rule, error) {
	tag := vault.NormalizeTag(f.tagInput.Value())
	if tag == "" {
		return settings.Rule{}, errTagRequired
	}
	folder, err := vault.NormalizeFolder(f.folderInput.Value())
	if err != nil {
		return settings.Rule{}, err
	}
	return settings.Rule{Tag: tag, Folder: folder}, nil
}

func (f *ruleForm) empty() bool {
	return strings.TrimSpace(f.tagInput.Value()) == "" && strings.TrimSpace(f.folderInput.Value()) == ""
}

func (f *ruleForm) close() {
	f.tag.Blur()
	f.folder.Blur()
	f.focus = fieldCount
}

func (m *Model) openRuleForm(index int) tea.Cmd {
	if m.loading {
		return nil
	}
	rule := settings.Rule{}
	mode := "add"
	if index >= 0 {
		current, ok := m.rules.Current()
		if !ok {
			return nil
		}
		rule = current
		mode = "edit"
	}
	events.UI.FormOpen(mode, index)
	m.form = newRuleForm(m, index, rule)
	m.form.setWidth(m.width)
	m.mode = ModeRuleForm
	m.errMsg = ""
	return m.form.setFocus(fieldTag)
}

func (m *Model) closeRuleForm() {
	if m.form != nil {
		m.form.close()
	}
	m.form = nil
	m.mode = ModeRules
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModeRuleForm || m.form == nil {
		return false, nil
	}
	switch ev := msg.(type) {
	case tea.KeyMsg:
		return true, m.handleFormKey(ev)
	case tea.MouseMsg:
		return true, m.handleFormMouse(ev)
	case tea.WindowSizeMsg:
		return false, nil
	default:
		// cursor blinks and other input-internal messages
		return false, m.form.updateFocused(msg)
	}
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return f.cycleFocus(1)
	case "shift+tab":
		return f.cycleFocus(-1)
	case "esc":
		events.UI.FormCancel(events.FormReasonEscape)
		m.closeRuleForm()
		return nil
	case "enter":
		return m.submitRuleForm()
	}
	return f.updateFocused(msg)
}

func (m *Model) handleFormMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	f := m.form
	field := f.fieldAt(msg.X, msg.Y)
	if field == fieldCount {
		f.blurField(f.focus)
		f.focus = fieldCount
		return nil
	}
	return f.setFocus(field)
}

func (m *Model) submitRuleForm() tea.Cmd {
	f := m.form
	if f.index < 0 && f.empty() {
		events.UI.FormCancel(events.FormReasonEmpty)
		m.closeRuleForm()
		return nil
	}
	rule, err := f.rule()
	if err != nil {
		f.err = err.Error()
		return nil
	}
	events.UI.FormSubmit(rule.Tag, rule.Folder)
	index := f.index
	m.closeRuleForm()
	if index >= 0 {
		m.rules.Replace(index, rule)
		m.rules.Cursor = index
		m.setInfo(fmt.Sprintf("Updated rule #%s -> %s", rule.Tag, rule.Folder))
	} else {
		m.rules.Add(rule)
		m.setInfo(fmt.Sprintf("Added rule #%s -> %s", rule.Tag, rule.Folder))
	}
	m.syncViewport()
	return m.saveSettingsCmd()
}
