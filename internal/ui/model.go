package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/backend"
	"github.com/atomicstack/tagsort/internal/data/dispatcher"
	"github.com/atomicstack/tagsort/internal/keyscope"
	"github.com/atomicstack/tagsort/internal/settings"
	"github.com/atomicstack/tagsort/internal/state"
	"github.com/atomicstack/tagsort/internal/suggest"
	"github.com/atomicstack/tagsort/internal/theme"
	"github.com/atomicstack/tagsort/internal/ui/command"
	uistate "github.com/atomicstack/tagsort/internal/ui/state"
	"github.com/atomicstack/tagsort/internal/vault"
)

type Mode int

const (
	ModeRules Mode = iota
	ModeRuleForm
)

const noticeLifetime = 5 * time.Second

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures NewModel.
type Options struct {
	Vault        *vault.Vault
	Settings     settings.Settings
	SettingsPath string
	Watcher      *backend.Watcher
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	PanelRows    int
	// StaticCursor disables cursor blinking in the form inputs.
	StaticCursor bool
	// Clipboard replaces the system clipboard writer.
	Clipboard func(string) error
}

// Model implements the Bubble Tea model for the rules screen and rule form.
type Model struct {
	rules        *uistate.Rules
	vault        *vault.Vault
	settingsPath string
	loading      bool
	pendingID    string
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	notices      []string
	noticeExpire time.Time
	lastReport   *vault.Report
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	backend      *backend.Watcher
	backendErr   string
	showFooter   bool
	verbose      bool
	panelRows    int
	staticCursor bool
	clipboard    func(string) error

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	mode       Mode
	form       *ruleForm
	scopes     *keyscope.Stack
	layer      *suggest.Layer
	folders    state.FolderStore
	tags       state.TagStore
	dispatcher *dispatcher.Dispatcher
}

// NewModel initialises the UI state with the persisted rules and configuration.
func NewModel(opts Options) *Model {
	folders := state.NewFolderStore()
	tags := state.NewTagStore()
	s := opts.Settings
	s.Normalize()
	m := &Model{
		rules:        uistate.NewRules(s.Rules),
		vault:        opts.Vault,
		settingsPath: opts.SettingsPath,
		backend:      opts.Watcher,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		panelRows:    opts.PanelRows,
		staticCursor: opts.StaticCursor,
		clipboard:    opts.Clipboard,
		bus:          command.New(context.Background()),
		mode:         ModeRules,
		scopes:       keyscope.NewStack(),
		layer:        suggest.NewLayer(),
		folders:      folders,
		tags:         tags,
		dispatcher:   dispatcher.New(folders, tags),
	}
	if m.panelRows <= 0 {
		m.panelRows = suggest.DefaultRows
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.layer.SetSize(m.width, m.height)
	m.syncViewport()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return m.scanCmd()
}

// Update responds to Bubble Tea messages. Keys reach the open suggestion
// panels' scopes and mouse events reach the floating layer before anything
// else sees them.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	switch ev := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.scopes.Dispatch(ev); handled {
			return m, m.finishUpdate(append(cmds, cmd))
		}
	case tea.MouseMsg:
		if m.layer.HandleMouse(ev) {
			return m, m.finishUpdate(cmds)
		}
	}

	handled, cmd := m.handleActiveForm(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled {
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
		reflect.TypeOf(organiseResultMsg{}):  m.handleOrganiseResultMsg,
		reflect.TypeOf(settingsSavedMsg{}):   m.handleSettingsSavedMsg,
		reflect.TypeOf(clipboardResultMsg{}): m.handleClipboardResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Mode reports which screen is active.
func (m *Model) Mode() Mode {
	return m.mode
}

// Rules returns a copy of the current rules.
func (m *Model) Rules() []settings.Rule {
	return uistate.CloneRules(m.rules.Items)
}
