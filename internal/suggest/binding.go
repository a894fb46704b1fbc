package suggest

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/keyscope"
	"github.com/atomicstack/tagsort/internal/logging/events"
)

// DefaultRows is the visible panel height when WithRows is not given.
const DefaultRows = 8

// Host carries the capabilities a binding borrows from the application: the
// keyboard scope stack its panel pushes onto and the layer it floats in.
type Host struct {
	Scopes *keyscope.Stack
	Layer  *Layer
}

// KeyMap lists the keys a binding claims while its panel is open.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the arrow, enter and escape bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up")),
		Down:    key.NewBinding(key.WithKeys("down")),
		Select:  key.NewBinding(key.WithKeys("enter")),
		Dismiss: key.NewBinding(key.WithKeys("esc")),
	}
}

type options struct {
	rows     int
	keys     KeyMap
	onChange func(string)
}

// Option configures Bind.
type Option func(*options)

// WithRows caps how many suggestions are visible at once.
func WithRows(rows int) Option {
	return func(o *options) {
		o.rows = rows
	}
}

// WithKeyMap overrides the navigation keys.
func WithKeyMap(keys KeyMap) Option {
	return func(o *options) {
		o.keys = keys
	}
}

// WithOnChange registers a hook run on every input change, including the
// synthetic change a source dispatches after writing a selection.
func WithOnChange(fn func(string)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// Binding attaches an autocomplete panel to a text input. It is closed until
// the input changes or gains focus and the source reports matches.
type Binding[T any] struct {
	id       string
	input    *textinput.Model
	source   Source[T]
	host     Host
	anchor   Anchor
	list     *List[T]
	panel    *Panel
	onChange func(string)
}

// Bind wires source to input. The input is updated in place; anchor supplies
// its on-screen position.
func Bind[T any](id string, input *textinput.Model, source Source[T], host Host, anchor Anchor, opts ...Option) *Binding[T] {
	o := options{rows: DefaultRows, keys: DefaultKeyMap()}
	for _, opt := range opts {
		opt(&o)
	}
	b := &Binding[T]{
		id:       id,
		input:    input,
		source:   source,
		host:     host,
		anchor:   anchor,
		onChange: o.onChange,
	}
	b.list = NewList(source.Render, b.choose)

	scope := keyscope.New("suggest:" + id)
	scope.Register(o.keys.Up, b.selectPrevious)
	scope.Register(o.keys.Down, b.selectNext)
	scope.Register(o.keys.Select, b.useSelected)
	scope.Register(o.keys.Dismiss, b.dismiss)
	b.panel = NewPanel(id, b.list, host.Scopes, scope, o.rows)
	return b
}

// Update forwards msg to the input and refreshes suggestions when the text
// changed.
func (b *Binding[T]) Update(msg tea.Msg) tea.Cmd {
	before := b.input.Value()
	var cmd tea.Cmd
	*b.input, cmd = b.input.Update(msg)
	if b.input.Value() != before {
		b.Changed()
	}
	return cmd
}

// Focus focuses the input and offers suggestions for its current text.
func (b *Binding[T]) Focus() tea.Cmd {
	cmd := b.input.Focus()
	b.refresh()
	return cmd
}

// Blur removes focus and closes the panel.
func (b *Binding[T]) Blur() {
	b.input.Blur()
	b.Close()
}

// Close hides the panel.
func (b *Binding[T]) Close() {
	b.panel.Close()
}

// Value implements Target.
func (b *Binding[T]) Value() string {
	return b.input.Value()
}

// SetValue implements Target. The cursor moves to the end of the new text.
func (b *Binding[T]) SetValue(value string) {
	b.input.SetValue(value)
	b.input.CursorEnd()
}

// Changed implements Target.
func (b *Binding[T]) Changed() {
	b.refresh()
	if b.onChange != nil {
		b.onChange(b.input.Value())
	}
}

// Refresh recomputes the suggestions for the current text without running
// the change hook. Hosts call it when the source's data changed underneath.
func (b *Binding[T]) Refresh() {
	b.refresh()
}

// ID returns the binding identifier.
func (b *Binding[T]) ID() string {
	return b.id
}

// IsOpen reports whether the suggestion panel is showing.
func (b *Binding[T]) IsOpen() bool {
	return b.panel.IsOpen()
}

// Focused reports whether the bound input has focus.
func (b *Binding[T]) Focused() bool {
	return b.input.Focused()
}

// List exposes the list controller.
func (b *Binding[T]) List() *List[T] {
	return b.list
}

// Panel exposes the floating panel.
func (b *Binding[T]) Panel() *Panel {
	return b.panel
}

// View renders the bound input.
func (b *Binding[T]) View() string {
	return b.input.View()
}

func (b *Binding[T]) refresh() {
	items, ok := b.source.Suggestions(b.input.Value())
	if !ok || len(items) == 0 {
		b.Close()
		return
	}
	b.list.SetSuggestions(items)
	b.panel.Open(b.host.Layer, b.anchor)
}

// choose hands item to the source. The panel is closed on every exit path,
// including a panicking Select.
func (b *Binding[T]) choose(item T, msg tea.Msg) {
	defer b.Close()
	if idx := b.list.SelectedIndex(); idx >= 0 {
		events.Suggest.Select(b.id, b.list.Elements()[idx].Text())
	}
	b.source.Select(item, Event{Msg: msg, Input: b})
}

func (b *Binding[T]) selectPrevious(msg tea.KeyMsg) (tea.Cmd, bool) {
	if composing(msg) {
		return nil, false
	}
	b.list.SetSelectedItem(b.list.SelectedIndex()-1, true)
	events.Suggest.Cursor(b.id, b.list.SelectedIndex())
	return nil, true
}

func (b *Binding[T]) selectNext(msg tea.KeyMsg) (tea.Cmd, bool) {
	if composing(msg) {
		return nil, false
	}
	b.list.SetSelectedItem(b.list.SelectedIndex()+1, true)
	events.Suggest.Cursor(b.id, b.list.SelectedIndex())
	return nil, true
}

func (b *Binding[T]) useSelected(msg tea.KeyMsg) (tea.Cmd, bool) {
	if composing(msg) {
		return nil, false
	}
	b.list.UseSelectedItem(msg)
	return nil, true
}

func (b *Binding[T]) dismiss(tea.KeyMsg) (tea.Cmd, bool) {
	b.Close()
	return nil, true
}

// composing reports whether msg arrived inside a bracketed paste. Terminals
// deliver no IME composition events, so this is the only guard available.
// Bubble Tea only sets Paste on rune messages, which never match the
// navigation bindings; the check keeps a paste-flagged navigation key with
// the input should one ever be delivered.
func composing(msg tea.KeyMsg) bool {
	return msg.Paste
}
