// Package keyscope implements a stack of key binding scopes. The host
// consults the stack before its own key handling, so whichever context was
// opened last (for example a suggestion panel) sees keys first.
package keyscope

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a matched key. Returning false lets the key fall through
// to the host's default handling.
type Handler func(msg tea.KeyMsg) (tea.Cmd, bool)

type entry struct {
	binding key.Binding
	handler Handler
}

// Scope is a named set of key bindings.
type Scope struct {
	name    string
	entries []entry
}

// New creates an empty scope.
func New(name string) *Scope {
	return &Scope{name: name}
}

// Name returns the scope's name.
func (s *Scope) Name() string {
	return s.name
}

// Register binds handler to every key in binding.
func (s *Scope) Register(binding key.Binding, handler Handler) {
	s.entries = append(s.entries, entry{binding: binding, handler: handler})
}

// Bindings lists the scope's bindings in registration order.
func (s *Scope) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.binding)
	}
	return out
}

// lookup returns the handler for msg, if any binding matches.
func (s *Scope) lookup(msg tea.KeyMsg) (Handler, bool) {
	for _, e := range s.entries {
		if !e.binding.Enabled() || e.handler == nil {
			continue
		}
		if key.Matches(msg, e.binding) {
			return e.handler, true
		}
	}
	return nil, false
}
