package keyscope

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the active scopes, most recently pushed on top.
type Stack struct {
	scopes []*Scope
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push activates scope on top of the stack. A scope that is already active
// is moved to the top rather than stacked twice.
func (s *Stack) Push(scope *Scope) {
	if scope == nil {
		return
	}
	s.remove(scope)
	s.scopes = append(s.scopes, scope)
}

// Pop deactivates scope. It reports false when the scope was not active.
func (s *Stack) Pop(scope *Scope) bool {
	return s.remove(scope)
}

// Dispatch offers msg to the scopes from the top down. The first scope with
// a matching binding decides: its handler either consumes the key or lets it
// fall through to the host.
func (s *Stack) Dispatch(msg tea.KeyMsg) (tea.Cmd, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		handler, ok := s.scopes[i].lookup(msg)
		if !ok {
			continue
		}
		return handler(msg)
	}
	return nil, false
}

// Len returns the number of active scopes.
func (s *Stack) Len() int {
	return len(s.scopes)
}

// Top returns the most recently pushed scope.
func (s *Stack) Top() *Scope {
	if len(s.scopes) == 0 {
		return nil
	}
	return s.scopes[len(s.scopes)-1]
}

// Contains reports whether scope is active.
func (s *Stack) Contains(scope *Scope) bool {
	for _, sc := range s.scopes {
		if sc == scope {
			return true
		}
	}
	return false
}

func (s *Stack) remove(scope *Scope) bool {
	for i, sc := range s.scopes {
		if sc == scope {
			s.scopes = append(s.scopes[:i], s.scopes[i+1:]...)
			return true
		}
	}
	return false
}
