package ui

import tea "github.com/charmbracelet/bubbletea"

// OverlayStack holds the open modals. The topmost receives input first.
type OverlayStack struct {
	stack []View
}

// Push opens v on top of the stack.
func (s *OverlayStack) Push(v View) {
	s.stack = append(s.stack, v)
}

// Pop closes and returns the top modal, or nil when none is open.
func (s *OverlayStack) Pop() View {
	if len(s.stack) == 0 {
		return nil
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// Peek returns the top modal without removing it, or nil.
func (s *OverlayStack) Peek() View {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Len returns the number of open modals.
func (s *OverlayStack) Len() int {
	return len(s.stack)
}

// Clear closes every modal.
func (s *OverlayStack) Clear() {
	s.stack = nil
}

// UpdateTop passes msg to the top modal and stores the View it returns.
// The bool is false when no modal is open.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	v, cmd := s.stack[len(s.stack)-1].Update(msg)
	s.stack[len(s.stack)-1] = v
	return cmd, true
}
