package ui

// FocusManager tracks which form field has focus and rotates through them
// in tab order, wrapping at both ends.
type FocusManager struct {
	order    []string
	index    int
	OnChange func(from, to string)
}

// NewFocusManager focuses the first id of order.
func NewFocusManager(order ...string) *FocusManager {
	return &FocusManager{order: order}
}

// Current returns the focused id, or "" when there is nothing to focus.
func (f *FocusManager) Current() string {
	if len(f.order) == 0 {
		return ""
	}
	return f.order[f.index]
}

// Next moves focus forward and returns the new id.
func (f *FocusManager) Next() string {
	return f.move(1)
}

// Prev moves focus backward and returns the new id.
func (f *FocusManager) Prev() string {
	return f.move(-1)
}

// SetFocus focuses id. It returns false if id is not in the order.
func (f *FocusManager) SetFocus(id string) bool {
	for i, o := range f.order {
		if o == id {
			f.jump(i)
			return true
		}
	}
	return false
}

func (f *FocusManager) move(delta int) string {
	if len(f.order) == 0 {
		return ""
	}
	n := len(f.order)
	f.jump(((f.index+delta)%n + n) % n)
	return f.Current()
}

func (f *FocusManager) jump(i int) {
	from := f.Current()
	f.index = i
	if to := f.Current(); f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
