package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastDuration is how long a toast stays up without interaction.
const ToastDuration = 3 * time.Second

// toastExpiredMsg fires ToastDuration after the toast with seq was shown.
type toastExpiredMsg struct {
	seq int
}

// Toast shows one transient message at a time. Showing a new message
// restarts the dismissal: expiries scheduled for older messages are ignored,
// so a newer message is never closed early and close never runs twice.
type Toast struct {
	Message   string
	IsError   bool
	seq       int
	expiresAt time.Time
	now       func() time.Time
}

// NewToast returns a hidden toast using the wall clock.
func NewToast() *Toast {
	return &Toast{now: time.Now}
}

// Show replaces the current message and schedules its dismissal.
func (t *Toast) Show(message string, isError bool) tea.Cmd {
	t.seq++
	seq := t.seq
	t.Message = message
	t.IsError = isError
	t.expiresAt = t.now().Add(ToastDuration)
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Expire dismisses the toast if msg belongs to the message on screen.
// It reports whether the toast was closed.
func (t *Toast) Expire(msg toastExpiredMsg) bool {
	if msg.seq != t.seq || t.Message == "" {
		return false
	}
	t.Dismiss()
	return true
}

// Dismiss hides the toast immediately.
func (t *Toast) Dismiss() {
	t.Message = ""
	t.IsError = false
	t.expiresAt = time.Time{}
}

// Visible reports whether a message is on screen at now.
func (t *Toast) Visible(now time.Time) bool {
	return t.Message != "" && now.Before(t.expiresAt)
}

// View renders the toast, or "" when hidden.
func (t *Toast) View() string {
	if !t.Visible(t.now()) {
		return ""
	}
	if t.IsError {
		return Styles.ToastError.Render("✕ " + t.Message)
	}
	return Styles.Toast.Render("✓ " + t.Message)
}
