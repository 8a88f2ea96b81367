package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a toast driven by a movable clock.
func fakeClock(t0 time.Time) (*Toast, *time.Time) {
	now := t0
	toast := NewToast()
	toast.now = func() time.Time { return now }
	return toast, &now
}

func TestToast_ExpiresAfterDuration(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	toast, now := fakeClock(t0)

	cmd := toast.Show("Bird created", false)
	require.NotNil(t, cmd)

	assert.True(t, toast.Visible(t0))
	assert.True(t, toast.Visible(t0.Add(2999*time.Millisecond)))
	assert.False(t, toast.Visible(t0.Add(3001*time.Millisecond)))

	*now = t0.Add(time.Second)
	assert.Contains(t, toast.View(), "Bird created")
	*now = t0.Add(3001 * time.Millisecond)
	assert.Empty(t, toast.View())
}

func TestToast_SecondShowRestartsTimer(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	toast, now := fakeClock(t0)

	toast.Show("first", false)
	firstSeq := toast.seq
	*now = t0.Add(2 * time.Second)
	toast.Show("second", true)

	// The first message's expiry must not close the second one.
	assert.False(t, toast.Expire(toastExpiredMsg{seq: firstSeq}))
	assert.Equal(t, "second", toast.Message)
	assert.True(t, toast.Visible(t0.Add(4*time.Second)))
	assert.False(t, toast.Visible(t0.Add(5001*time.Millisecond)))

	assert.True(t, toast.Expire(toastExpiredMsg{seq: toast.seq}))
	assert.Empty(t, toast.Message)
	assert.False(t, toast.Expire(toastExpiredMsg{seq: toast.seq}), "close must not run twice")
}

func TestToast_DismissAndErrorStyle(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	toast, _ := fakeClock(t0)

	toast.Show("Network error: refused", true)
	view := toast.View()
	assert.True(t, strings.Contains(view, "✕"), "error toast view: %q", view)

	toast.Dismiss()
	assert.False(t, toast.Visible(t0))
	assert.Empty(t, toast.View())
}
