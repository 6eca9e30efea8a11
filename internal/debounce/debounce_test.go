package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 10 * time.Millisecond

func TestDebouncer_DeliversAfterDelay(t *testing.T) {
	d := New[string](testDelay)

	start := time.Now()
	cmd := d.Push("food")
	require.NotNil(t, cmd)
	assert.True(t, d.Pending())

	msg := cmd()
	assert.GreaterOrEqual(t, time.Since(start), testDelay)

	value, ok := d.Settled(msg)
	require.True(t, ok)
	assert.Equal(t, "food", value)
	assert.False(t, d.Pending())
}

func TestDebouncer_LatestWins(t *testing.T) {
	d := New[string](testDelay)

	first := d.Push("f")
	second := d.Push("fo")
	third := d.Push("foo")

	// Superseded commands return immediately with nothing.
	assert.Nil(t, first())
	assert.Nil(t, second())

	value, ok := d.Settled(third())
	require.True(t, ok)
	assert.Equal(t, "foo", value)
}

func TestDebouncer_RejectsMessageInFlight(t *testing.T) {
	d := New[string](time.Millisecond)

	stale := d.Push("a")()
	require.NotNil(t, stale)

	// A newer push lands before the stale delivery is processed.
	_ = d.Push("ab")

	_, ok := d.Settled(stale)
	assert.False(t, ok)
}

func TestDebouncer_Stop(t *testing.T) {
	d := New[string](time.Hour)

	cmd := d.Push("never")
	d.Stop()

	done := make(chan any, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("stopped debouncer kept its timer running")
	}
	assert.False(t, d.Pending())
}

func TestDebouncer_StopRejectsDeliveredMessage(t *testing.T) {
	d := New[int](time.Millisecond)

	msg := d.Push(42)()
	d.Stop()

	_, ok := d.Settled(msg)
	assert.False(t, ok)
}

func TestDebouncer_IgnoresOtherDebouncers(t *testing.T) {
	a := New[string](time.Millisecond)
	b := New[string](time.Millisecond)

	msgA := a.Push("x")()
	_ = b.Push("x")

	_, ok := b.Settled(msgA)
	assert.False(t, ok)

	_, ok = a.Settled("not a debounce message")
	assert.False(t, ok)
}
