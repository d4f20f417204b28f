package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_DefaultTimeout(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, NewTracker(0).Timeout())
	assert.Equal(t, 100*time.Millisecond, NewTracker(-time.Second).Timeout())
	assert.Equal(t, 250*time.Millisecond, NewTracker(250*time.Millisecond).Timeout())
}

func TestTracker_HeldUntilTimeout(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name        string
		elapsed     time.Duration
		expectHeld  bool
		expectFreed []Button
	}{
		{name: "immediately after press", elapsed: 0, expectHeld: true},
		{name: "just before timeout", elapsed: 99 * time.Millisecond, expectHeld: true},
		{name: "one nanosecond short", elapsed: DefaultKeyTimeout - 1, expectHeld: true},
		{name: "exactly at timeout", elapsed: DefaultKeyTimeout, expectFreed: []Button{A}},
		{name: "well past timeout", elapsed: time.Second, expectFreed: []Button{A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultKeyTimeout)
			assert.True(t, tr.Press(A, base))

			released := tr.Expire(base.Add(tt.elapsed))
			assert.Equal(t, tt.expectFreed, released)
			assert.Equal(t, tt.expectHeld, tr.IsHeld(A))
		})
	}
}

func TestTracker_RepeatRefreshes(t *testing.T) {
	base := time.Unix(1000, 0)
	tr := NewTracker(DefaultKeyTimeout)

	assert.True(t, tr.Press(Left, base))
	// key repeat every 40ms keeps the button down
	for i := 1; i <= 10; i++ {
		now := base.Add(time.Duration(i) * 40 * time.Millisecond)
		assert.Empty(t, tr.Expire(now))
		assert.False(t, tr.Press(Left, now), "repeat must not add a second entry")
	}

	lastRepeat := base.Add(400 * time.Millisecond)
	assert.Empty(t, tr.Expire(lastRepeat.Add(99*time.Millisecond)))
	assert.Equal(t, []Button{Left}, tr.Expire(lastRepeat.Add(100*time.Millisecond)))
	assert.Empty(t, tr.Held())
}

func TestTracker_ExpireOrderIsDeterministic(t *testing.T) {
	base := time.Unix(1000, 0)
	tr := NewTracker(DefaultKeyTimeout)

	tr.Press(Select, base)
	tr.Press(A, base)
	tr.Press(Up, base)

	assert.Equal(t, []Button{Up, A, Select}, tr.Held())
	assert.Equal(t, []Button{Up, A, Select}, tr.Expire(base.Add(time.Second)))
}

func TestTracker_PartialExpiry(t *testing.T) {
	base := time.Unix(1000, 0)
	tr := NewTracker(DefaultKeyTimeout)

	tr.Press(B, base)
	tr.Press(Start, base.Add(60*time.Millisecond))

	assert.Equal(t, []Button{B}, tr.Expire(base.Add(100*time.Millisecond)))
	assert.True(t, tr.IsHeld(Start))
	assert.Equal(t, []Button{Start}, tr.Expire(base.Add(160*time.Millisecond)))
}

func TestTracker_ReleaseAll(t *testing.T) {
	base := time.Unix(1000, 0)
	tr := NewTracker(DefaultKeyTimeout)
	tr.Press(Right, base)
	tr.Press(B, base)

	assert.Equal(t, []Button{Right, B}, tr.ReleaseAll())
	assert.Empty(t, tr.Held())
	assert.Nil(t, tr.Expire(base.Add(time.Second)))
}
