package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnimator(t *testing.T) (*Animator, *Store) {
	t.Helper()
	s := NewStore()
	s.Mount("row", wideRowMetrics())
	return NewAnimator(s), s
}

func TestAnimator_InterpolatesToTarget(t *testing.T) {
	a, s := newTestAnimator(t)
	base := time.Now()

	require.True(t, a.Start("row", 404, 300*time.Millisecond, EaseInOut, base))
	require.True(t, a.Active())

	// halfway through, ease-in-out crosses the midpoint exactly
	a.Advance(base.Add(150 * time.Millisecond))
	state, _ := s.Get("row")
	assert.InDelta(t, 202, state.Offset, 0.001)
	assert.True(t, a.ActiveRow("row"))

	a.Advance(base.Add(300 * time.Millisecond))
	state, _ = s.Get("row")
	assert.InDelta(t, 404, state.Offset, 0.001)
	assert.False(t, a.Active())
}

func TestAnimator_AdvancePastEndLandsOnTarget(t *testing.T) {
	a, s := newTestAnimator(t)
	base := time.Now()

	a.Start("row", 600, 300*time.Millisecond, EaseOut, base)
	a.Advance(base.Add(5 * time.Second))

	state, _ := s.Get("row")
	assert.InDelta(t, 600, state.Offset, 0.001)
	assert.False(t, a.Active())
}

func TestAnimator_LastWriterWins(t *testing.T) {
	a, s := newTestAnimator(t)
	base := time.Now()

	a.Start("row", 404, 300*time.Millisecond, EaseInOut, base)
	gen := a.Generation()

	// preempting mid-flight replaces the animation in place
	a.Advance(base.Add(100 * time.Millisecond))
	a.Start("row", 808, 300*time.Millisecond, EaseInOut, base.Add(100*time.Millisecond))
	assert.Greater(t, a.Generation(), gen)

	target, ok := a.Target("row")
	require.True(t, ok)
	assert.InDelta(t, 808, target, 0.001)

	// exactly one completion, at the newest target
	a.Advance(base.Add(time.Second))
	state, _ := s.Get("row")
	assert.InDelta(t, 808, state.Offset, 0.001)
	assert.False(t, a.Active())

	// the finished animation does not advance again
	assert.False(t, a.Advance(base.Add(2*time.Second)))
}

func TestAnimator_ClampsTarget(t *testing.T) {
	a, s := newTestAnimator(t)
	base := time.Now()

	a.Start("row", 9999, 300*time.Millisecond, EaseInOut, base)
	target, _ := a.Target("row")
	assert.InDelta(t, 1200, target, 0.001)

	a.Advance(base.Add(time.Second))
	state, _ := s.Get("row")
	assert.InDelta(t, 1200, state.Offset, 0.001)
}

func TestAnimator_NoOpAtRestOnTarget(t *testing.T) {
	a, s := newTestAnimator(t)
	base := time.Now()
	s.SetOffset("row", 1200)

	// already flush against the edge: nothing to animate
	assert.False(t, a.Start("row", 1500, 300*time.Millisecond, EaseInOut, base))
	assert.False(t, a.Active())

	assert.False(t, a.Start("ghost", 100, 300*time.Millisecond, EaseInOut, base))
}

func TestAnimator_ZeroDurationJumps(t *testing.T) {
	a, s := newTestAnimator(t)

	require.True(t, a.Start("row", 404, 0, EaseInOut, time.Now()))
	state, _ := s.Get("row")
	assert.InDelta(t, 404, state.Offset, 0.001)
	assert.False(t, a.Active())
}

func TestAnimator_Cancel(t *testing.T) {
	a, s := newTestAnimator(t)
	base := time.Now()

	a.Start("row", 404, 300*time.Millisecond, EaseInOut, base)
	a.Advance(base.Add(150 * time.Millisecond))
	a.Cancel("row")

	// offset stays where the last frame put it
	state, _ := s.Get("row")
	assert.InDelta(t, 202, state.Offset, 0.001)
	assert.False(t, a.Active())

	a.Advance(base.Add(time.Second))
	state, _ = s.Get("row")
	assert.InDelta(t, 202, state.Offset, 0.001)
}

func TestAnimator_CancelAll(t *testing.T) {
	a, s := newTestAnimator(t)
	s.Mount("other", wideRowMetrics())
	base := time.Now()

	a.Start("row", 404, 300*time.Millisecond, EaseInOut, base)
	a.Start("other", 808, 300*time.Millisecond, EaseInOut, base)
	require.True(t, a.Active())

	a.CancelAll()
	assert.False(t, a.Active())
}

func TestEasing(t *testing.T) {
	for _, e := range []Easing{EaseInOut, EaseOut} {
		assert.Zero(t, e.apply(0))
		assert.InDelta(t, 1, e.apply(1), 0.0001)
	}
	assert.InDelta(t, 0.5, EaseInOut.apply(0.5), 0.0001)

	// ease-out front-loads the motion
	assert.Greater(t, EaseOut.apply(0.3), 0.3)
	// ease-in-out starts gently
	assert.Less(t, EaseInOut.apply(0.2), 0.2)
}
