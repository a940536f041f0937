package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecognizer(t *testing.T) (*Recognizer, *Store) {
	t.Helper()
	s := NewStore()
	s.Mount("row", wideRowMetrics())
	return NewRecognizer(s, 10), s
}

func TestRecognizer_DecidesHorizontal(t *testing.T) {
	r, s := newTestRecognizer(t)
	base := time.Now()

	r.Begin("row", 500, 5, false, base)
	sess, ok := r.Session("row")
	require.True(t, ok)
	assert.Equal(t, PhaseIdle, sess.Phase)

	// under threshold: still deciding, row untouched
	_, moved := r.Move("row", 495, 5, base.Add(20*time.Millisecond))
	assert.False(t, moved)
	sess, _ = r.Session("row")
	assert.Equal(t, PhaseDetecting, sess.Phase)
	state, _ := s.Get("row")
	assert.Zero(t, state.Offset)

	// crossing the threshold decides, and the deciding sample drags
	offset, moved := r.Move("row", 480, 7, base.Add(40*time.Millisecond))
	assert.True(t, moved)
	assert.InDelta(t, 20, offset, 0.001)
	assert.True(t, r.Dragging("row"))
}

func TestRecognizer_YieldsVerticalOnce(t *testing.T) {
	r, s := newTestRecognizer(t)
	base := time.Now()

	r.Begin("row", 500, 5, false, base)
	_, moved := r.Move("row", 498, 25, base.Add(20*time.Millisecond))
	assert.False(t, moved)

	sess, _ := r.Session("row")
	assert.Equal(t, PhaseYielded, sess.Phase)

	// a later strongly horizontal sample does not reopen the decision
	_, moved = r.Move("row", 300, 25, base.Add(40*time.Millisecond))
	assert.False(t, moved)
	sess, _ = r.Session("row")
	assert.Equal(t, PhaseYielded, sess.Phase)

	state, _ := s.Get("row")
	assert.Zero(t, state.Offset)

	_, dragged := r.End("row", base.Add(60*time.Millisecond))
	assert.False(t, dragged)
}

func TestRecognizer_PointerSkipsVerticalCheck(t *testing.T) {
	r, _ := newTestRecognizer(t)
	base := time.Now()

	// mostly vertical motion, but from a mouse: still a drag once the
	// horizontal travel clears the threshold
	r.Begin("row", 500, 5, true, base)
	_, moved := r.Move("row", 489, 80, base.Add(20*time.Millisecond))
	assert.True(t, moved)
	assert.True(t, r.Dragging("row"))
}

func TestRecognizer_PointerStillNeedsThreshold(t *testing.T) {
	r, _ := newTestRecognizer(t)
	base := time.Now()

	r.Begin("row", 500, 5, true, base)
	_, moved := r.Move("row", 492, 5, base.Add(20*time.Millisecond))
	assert.False(t, moved)
	assert.False(t, r.Dragging("row"))
}

func TestRecognizer_DragTracksContact(t *testing.T) {
	r, s := newTestRecognizer(t)
	base := time.Now()
	s.SetOffset("row", 100)

	r.Begin("row", 600, 5, false, base)
	offset, _ := r.Move("row", 560, 5, base.Add(20*time.Millisecond))
	assert.InDelta(t, 140, offset, 0.001)

	// dragging back past the origin pulls under the start offset
	offset, _ = r.Move("row", 650, 5, base.Add(40*time.Millisecond))
	assert.InDelta(t, 50, offset, 0.001)

	// and clamps at zero
	offset, _ = r.Move("row", 900, 5, base.Add(60*time.Millisecond))
	assert.Zero(t, offset)
}

func TestRecognizer_VelocityUsesLastTwoSamples(t *testing.T) {
	r, _ := newTestRecognizer(t)
	base := time.Now()

	r.Begin("row", 900, 5, false, base)
	r.Move("row", 860, 5, base.Add(50*time.Millisecond))  // fast: 0.8
	r.Move("row", 855, 5, base.Add(150*time.Millisecond)) // crawl: 0.05

	sess, _ := r.Session("row")
	assert.InDelta(t, 0.05, sess.Velocity, 0.001)

	// a zero-interval sample keeps the previous velocity
	r.Move("row", 840, 5, base.Add(150*time.Millisecond))
	sess, _ = r.Session("row")
	assert.InDelta(t, 0.05, sess.Velocity, 0.001)
}

func TestRecognizer_EndHandsOffRelease(t *testing.T) {
	r, _ := newTestRecognizer(t)
	base := time.Now()

	r.Begin("row", 900, 5, false, base)
	r.Move("row", 860, 5, base.Add(50*time.Millisecond))
	r.Move("row", 500, 5, base.Add(250*time.Millisecond))

	rel, dragged := r.End("row", base.Add(250*time.Millisecond))
	require.True(t, dragged)
	assert.Equal(t, "row", rel.RowID)
	assert.InDelta(t, 1.8, rel.Velocity, 0.001) // (860-500)/200
	assert.Equal(t, 250*time.Millisecond, rel.Duration)
	assert.InDelta(t, 400, rel.Offset, 0.001)

	// the session is gone
	_, ok := r.Session("row")
	assert.False(t, ok)
}

func TestRecognizer_EndWithoutDragIsNoOp(t *testing.T) {
	r, _ := newTestRecognizer(t)
	base := time.Now()

	// press and release with no motion: a click, not a drag
	r.Begin("row", 500, 5, false, base)
	_, dragged := r.End("row", base.Add(80*time.Millisecond))
	assert.False(t, dragged)

	// release with no session at all
	_, dragged = r.End("row", base)
	assert.False(t, dragged)
}

func TestRecognizer_BeginOnUnmountedRow(t *testing.T) {
	r, _ := newTestRecognizer(t)

	r.Begin("ghost", 500, 5, false, time.Now())
	_, ok := r.Session("ghost")
	assert.False(t, ok)
}

func TestRecognizer_Drop(t *testing.T) {
	r, _ := newTestRecognizer(t)
	base := time.Now()

	r.Begin("row", 500, 5, false, base)
	r.Move("row", 480, 5, base.Add(20*time.Millisecond))
	require.True(t, r.Dragging("row"))

	r.Drop("row")
	assert.False(t, r.Dragging("row"))
	_, dragged := r.End("row", base.Add(40*time.Millisecond))
	assert.False(t, dragged)
}
