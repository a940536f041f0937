package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wideRowMetrics is a browser-scale row: 10 cards at 182 cells with a
// 20-cell gap gives a 2000-cell strip, so an 800-cell viewport leaves
// maxOffset 1200 and a two-card click advances 404.
func wideRowMetrics() Metrics {
	return Metrics{
		ViewportWidth: 800,
		CardWidth:     182,
		CardGap:       20,
		CardsPerClick: 2,
		CardCount:     10,
	}
}

func TestMetrics(t *testing.T) {
	m := wideRowMetrics()
	assert.InDelta(t, 2000, m.ScrollWidth(), 0.001)
	assert.InDelta(t, 404, m.PageDistance(), 0.001)

	assert.Zero(t, Metrics{}.ScrollWidth())
	assert.Zero(t, Metrics{CardWidth: 20, CardGap: 2}.ScrollWidth())
}

func TestStore_MountAndGet(t *testing.T) {
	s := NewStore()
	s.Mount("trending", wideRowMetrics())

	state, ok := s.Get("trending")
	require.True(t, ok)
	assert.Equal(t, "trending", state.RowID)
	assert.Zero(t, state.Offset)
	assert.InDelta(t, 1200, state.MaxOffset, 0.001)

	_, ok = s.Get("absent")
	assert.False(t, ok)
}

func TestStore_MountWithoutOverflow(t *testing.T) {
	s := NewStore()
	s.Mount("short", Metrics{ViewportWidth: 800, CardWidth: 100, CardGap: 10, CardCount: 3})

	state, _ := s.Get("short")
	assert.Zero(t, state.MaxOffset)
}

func TestStore_SetOffsetClamps(t *testing.T) {
	s := NewStore()
	s.Mount("row", wideRowMetrics())

	assert.InDelta(t, 500, s.SetOffset("row", 500), 0.001)
	assert.InDelta(t, 1200, s.SetOffset("row", 5000), 0.001)
	assert.Zero(t, s.SetOffset("row", -50))

	// unknown rows are a logged no-op
	assert.Zero(t, s.SetOffset("absent", 300))
}

func TestStore_RemountKeepsOffset(t *testing.T) {
	s := NewStore()
	s.Mount("row", wideRowMetrics())
	s.SetOffset("row", 900)

	// catalog reload remounts the row with fewer cards
	m := wideRowMetrics()
	m.CardCount = 5
	s.Mount("row", m)

	state, _ := s.Get("row")
	assert.InDelta(t, 190, state.MaxOffset, 0.001) // 5*182+4*20 - 800
	assert.InDelta(t, 190, state.Offset, 0.001)    // 900 clamped into the new range
}

func TestStore_RecomputeMetricsReclamps(t *testing.T) {
	s := NewStore()
	s.Mount("row", wideRowMetrics())
	s.SetOffset("row", 1200)

	// viewport grows, range shrinks, offset must follow
	m := wideRowMetrics()
	m.ViewportWidth = 1500
	s.RecomputeMetrics("row", m)

	state, _ := s.Get("row")
	assert.InDelta(t, 500, state.MaxOffset, 0.001)
	assert.InDelta(t, 500, state.Offset, 0.001)

	s.RecomputeMetrics("absent", m) // logged no-op
}

func TestStore_Unmount(t *testing.T) {
	s := NewStore()
	s.Mount("a", wideRowMetrics())
	s.Mount("b", wideRowMetrics())
	require.Equal(t, []string{"a", "b"}, s.RowIDs())

	s.Unmount("a")
	assert.Equal(t, []string{"b"}, s.RowIDs())
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Unmount("a") // already gone
	assert.Equal(t, 1, s.Len())
}
