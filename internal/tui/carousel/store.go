// Package carousel implements the row navigation engine: per-row scroll
// state, edge detection, gesture recognition, momentum, and tick-driven
// scroll animation. It is pure state-machine code driven from the update
// loop; rendering and message plumbing live in the tui package.
package carousel

import (
	"github.com/rs/zerolog/log"
)

// Metrics holds the layout numbers a row's scroll math depends on, in
// terminal cells. Recomputed eagerly on resize and content change; stale
// metrics are a correctness bug.
type Metrics struct {
	ViewportWidth float64
	CardWidth     float64
	CardGap       float64
	CardsPerClick int
	CardCount     int
}

// ScrollWidth returns the total content width of the row.
func (m Metrics) ScrollWidth() float64 {
	if m.CardCount <= 0 {
		return 0
	}
	return float64(m.CardCount)*m.CardWidth + float64(m.CardCount-1)*m.CardGap
}

// PageDistance returns the distance one navigation click advances.
func (m Metrics) PageDistance() float64 {
	return float64(m.CardsPerClick) * (m.CardWidth + m.CardGap)
}

// CardLeft returns the strip x position of card i.
func (m Metrics) CardLeft(i int) float64 {
	return float64(i) * (m.CardWidth + m.CardGap)
}

func (m Metrics) maxOffset() float64 {
	max := m.ScrollWidth() - m.ViewportWidth
	if max < 0 {
		return 0
	}
	return max
}

// RowScrollState is the scroll bookkeeping for one content row.
// Offset always satisfies 0 <= Offset <= MaxOffset.
type RowScrollState struct {
	RowID     string
	Offset    float64
	MaxOffset float64
	Metrics
}

// Store is the keyed table rowID -> scroll state. Rows mount when they
// appear and unmount when they leave; all offset mutation goes through
// SetOffset so the clamp invariant cannot be bypassed.
type Store struct {
	rows  map[string]*RowScrollState
	order []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{rows: make(map[string]*RowScrollState)}
}

// Mount registers a row with the given metrics, starting at offset 0.
// Mounting an existing row keeps its offset (clamped to the new metrics),
// so a catalog reload does not reset scroll positions.
func (s *Store) Mount(rowID string, m Metrics) {
	if row, ok := s.rows[rowID]; ok {
		row.Metrics = m
		row.MaxOffset = m.maxOffset()
		row.Offset = clamp(row.Offset, 0, row.MaxOffset)
		return
	}
	s.rows[rowID] = &RowScrollState{
		RowID:     rowID,
		Metrics:   m,
		MaxOffset: m.maxOffset(),
	}
	s.order = append(s.order, rowID)
}

// Unmount removes a row and its state.
func (s *Store) Unmount(rowID string) {
	if _, ok := s.rows[rowID]; !ok {
		return
	}
	delete(s.rows, rowID)
	for i, id := range s.order {
		if id == rowID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns a snapshot of a row's state.
func (s *Store) Get(rowID string) (RowScrollState, bool) {
	row, ok := s.rows[rowID]
	if !ok {
		return RowScrollState{}, false
	}
	return *row, true
}

// SetOffset sets a row's offset, clamped to [0, MaxOffset], and returns
// the clamped value. Overshoot from momentum or resize is expected, so
// out-of-range values clamp silently instead of erroring. An unknown row
// is logged and left alone.
func (s *Store) SetOffset(rowID string, v float64) float64 {
	row, ok := s.rows[rowID]
	if !ok {
		log.Debug().Str("row_id", rowID).Msg("set offset on unmounted row")
		return 0
	}
	row.Offset = clamp(v, 0, row.MaxOffset)
	return row.Offset
}

// RecomputeMetrics replaces a row's metrics and re-clamps its offset.
// Called on every resize and every content change for the row.
func (s *Store) RecomputeMetrics(rowID string, m Metrics) {
	row, ok := s.rows[rowID]
	if !ok {
		log.Debug().Str("row_id", rowID).Msg("recompute metrics on unmounted row")
		return
	}
	row.Metrics = m
	row.MaxOffset = m.maxOffset()
	row.Offset = clamp(row.Offset, 0, row.MaxOffset)
}

// RowIDs returns mounted rows in mount order.
func (s *Store) RowIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of mounted rows.
func (s *Store) Len() int {
	return len(s.rows)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
