package carousel

import "math"

// EdgeDetector decides whether a row is scrolled to its start or end.
// Arrow enablement, hidden state, and the percentage label are all derived
// from these predicates at render time; no button state is stored anywhere.
type EdgeDetector struct {
	// Tolerance absorbs sub-cell drift from interpolation so a row that
	// settled within it still counts as flush with the edge.
	Tolerance float64
}

// IsAtStart reports whether the row is flush with its left edge.
func (d EdgeDetector) IsAtStart(s RowScrollState) bool {
	return s.Offset <= d.Tolerance
}

// IsAtEnd reports whether the row is flush with its right edge. Rows with
// no overflow are at both edges at once.
func (d EdgeDetector) IsAtEnd(s RowScrollState) bool {
	return s.Offset+s.ViewportWidth >= s.ScrollWidth()-d.Tolerance
}

// Percent returns the scroll position as 0-100 for the row's position
// label. A row with no overflow reads 100: everything is visible.
func (d EdgeDetector) Percent(s RowScrollState) int {
	if s.MaxOffset <= 0 {
		return 100
	}
	return int(math.Round(s.Offset / s.MaxOffset * 100))
}
