// Package mouse maps terminal mouse events onto named screen regions.
// Views rebuild the hit map on every render; the update loop asks the
// handler what a raw event means before routing it.
package mouse

// Rect is a screen rectangle in cell coordinates. Width and height are
// exclusive: a 30-cell-wide rect at x=10 covers columns 10..39.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell at (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangle with an arbitrary payload, typically the
// row or content id the rectangle renders.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap resolves screen coordinates to the region drawn there. Regions
// added later win over earlier ones, matching paint order: register the
// background first, then the panels, then the buttons on top.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (m *HitMap) AddRect(id string, x, y, w, h int, data any) {
	m.regions = append(m.regions, Region{
		ID:   id,
		Rect: Rect{X: x, Y: y, W: w, H: h},
		Data: data,
	})
}

// Test returns the topmost region containing (x, y), or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return &m.regions[i]
		}
	}
	return nil
}

// Clear removes all regions. Called at the top of every render pass.
func (m *HitMap) Clear() {
	m.regions = m.regions[:0]
}

// Regions returns the registered regions in paint order.
func (m *HitMap) Regions() []Region {
	return m.regions
}
