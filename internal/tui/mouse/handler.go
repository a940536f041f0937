package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDoubleClickInterval is the longest gap between two clicks on the
// same region that still reads as a double-click.
const DefaultDoubleClickInterval = 500 * time.Millisecond

// ActionType classifies what a raw mouse event means to the UI.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionRelease
	ActionHover
	ActionDrag
	ActionDragEnd
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
)

// Action is the interpreted form of one mouse event.
type Action struct {
	Type   ActionType
	Region *Region // region under the cursor, nil on a miss
	X, Y   int
	// Drag deltas from the drag origin, set for ActionDrag.
	DragDX, DragDY int
	IsDoubleClick  bool
	Shift          bool
}

// ClickResult is the outcome of a hit-tested click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw Bubble Tea mouse events into hit-tested actions and
// tracks click pairing and drag capture across events.
type Handler struct {
	HitMap *HitMap

	// DoubleClickInterval can be lowered in tests.
	DoubleClickInterval time.Duration

	lastClickID   string
	lastClickAt   time.Time
	lastWasDouble bool

	dragging       bool
	dragOriginX    int
	dragOriginY    int
	dragRegion     string
	dragStartValue int
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{
		HitMap:              NewHitMap(),
		DoubleClickInterval: DefaultDoubleClickInterval,
	}
}

// HandleClick hit-tests a click and pairs it with the previous one. Two
// quick clicks on the same region make a double-click; the pairing then
// resets so a third click reads as single again.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := time.Now()

	if region == nil {
		h.lastClickID = ""
		h.lastWasDouble = false
		return ClickResult{}
	}

	double := !h.lastWasDouble &&
		region.ID == h.lastClickID &&
		now.Sub(h.lastClickAt) <= h.DoubleClickInterval

	h.lastClickID = region.ID
	h.lastClickAt = now
	h.lastWasDouble = double

	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag captures the pointer for a region. startValue carries the
// value being adjusted (a scroll offset, a divider position) so the drag
// handler can apply deltas to it.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragOriginX = x
	h.dragOriginY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag capture is live.
func (h *Handler) IsDragging() bool {
	return h.dragging
}

// DragRegion returns the id of the region that captured the drag.
func (h *Handler) DragRegion() string {
	return h.dragRegion
}

// DragStartValue returns the value recorded at capture time.
func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the pointer travel from the drag origin.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragOriginX, y - h.dragOriginY
}

// EndDrag releases the drag capture.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// Clear drops the hit map and any drag capture. Called when the screen is
// rebuilt from scratch.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.EndDrag()
}

// HandleMouse interprets one raw event. A live drag capture claims motion
// and release events; everything else is hit-tested against the map.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		return h.handlePress(msg)

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return Action{Type: ActionDrag, X: msg.X, Y: msg.Y, DragDX: dx, DragDY: dy, Shift: msg.Shift}
		}
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Shift: msg.Shift}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y, Shift: msg.Shift}
		}
		return Action{Type: ActionRelease, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Shift: msg.Shift}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}

func (h *Handler) handlePress(msg tea.MouseMsg) Action {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			return Action{Type: ActionScrollLeft, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Shift: true}
		}
		return Action{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseButtonWheelDown:
		if msg.Shift {
			return Action{Type: ActionScrollRight, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Shift: true}
		}
		return Action{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseButtonWheelLeft:
		return Action{Type: ActionScrollLeft, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseButtonWheelRight:
		return Action{Type: ActionScrollRight, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseButtonLeft:
		res := h.HandleClick(msg.X, msg.Y)
		return Action{Type: ActionClick, Region: res.Region, X: msg.X, Y: msg.Y, IsDoubleClick: res.IsDoubleClick, Shift: msg.Shift}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}
