package carousel

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/marquee/internal/core/config"
)

// Direction of horizontal navigation.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Facade composes the store, edge detector, gesture recognizer, momentum
// engine, and animator into the public per-row behavior. The tui model
// routes messages here; views derive arrow state through it.
type Facade struct {
	store    *Store
	edges    EdgeDetector
	gestures *Recognizer
	momentum Engine
	animator *Animator

	navDuration   time.Duration
	wheelStep     float64
	reducedMotion bool
}

// New builds a facade from the motion configuration.
func New(cfg *config.Config) *Facade {
	store := NewStore()
	return &Facade{
		store:    store,
		edges:    EdgeDetector{Tolerance: cfg.Motion.EdgeTolerance},
		gestures: NewRecognizer(store, cfg.Motion.DragThreshold),
		momentum: Engine{
			MinVelocity:    cfg.Motion.FlickVelocity,
			FlickWindow:    cfg.Motion.FlickWindow(),
			Factor:         cfg.Motion.MomentumFactor,
			SettleDuration: cfg.Motion.SettleDuration(),
		},
		animator:      NewAnimator(store),
		navDuration:   cfg.Motion.NavDuration(),
		wheelStep:     cfg.Motion.WheelStep,
		reducedMotion: cfg.UI.ReducedMotion,
	}
}

// Mount registers a row. Remounting keeps its offset, clamped to the new
// metrics.
func (f *Facade) Mount(rowID string, m Metrics) {
	f.store.Mount(rowID, m)
}

// Unmount removes a row together with any in-flight animation or gesture.
func (f *Facade) Unmount(rowID string) {
	f.animator.Cancel(rowID)
	f.gestures.Drop(rowID)
	f.store.Unmount(rowID)
}

// Resize replaces a row's metrics and re-clamps its offset. In-flight
// animations keep running; their per-frame writes clamp against the new
// range on their own.
func (f *Facade) Resize(rowID string, m Metrics) {
	f.store.RecomputeMetrics(rowID, m)
}

// ScrollRow advances a row one page in the given direction with the
// navigation easing. Consecutive clicks chain from the pending animation
// target, so a rapid burst advances whole pages and the final target
// clamps. Returns false when the click is a no-op (unknown row, or already
// flush against that edge).
func (f *Facade) ScrollRow(rowID string, dir Direction, now time.Time) bool {
	state, ok := f.store.Get(rowID)
	if !ok {
		log.Debug().Str("row_id", rowID).Msg("scroll on unmounted row dropped")
		return false
	}

	base := state.Offset
	if target, pending := f.animator.Target(rowID); pending {
		base = target
	}

	delta := state.PageDistance()
	if dir == Left {
		delta = -delta
	}

	return f.animator.Start(rowID, base+delta, f.duration(f.navDuration), EaseInOut, now)
}

// ScrollTo animates a row to an absolute offset with the navigation
// easing. Used to bring a selected card fully into view.
func (f *Facade) ScrollTo(rowID string, target float64, now time.Time) bool {
	return f.animator.Start(rowID, target, f.duration(f.navDuration), EaseInOut, now)
}

// Wheel nudges a row by the configured wheel step without animating.
// Any in-flight animation is preempted: wheel input is the user taking
// manual control. Returns true if the offset changed.
func (f *Facade) Wheel(rowID string, dir Direction, _ time.Time) bool {
	state, ok := f.store.Get(rowID)
	if !ok {
		return false
	}

	f.animator.Cancel(rowID)

	step := f.wheelStep
	if dir == Left {
		step = -step
	}
	return f.store.SetOffset(rowID, state.Offset+step) != state.Offset
}

// GestureBegin opens a gesture session for a contact press. Grabbing a row
// mid-animation stops the animation where it is.
func (f *Facade) GestureBegin(rowID string, x, y float64, pointer bool, now time.Time) {
	f.animator.Cancel(rowID)
	f.gestures.Begin(rowID, x, y, pointer, now)
}

// GestureMove feeds a motion sample. Returns true while the sample moved
// the row, meaning a re-render is due.
func (f *Facade) GestureMove(rowID string, x, y float64, now time.Time) bool {
	_, dragging := f.gestures.Move(rowID, x, y, now)
	return dragging
}

// GestureEnd closes the session. A qualifying flick hands off to the
// momentum engine and starts the settle animation; anything else leaves
// the offset where the drag put it. Returns true if momentum settling
// started.
func (f *Facade) GestureEnd(rowID string, now time.Time) bool {
	rel, dragged := f.gestures.End(rowID, now)
	if !dragged {
		return false
	}

	state, ok := f.store.Get(rowID)
	if !ok {
		return false
	}

	target, flick := f.momentum.Project(rel, state.MaxOffset)
	if !flick {
		return false
	}
	return f.animator.Start(rowID, target, f.duration(f.momentum.SettleDuration), EaseOut, now)
}

// Advance moves all in-flight animations to now. Returns true if any
// offset changed.
func (f *Facade) Advance(now time.Time) bool {
	return f.animator.Advance(now)
}

// Animating reports whether any row has an animation in flight.
func (f *Facade) Animating() bool {
	return f.animator.Active()
}

// AnimatingRow reports whether one row has an animation in flight.
func (f *Facade) AnimatingRow(rowID string) bool {
	return f.animator.ActiveRow(rowID)
}

// Generation returns the animation generation counter for tick staleness
// checks.
func (f *Facade) Generation() uint64 {
	return f.animator.Generation()
}

// Dragging reports whether a row has a captured drag in progress.
func (f *Facade) Dragging(rowID string) bool {
	return f.gestures.Dragging(rowID)
}

// State returns a snapshot of a row's scroll state.
func (f *Facade) State(rowID string) (RowScrollState, bool) {
	return f.store.Get(rowID)
}

// SetOffset writes a row's offset directly (clamped), preempting nothing.
// Used to restore persisted positions at mount time.
func (f *Facade) SetOffset(rowID string, v float64) float64 {
	return f.store.SetOffset(rowID, v)
}

// RowIDs returns mounted rows in mount order.
func (f *Facade) RowIDs() []string {
	return f.store.RowIDs()
}

// Edges returns the row's start/end predicates for arrow rendering.
// Unknown rows read as flush with both edges, which renders no arrows.
func (f *Facade) Edges(rowID string) (atStart, atEnd bool) {
	state, ok := f.store.Get(rowID)
	if !ok {
		return true, true
	}
	return f.edges.IsAtStart(state), f.edges.IsAtEnd(state)
}

// Percent returns the row's scroll position label value.
func (f *Facade) Percent(rowID string) int {
	state, ok := f.store.Get(rowID)
	if !ok {
		return 100
	}
	return f.edges.Percent(state)
}

func (f *Facade) duration(d time.Duration) time.Duration {
	if f.reducedMotion {
		return 0
	}
	return d
}
