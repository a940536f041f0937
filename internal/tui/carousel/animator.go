package carousel

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ScrollAnimation is one in-flight interpolation for a row. At most one
// exists per row; starting another replaces it (last writer wins).
type ScrollAnimation struct {
	RowID      string
	Start      float64
	Target     float64
	StartTime  time.Time
	Duration   time.Duration
	Easing     Easing
	Generation uint64
}

// Animator drives frame-based offset interpolation. It holds no timer of
// its own: the update loop calls Advance on every frame tick and stops
// ticking once Active reports false, so no loop persists at rest.
type Animator struct {
	store      *Store
	active     map[string]*ScrollAnimation
	generation uint64
}

// NewAnimator creates an animator writing through the given store.
func NewAnimator(store *Store) *Animator {
	return &Animator{
		store:  store,
		active: make(map[string]*ScrollAnimation),
	}
}

// Start begins an animation from the row's current offset to target,
// clamped to the row's range. Returns false without side effects when the
// row is unknown, or when the row is at rest and the clamped target equals
// the current offset (edge clicks are no-ops). A zero or negative duration
// jumps straight to the target.
func (a *Animator) Start(rowID string, target float64, d time.Duration, e Easing, now time.Time) bool {
	row, ok := a.store.Get(rowID)
	if !ok {
		log.Debug().Str("row_id", rowID).Msg("animation for unmounted row dropped")
		return false
	}

	target = clamp(target, 0, row.MaxOffset)
	if _, inFlight := a.active[rowID]; !inFlight && target == row.Offset {
		return false
	}

	if d <= 0 {
		a.store.SetOffset(rowID, target)
		delete(a.active, rowID)
		return true
	}

	a.generation++
	a.active[rowID] = &ScrollAnimation{
		RowID:      rowID,
		Start:      row.Offset,
		Target:     target,
		StartTime:  now,
		Duration:   d,
		Easing:     e,
		Generation: a.generation,
	}
	return true
}

// Advance moves every live animation to the given time and writes the
// interpolated offsets through the store. Animations that reach their
// target are completed and dropped. Returns true if any offset changed.
func (a *Animator) Advance(now time.Time) bool {
	changed := false
	for rowID, anim := range a.active {
		progress := clamp(float64(now.Sub(anim.StartTime))/float64(anim.Duration), 0, 1)
		eased := anim.Easing.apply(progress)
		a.store.SetOffset(rowID, anim.Start+(anim.Target-anim.Start)*eased)
		changed = true
		if progress >= 1 {
			delete(a.active, rowID)
		}
	}
	return changed
}

// Cancel drops a row's in-flight animation, leaving the offset wherever
// the last frame put it. Grabbing a row mid-animation goes through here.
func (a *Animator) Cancel(rowID string) {
	delete(a.active, rowID)
}

// CancelAll drops every in-flight animation.
func (a *Animator) CancelAll() {
	clear(a.active)
}

// Target returns the in-flight target for a row. Button clicks chain from
// this so a rapid click burst advances whole pages.
func (a *Animator) Target(rowID string) (float64, bool) {
	anim, ok := a.active[rowID]
	if !ok {
		return 0, false
	}
	return anim.Target, true
}

// Active reports whether any animation is in flight. The update loop keeps
// the frame tick chain alive exactly while this is true.
func (a *Animator) Active() bool {
	return len(a.active) > 0
}

// ActiveRow reports whether a specific row has an animation in flight.
func (a *Animator) ActiveRow(rowID string) bool {
	_, ok := a.active[rowID]
	return ok
}

// Generation returns the monotonically increasing animation counter. Tick
// messages carry it so a stale tick chain can be told apart from the live
// one.
func (a *Animator) Generation() uint64 {
	return a.generation
}
