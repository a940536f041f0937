package carousel

import (
	"time"

	"github.com/rs/zerolog/log"
)

// GesturePhase is the lifecycle of one contact session.
type GesturePhase int

const (
	// PhaseIdle: contact is down, no motion sample seen yet.
	PhaseIdle GesturePhase = iota
	// PhaseDetecting: motion seen, horizontal vs vertical intent undecided.
	PhaseDetecting
	// PhaseDragging: horizontal intent won; samples move the row.
	PhaseDragging
	// PhaseYielded: vertical intent won; the session is inert until
	// release. The decision is one-shot and never re-evaluated.
	PhaseYielded
)

// GestureSession is the transient state of one contact, from press to
// release. At most one exists per row.
type GestureSession struct {
	RowID        string
	Phase        GesturePhase
	OriginX      float64
	OriginY      float64
	OriginOffset float64
	LastX        float64
	LastTime     time.Time
	StartTime    time.Time
	Velocity     float64 // cells/ms, from the last two samples only
	Pointer      bool    // mouse drags skip vertical disambiguation
}

// Release is the hand-off from a completed drag to the momentum engine.
type Release struct {
	RowID    string
	Velocity float64 // cells/ms at release
	Duration time.Duration
	Offset   float64
}

// Recognizer classifies contact sample streams into horizontal drags or
// pass-through. Drags write offsets through the store; everything else is
// left to whoever owns vertical scrolling.
type Recognizer struct {
	store     *Store
	threshold float64 // cells of travel before intent is decided
	sessions  map[string]*GestureSession
}

// NewRecognizer creates a recognizer writing through the given store.
func NewRecognizer(store *Store, threshold float64) *Recognizer {
	return &Recognizer{
		store:     store,
		threshold: threshold,
		sessions:  make(map[string]*GestureSession),
	}
}

// Begin opens a session for a contact press on a row. An existing session
// for the row is discarded. Unknown rows are logged and ignored.
func (r *Recognizer) Begin(rowID string, x, y float64, pointer bool, now time.Time) {
	row, ok := r.store.Get(rowID)
	if !ok {
		log.Debug().Str("row_id", rowID).Msg("gesture on unmounted row dropped")
		return
	}
	r.sessions[rowID] = &GestureSession{
		RowID:        rowID,
		Phase:        PhaseIdle,
		OriginX:      x,
		OriginY:      y,
		OriginOffset: row.Offset,
		LastX:        x,
		LastTime:     now,
		StartTime:    now,
		Pointer:      pointer,
	}
}

// Move feeds a motion sample into the row's session. While dragging it
// returns the clamped offset the sample produced and true; in every other
// phase it returns false and the sample only advances intent detection.
func (r *Recognizer) Move(rowID string, x, y float64, now time.Time) (float64, bool) {
	s, ok := r.sessions[rowID]
	if !ok {
		return 0, false
	}

	switch s.Phase {
	case PhaseIdle:
		s.Phase = PhaseDetecting
		fallthrough
	case PhaseDetecting:
		r.detect(s, x, y)
		if s.Phase != PhaseDragging {
			return 0, false
		}
		// The deciding sample also drags.
		return r.drag(s, x, now), true
	case PhaseDragging:
		return r.drag(s, x, now), true
	default: // PhaseYielded
		return 0, false
	}
}

// End closes the row's session. A release while dragging returns the
// hand-off for the momentum engine; releasing in any other phase is a
// no-op.
func (r *Recognizer) End(rowID string, now time.Time) (Release, bool) {
	s, ok := r.sessions[rowID]
	if !ok {
		return Release{}, false
	}
	delete(r.sessions, rowID)

	if s.Phase != PhaseDragging {
		return Release{}, false
	}

	row, ok := r.store.Get(rowID)
	if !ok {
		return Release{}, false
	}
	return Release{
		RowID:    rowID,
		Velocity: s.Velocity,
		Duration: now.Sub(s.StartTime),
		Offset:   row.Offset,
	}, true
}

// Drop discards the row's session without a release hand-off. Used when
// the row unmounts under an active contact.
func (r *Recognizer) Drop(rowID string) {
	delete(r.sessions, rowID)
}

// Session returns a snapshot of the row's session.
func (r *Recognizer) Session(rowID string) (GestureSession, bool) {
	s, ok := r.sessions[rowID]
	if !ok {
		return GestureSession{}, false
	}
	return *s, true
}

// Dragging reports whether the row has a captured drag in progress.
func (r *Recognizer) Dragging(rowID string) bool {
	s, ok := r.sessions[rowID]
	return ok && s.Phase == PhaseDragging
}

// detect resolves horizontal vs vertical intent. Mouse sessions skip the
// vertical comparison: a mouse drag is unambiguously horizontal intent, it
// only has to clear the threshold so card clicks don't jitter into drags.
func (r *Recognizer) detect(s *GestureSession, x, y float64) {
	dx := abs(x - s.OriginX)
	dy := abs(y - s.OriginY)

	if s.Pointer {
		if dx > r.threshold {
			s.Phase = PhaseDragging
		}
		return
	}

	switch {
	case dy > dx && dy > r.threshold:
		s.Phase = PhaseYielded
	case dx >= dy && dx > r.threshold:
		s.Phase = PhaseDragging
	}
}

// drag applies a sample to the row: dragging right moves content left.
// Velocity uses only the last two samples, trading noise rejection for
// responsiveness.
func (r *Recognizer) drag(s *GestureSession, x float64, now time.Time) float64 {
	if dt := float64(now.Sub(s.LastTime).Microseconds()) / 1000; dt > 0 {
		s.Velocity = (s.LastX - x) / dt
	}
	s.LastX = x
	s.LastTime = now

	return r.store.SetOffset(s.RowID, s.OriginOffset+(s.OriginX-x))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
