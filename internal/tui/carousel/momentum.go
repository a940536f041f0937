package carousel

import "time"

// Engine converts a drag release into a projected rest position. Only
// short, fast flicks carry momentum; slow drags settle exactly where they
// were released.
type Engine struct {
	// MinVelocity is the release speed (cells/ms) a flick must exceed.
	MinVelocity float64
	// FlickWindow is the longest gesture that still counts as a flick.
	FlickWindow time.Duration
	// Factor scales velocity into projected distance.
	Factor float64
	// SettleDuration is the length of the settling animation.
	SettleDuration time.Duration
}

// Project decides the momentum outcome for a release. When the release
// qualifies it returns the clamped rest target and true; otherwise false,
// and the release offset stands as final.
func (e Engine) Project(rel Release, maxOffset float64) (float64, bool) {
	if abs(rel.Velocity) <= e.MinVelocity || rel.Duration >= e.FlickWindow {
		return 0, false
	}
	return clamp(rel.Offset+rel.Velocity*e.Factor, 0, maxOffset), true
}
