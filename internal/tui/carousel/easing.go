package carousel

// Easing selects the interpolation curve for a scroll animation.
type Easing int

const (
	// EaseInOut accelerates and decelerates symmetrically. Used for
	// button navigation.
	EaseInOut Easing = iota
	// EaseOut decelerates from full speed, matching the thrown feel of
	// momentum settling.
	EaseOut
)

// apply maps linear progress t in [0,1] onto the curve.
func (e Easing) apply(t float64) float64 {
	switch e {
	case EaseOut:
		return 1 - cube(1-t)
	default:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - cube(-2*t+2)/2
	}
}

func cube(v float64) float64 { return v * v * v }
