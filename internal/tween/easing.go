package tween

// Easing maps a normalized phase in [0,1] to an eased phase.
// The result is not bounded, overshoot past 1 is allowed
type Easing func(t float64) float64

// Linear is the identity easing
func Linear(t float64) float64 {
	return t
}

// OutQuad decelerates to zero velocity
func OutQuad(t float64) float64 {
	return t * (2 - t)
}

// Backout overshoots past 1 near the end and settles back, amount controls the overshoot
func Backout(amount float64) Easing {
	return func(t float64) float64 {
		t--
		return t*t*((amount+1)*t+amount) + 1
	}
}

// Lerp interpolates between a and b, t outside [0,1] extrapolates.
// Equal endpoints return a exactly
func Lerp(a, b, t float64) float64 {
	if a == b {
		return a
	}
	return a*(1-t) + b*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
