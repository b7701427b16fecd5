package render

// EasingFunc maps animation progress in [0,1] to an eased value in [0,1].
type EasingFunc func(t float64) float64

var (
	// EaseLinear is constant speed.
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep is a smooth S-curve, accelerating at the start and
	// decelerating at the end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseOutQuad decelerates toward the end.
	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseOutCubic decelerates harder toward the end.
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}
)

// clamp01 clips t to [0,1].
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
