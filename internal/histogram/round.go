package histogram

import "math"

type roundMode int

const (
	// roundNearest snaps to the closest multiple. Currently unused by the
	// binner itself, which only rounds range endpoints outward; kept as the
	// third mode of the helper.
	roundNearest roundMode = iota
	roundDown
	roundUp
)

// roundToMultiple snaps v to a multiple of base in the given direction.
// A non-positive base leaves v untouched.
func roundToMultiple(v, base float64, mode roundMode) float64 {
	if base <= 0 {
		return v
	}
	q := v / base
	switch mode {
	case roundDown:
		return math.Floor(q) * base
	case roundUp:
		return math.Ceil(q) * base
	default:
		return math.Round(q) * base
	}
}
