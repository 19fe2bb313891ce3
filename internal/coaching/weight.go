package coaching

import "math"

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WeightDelta is current minus goal rounded to one decimal, nil when either
// is unknown. Positive means above the goal, whatever the goal direction.
func WeightDelta(current, goal *float64) *float64 {
	if current == nil || goal == nil {
		return nil
	}
	delta := round1(*current - *goal)
	return &delta
}
