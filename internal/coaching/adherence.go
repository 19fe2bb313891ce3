package coaching

type NutritionStatus string

const (
	StatusNotSet       NutritionStatus = "not_set"
	StatusWithinTarget NutritionStatus = "within_target"
	StatusExceeded     NutritionStatus = "exceeded"
	StatusBelowTarget  NutritionStatus = "below_target"
)

// Bounds of the within_target band, relative to the target.
// The band is intentionally asymmetric around 1.0.
const (
	adherenceLowerBound = 0.85
	adherenceUpperBound = 1.05
)

func hasTarget(target *float64) bool {
	return target != nil && *target != 0
}

func metricStatus(actual float64, target *float64) NutritionStatus {
	if !hasTarget(target) {
		return ""
	}
	t := *target
	switch {
	case actual > t*adherenceUpperBound:
		return StatusExceeded
	case actual < t*adherenceLowerBound:
		return StatusBelowTarget
	default:
		return StatusWithinTarget
	}
}

// ClassifyNutrition rates a day's intake against the macro targets.
// A missing or zero target does not take part. Per metric results combine
// as exceeded > below_target > within_target.
func ClassifyNutrition(calories float64, calorieTarget *float64, protein float64, proteinTarget *float64) NutritionStatus {
	if !hasTarget(calorieTarget) && !hasTarget(proteinTarget) {
		return StatusNotSet
	}

	caloriesStatus := metricStatus(calories, calorieTarget)
	proteinStatus := metricStatus(protein, proteinTarget)

	for _, status := range []NutritionStatus{StatusExceeded, StatusBelowTarget, StatusWithinTarget} {
		if caloriesStatus == status || proteinStatus == status {
			return status
		}
	}
	return StatusNotSet
}
