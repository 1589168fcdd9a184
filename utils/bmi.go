package utils

import "math"

// CalculateBMI expects weight in kilograms and height in centimeters and
// returns the index rounded to one decimal. Non-positive height yields 0
// rather than an infinity that cannot be JSON-encoded.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := heightCm / 100.0 // to meters
	bmi := weightKg / (h * h)
	return math.Round(bmi*10) / 10
}

// BMIStatus is the display classification shown on the profile screen.
func BMIStatus(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// PlanGoal is the separate classification used only to auto-select the goal
// for meal-plan generation. Its 18/20 cut points intentionally differ from
// BMIStatus and the two must not be unified.
func PlanGoal(bmi float64) string {
	switch {
	case bmi < 18:
		return "muscle_gain"
	case bmi > 20:
		return "weight_loss"
	default:
		return "maintenance"
	}
}
