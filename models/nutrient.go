package models

// NutrientInfo is the macro snapshot shared by logged foods and plan meals.
type NutrientInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fats     float64 `json:"fats"`    // grams
}

// NutrientTargets holds the daily intake targets derived from a profile.
// Values are rounded to whole units (kcal / grams).
type NutrientTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// BMIReport pairs the computed index with its display classification.
type BMIReport struct {
	BMI    float64 `json:"bmi"`
	Status string  `json:"status"`
}
