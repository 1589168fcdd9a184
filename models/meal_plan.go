package models

// MealPlanItem is one AI-generated meal suggestion.
type MealPlanItem struct {
	MealType    string       `json:"mealType"` // Breakfast | Lunch | Dinner | Snack
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Nutrients   NutrientInfo `json:"nutrients"`
}

type DailyPlan struct {
	Day   string         `json:"day"`
	Meals []MealPlanItem `json:"meals"`
}

// WeeklyPlan is expected to carry exactly 7 entries (Monday..Sunday); the
// count is the AI collaborator's contract and is not enforced here.
type WeeklyPlan struct {
	Week []DailyPlan `json:"week"`
}
