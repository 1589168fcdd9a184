package services

import (
	"math"

	"github.com/farouk24967/NutriVision/models"
	"github.com/farouk24967/NutriVision/utils"
)

// activityMultipliers scales BMR into TDEE. Unknown levels fall back to the
// sedentary factor instead of erroring.
var activityMultipliers = map[string]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityLight:     1.375,
	models.ActivityModerate:  1.55,
	models.ActivityActive:    1.725,
	models.ActivityAthlete:   1.9,
}

// CalculateTargets derives the daily calorie and macro targets from a
// profile. Pure and deterministic; callers recompute whenever weight,
// height, age, activity level or goal change instead of caching.
//
// BMR uses Mifflin-St Jeor: 10*kg + 6.25*cm - 5*years + (male ? 5 : -161).
// Goal shifts the TDEE by -500 (weight loss) or +400 (muscle gain), floored
// at 1200 kcal. Protein is fixed at 2 g/kg, fat at 0.9 g/kg, and carbs
// absorb the remaining calorie budget at 4 kcal/g, clamped at zero.
func CalculateTargets(p models.UserProfile) models.NutrientTargets {
	genderTerm := -161.0
	if p.Gender == "male" {
		genderTerm = 5
	}
	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age) + genderTerm

	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = 1.2
	}
	tdee := bmr * mult

	calories := tdee
	switch p.Goal {
	case models.GoalWeightLoss:
		calories = tdee - 500
	case models.GoalMuscleGain:
		calories = tdee + 400
	}

	// Safety minimum
	calories = math.Max(calories, 1200)

	protein := p.Weight * 2
	fats := p.Weight * 0.9
	carbs := math.Max(0, (calories-protein*4-fats*9)/4)

	return models.NutrientTargets{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(protein)),
		Carbs:    int(math.Round(carbs)),
		Fats:     int(math.Round(fats)),
	}
}

// BMIFor computes the display BMI report for a profile.
func BMIFor(p models.UserProfile) models.BMIReport {
	bmi := utils.CalculateBMI(p.Weight, p.Height)
	return models.BMIReport{BMI: bmi, Status: utils.BMIStatus(bmi)}
}
