package models

import "time"

// FoodItem is one confirmed entry in the daily log. Entries are immutable
// once created; the log is ordered newest first and persisted as a JSON
// array under log:{identity}.
type FoodItem struct {
	NutrientInfo
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PortionSize string    `json:"portion_size,omitempty"` // e.g. "1 bowl", "200g"
	ImageURL    string    `json:"image_url,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// FoodAnalysis is the AI collaborator's answer for one food photo.
type FoodAnalysis struct {
	Name        string  `json:"name"`
	PortionSize string  `json:"portionSize"`
	Confidence  float64 `json:"confidence"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	Analysis    string  `json:"analysis"`
}
