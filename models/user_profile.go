package models

import "time"

// ProfileSchemaVersion is written into every persisted profile blob so that
// older saved data can be reconciled field-by-field over fresh defaults.
const ProfileSchemaVersion = 1

const (
	GoalWeightLoss  = "weight_loss"
	GoalMaintenance = "maintenance"
	GoalMuscleGain  = "muscle_gain"
)

const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityAthlete   = "athlete"
)

const (
	TierFree  = "free"
	TierPro   = "pro"
	TierElite = "elite"
)

// UserProfile is the per-identity biometric and gamification record.
// It is persisted as an opaque JSON blob under profile:{identity};
// streak and points never decrease except via the login streak-reset rule.
type UserProfile struct {
	SchemaVersion  int        `json:"schema_version"`
	Name           string     `json:"name"`
	Gender         string     `json:"gender"` // "male" | "female"
	Age            int        `json:"age"`
	Weight         float64    `json:"weight"` // kg
	Height         float64    `json:"height"` // cm
	Goal           string     `json:"goal"`
	ActivityLevel  string     `json:"activity_level"`
	Streak         int        `json:"streak"`
	LastActiveDate time.Time  `json:"last_active_date"`
	LastQuizDate   *time.Time `json:"last_quiz_date,omitempty"`
	Points         int        `json:"points"`
	Subscription   string     `json:"subscription"`
}

// DefaultProfile returns the fixed baseline used for first logins and as the
// reconciliation base for previously saved data.
func DefaultProfile(name string) UserProfile {
	return UserProfile{
		SchemaVersion: ProfileSchemaVersion,
		Name:          name,
		Gender:        "male",
		Age:           28,
		Weight:        75,
		Height:        180,
		Goal:          GoalMuscleGain,
		ActivityLevel: ActivityActive,
		Streak:        0,
		Points:        0,
		Subscription:  TierFree,
	}
}
