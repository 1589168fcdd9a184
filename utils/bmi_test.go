package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBMI(t *testing.T) {
	assert.Equal(t, 23.1, CalculateBMI(75, 180))
	assert.Equal(t, 22.5, CalculateBMI(57.6, 160))
}

func TestCalculateBMIDegenerateHeight(t *testing.T) {
	assert.Equal(t, 0.0, CalculateBMI(75, 0))
	assert.Equal(t, 0.0, CalculateBMI(75, -10))
}

func TestBMIStatusThresholds(t *testing.T) {
	assert.Equal(t, "underweight", BMIStatus(18.4))
	assert.Equal(t, "normal", BMIStatus(18.5))
	assert.Equal(t, "normal", BMIStatus(24.9))
	assert.Equal(t, "overweight", BMIStatus(25))
	assert.Equal(t, "overweight", BMIStatus(29.9))
	assert.Equal(t, "obese", BMIStatus(30))
}

// PlanGoal intentionally uses different cut points (18/20) than the display
// classification; both must stay as they are.
func TestPlanGoalThresholds(t *testing.T) {
	assert.Equal(t, "muscle_gain", PlanGoal(17.9))
	assert.Equal(t, "maintenance", PlanGoal(18))
	assert.Equal(t, "maintenance", PlanGoal(20))
	assert.Equal(t, "weight_loss", PlanGoal(20.1))
	assert.Equal(t, "weight_loss", PlanGoal(31))
}
