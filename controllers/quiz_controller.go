package controllers

import (
	"net/http"
	"time"

	"github.com/farouk24967/NutriVision/services"

	"github.com/gin-gonic/gin"
)

func completedToday(lastQuiz *time.Time) bool {
	if lastQuiz == nil {
		return false
	}
	now := time.Now().In(time.Local)
	last := lastQuiz.In(time.Local)
	return now.Year() == last.Year() && now.YearDay() == last.YearDay()
}

// GET /quiz
// The once-per-day gate lives here, on the calling side; the lifecycle
// manager applies whatever result it is handed.
func GetDailyQuiz(c *gin.Context) {
	email := c.GetString("email")
	sess, err := services.Sessions.Get(email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if completedToday(sess.Profile.LastQuizDate) {
		c.JSON(http.StatusOK, gin.H{"completed_today": true})
		return
	}

	gemini := services.NewGeminiService()
	c.JSON(http.StatusOK, gin.H{
		"completed_today": false,
		"quiz":            gemini.GenerateDailyQuiz(),
	})
}

type ChallengeInput struct {
	Points int `json:"points" binding:"required,min=1"`
}

// POST /quiz/complete  { "points": 50 }
func CompleteChallenge(c *gin.Context) {
	email := c.GetString("email")
	var input ChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.Sessions.RecordChallengeResult(email, input.Points)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
