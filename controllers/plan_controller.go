package controllers

import (
	"net/http"

	"github.com/farouk24967/NutriVision/services"

	"github.com/gin-gonic/gin"
)

// POST /plan
// Plan generation is gated on usable biometrics: without a positive weight
// and height the prompt's BMI context would be meaningless.
func GenerateMealPlan(c *gin.Context) {
	email := c.GetString("email")
	sess, err := services.Sessions.Get(email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if sess.Profile.Weight <= 0 || sess.Profile.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight and height are required for plan generation"})
		return
	}

	gemini := services.NewGeminiService()
	plan, err := gemini.GenerateWeeklyPlan(sess.Profile)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}
