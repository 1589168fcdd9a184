package controllers

import (
	"errors"
	"net/http"

	"github.com/farouk24967/NutriVision/services"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	if errors.Is(err, services.ErrNoSession) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// GetProfile returns the profile together with the recomputed targets and
// BMI report. Targets are derived on every read, never cached.
func GetProfile(c *gin.Context) {
	email := c.GetString("email")
	sess, err := services.Sessions.Get(email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": sess.Profile,
		"targets": services.CalculateTargets(sess.Profile),
		"bmi":     services.BMIFor(sess.Profile),
	})
}

func UpdateProfile(c *gin.Context) {
	email := c.GetString("email")
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.Sessions.UpdateProfile(email, input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"targets": services.CalculateTargets(profile),
		"bmi":     services.BMIFor(profile),
	})
}

type SubscriptionInput struct {
	Tier string `json:"tier" binding:"required,oneof=free pro elite"`
}

func UpdateSubscription(c *gin.Context) {
	email := c.GetString("email")
	var input SubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.Sessions.SetSubscription(email, input.Tier)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
