package controllers

import (
	"net/http"

	"github.com/farouk24967/NutriVision/services"
	"github.com/farouk24967/NutriVision/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// Login accepts any email/name pair unconditionally and opens a session
// scoped to that identity. Returns the token plus the loaded state so the
// client can render immediately.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := services.Sessions.Login(input.Email, input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(input.Email, input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"profile": sess.Profile,
		"log":     sess.Log,
		"targets": services.CalculateTargets(sess.Profile),
		"bmi":     services.BMIFor(sess.Profile),
	})
}

func Logout(c *gin.Context) {
	email := c.GetString("email")
	services.Sessions.Logout(email)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
