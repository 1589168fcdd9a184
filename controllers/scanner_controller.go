package controllers

import (
	"net/http"

	"github.com/farouk24967/NutriVision/services"

	"github.com/gin-gonic/gin"
)

type AnalyzeInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /food/analyze  { "image_base64": "data:image/jpeg;base64,..." }
// AI failures surface as an inline error, never as a fatal condition; the
// item is only logged once the user confirms via POST /food/log.
func AnalyzeFoodImage(c *gin.Context) {
	var input AnalyzeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	gemini := services.NewGeminiService()
	analysis, err := gemini.AnalyzeFoodImage(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
