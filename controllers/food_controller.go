package controllers

import (
	"net/http"

	"github.com/farouk24967/NutriVision/models"
	"github.com/farouk24967/NutriVision/services"
	"github.com/farouk24967/NutriVision/utils"

	"github.com/gin-gonic/gin"
)

// GET /food/log
func ListFoodLog(c *gin.Context) {
	email := c.GetString("email")
	sess, err := services.Sessions.Get(email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Log)
}

type AddFoodInput struct {
	Name        string  `json:"name" binding:"required"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	PortionSize string  `json:"portion_size"`
	Confidence  float64 `json:"confidence"`
	ImageBase64 string  `json:"image_base64"`
}

// AddFoodItem confirms an analyzed dish into the daily log. When a photo is
// attached and S3 is configured the image is stored and referenced; upload
// failure never blocks the log entry.
func AddFoodItem(c *gin.Context) {
	email := c.GetString("email")
	var input AddFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.FoodItem{
		NutrientInfo: models.NutrientInfo{
			Calories: input.Calories,
			Protein:  input.Protein,
			Carbs:    input.Carbs,
			Fats:     input.Fats,
		},
		Name:        input.Name,
		PortionSize: input.PortionSize,
		Confidence:  input.Confidence,
	}

	if input.ImageBase64 != "" {
		if url, err := utils.UploadBase64ImageToS3(input.ImageBase64, email); err == nil {
			item.ImageURL = url
		}
	}

	saved, err := services.Sessions.AddFood(email, item)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}
