package main

import (
	"os"

	"github.com/farouk24967/NutriVision/config"
	"github.com/farouk24967/NutriVision/routes"
	"github.com/farouk24967/NutriVision/services"
	"github.com/farouk24967/NutriVision/utils"
)

func main() {
	config.LoadEnv()
	store := config.InitStore()
	services.InitSessions(store, services.NewGeminiService())

	if os.Getenv("S3_BUCKET") != "" {
		utils.InitS3()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	r.Run(":" + port)
}
