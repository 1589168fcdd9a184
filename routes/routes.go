package routes

import (
	"github.com/farouk24967/NutriVision/controllers"
	"github.com/farouk24967/NutriVision/middlewares"
	"github.com/farouk24967/NutriVision/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	chatCtl := controllers.NewChatController(services.NewChatHub())

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
	}

	// Everything else requires a session token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/auth/logout", controllers.Logout)

		api.GET("/user/profile", controllers.GetProfile)
		api.PUT("/user/profile", controllers.UpdateProfile)
		api.POST("/user/subscription", controllers.UpdateSubscription)

		api.GET("/food/log", controllers.ListFoodLog)
		api.POST("/food/log", controllers.AddFoodItem)
		api.POST("/food/analyze", controllers.AnalyzeFoodImage)

		api.POST("/plan", controllers.GenerateMealPlan)

		api.GET("/quiz", controllers.GetDailyQuiz)
		api.POST("/quiz/complete", controllers.CompleteChallenge)

		api.POST("/chat", chatCtl.SendMessage)
		api.GET("/chat/ws", chatCtl.ChatWS)
	}

	return r
}
