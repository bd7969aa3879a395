package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/controlers"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
)

const Version = "1.0.0"

// Deps is everything the route table wires into handlers and middleware.
type Deps struct {
	Users     *controlers.UserController
	Chat      *controlers.ChatController
	Analytics *controlers.AnalyticsController
	Verifier  libs.TokenVerifier

	// ChatLimiter guards /chat/send. Nil disables the limit.
	ChatLimiter gin.HandlerFunc
}

func InitRoutes(router *gin.Engine, deps Deps) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Welcome to MindScope AI",
			"version": Version,
		})
	})
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	Auth(router, deps.Users)
	auth := router.Group("/")
	auth.Use(libs.JWTMiddleware(deps.Verifier))
	{
		User(auth, deps.Users)
		Chat(auth, deps.Chat, deps.ChatLimiter)
		Analytics(auth, deps.Analytics)
	}
}

func Auth(router *gin.Engine, users *controlers.UserController) {
	router.POST("/auth/register", users.CreateUser)
	router.POST("/auth/login", users.LoginUser)
}

func User(router *gin.RouterGroup, users *controlers.UserController) {
	router.GET("/auth/me", users.GetProfile)
}

func Chat(router *gin.RouterGroup, chat *controlers.ChatController, limiter gin.HandlerFunc) {
	send := []gin.HandlerFunc{chat.SendMessage}
	if limiter != nil {
		send = append([]gin.HandlerFunc{limiter}, send...)
	}
	router.POST("/chat/send", send...)
	router.GET("/chat/history", chat.GetHistory)
}

func Analytics(router *gin.RouterGroup, analytics *controlers.AnalyticsController) {
	router.GET("/analytics/weekly-trend", analytics.WeeklyTrend)
	router.GET("/analytics/mood-distribution", analytics.MoodDistribution)
}
