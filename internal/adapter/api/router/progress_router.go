package router

import (
	"daxlearn/internal/adapter/api/handler"
	"daxlearn/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProgressRouter(e *echo.Echo, progressHandler *handler.ProgressHandler, authMiddleware middleware.Authenticator) {
	// Public reads
	e.GET("/v1/progress/leaderboard", progressHandler.GetLeaderboard)
	e.GET("/v1/progress/badges/catalog", progressHandler.GetBadgeCatalog)
	e.GET("/v1/progress/achievements/catalog", progressHandler.GetAchievementCatalog)

	progressGroup := e.Group("/v1/progress")
	progressGroup.Use(authMiddleware.Authenticate)

	progressGroup.GET("", progressHandler.GetProgress)
	progressGroup.GET("/summary", progressHandler.GetSummary)
	progressGroup.POST("/points", progressHandler.AddPoints)
	progressGroup.POST("/badges", progressHandler.UnlockBadge)
	progressGroup.POST("/achievements", progressHandler.UnlockAchievement)
	progressGroup.PUT("/game", progressHandler.UpdateGameProgress)
	progressGroup.GET("/child/:childId", progressHandler.GetChildProgress)
}
