package router

import (
	"daxlearn/internal/adapter/api/handler"
	"daxlearn/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupGameRouter(e *echo.Echo, gameHandler *handler.GameHandler, authMiddleware middleware.Authenticator) {
	gameGroup := e.Group("/v1/games")
	gameGroup.Use(authMiddleware.Authenticate)

	gameGroup.POST("/:gameType/result", gameHandler.SubmitResult)
}
