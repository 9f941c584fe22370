package router

import (
	"daxlearn/internal/adapter/api/handler"
	"daxlearn/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(
	e *echo.Echo,
	authMiddleware middleware.Authenticator,
	progressHandler *handler.ProgressHandler,
	gameHandler *handler.GameHandler,
	healthHandler *handler.HealthHandler,
) {
	SetupHealthRouter(e, healthHandler)
	SetupProgressRouter(e, progressHandler, authMiddleware)
	SetupGameRouter(e, gameHandler, authMiddleware)
}
