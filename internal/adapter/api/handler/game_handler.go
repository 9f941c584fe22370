package handler

import (
	"daxlearn/internal/domain/entity"
	"daxlearn/internal/usecase"
	"daxlearn/pkg/response"

	"github.com/labstack/echo/v4"
)

type GameHandler struct {
	gameUseCase *usecase.GameUseCase
}

func NewGameHandler(gameUseCase *usecase.GameUseCase) *GameHandler {
	return &GameHandler{
		gameUseCase: gameUseCase,
	}
}

type gameResultRequest struct {
	Score     int     `json:"score" validate:"gte=0,lte=100"`
	Accuracy  float64 `json:"accuracy" validate:"gte=0,lte=100"`
	TimeSpent int     `json:"timeSpent" validate:"gte=0"`
	Mistakes  int     `json:"mistakes" validate:"gte=0"`
	HintsUsed int     `json:"hintsUsed" validate:"gte=0"`
}

func (h *GameHandler) SubmitResult(c echo.Context) error {
	var req gameResultRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	gameType := entity.GameType(c.Param("gameType"))

	outcome, err := h.gameUseCase.SubmitResult(c.Request().Context(), uid, gameType, usecase.GameResultReport{
		Score:     req.Score,
		Accuracy:  req.Accuracy,
		TimeSpent: req.TimeSpent,
		Mistakes:  req.Mistakes,
		HintsUsed: req.HintsUsed,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, outcome)
}
