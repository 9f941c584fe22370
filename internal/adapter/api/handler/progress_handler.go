package handler

import (
	"daxlearn/internal/domain/catalog"
	"daxlearn/internal/domain/entity"
	"daxlearn/internal/usecase"
	"daxlearn/pkg/response"
	"daxlearn/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ProgressHandler struct {
	progressUseCase *usecase.ProgressUseCase
}

func NewProgressHandler(progressUseCase *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{
		progressUseCase: progressUseCase,
	}
}

type addPointsRequest struct {
	Points int    `json:"points" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

type unlockBadgeRequest struct {
	BadgeID string `json:"badgeId" validate:"required"`
}

type unlockAchievementRequest struct {
	AchievementID string `json:"achievementId" validate:"required"`
}

type updateGameProgressRequest struct {
	GameType string             `json:"gameType" validate:"required"`
	Data     entity.GameMetrics `json:"data"`
}

func (h *ProgressHandler) GetProgress(c echo.Context) error {
	uid := c.Get("uid").(string)

	progress, err := h.progressUseCase.GetProgress(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

func (h *ProgressHandler) AddPoints(c echo.Context) error {
	var req addPointsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	result, err := h.progressUseCase.AddPoints(c.Request().Context(), uid, req.Points, req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *ProgressHandler) UnlockBadge(c echo.Context) error {
	var req unlockBadgeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	badge, err := h.progressUseCase.UnlockBadge(c.Request().Context(), uid, req.BadgeID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, badge)
}

func (h *ProgressHandler) UnlockAchievement(c echo.Context) error {
	var req unlockAchievementRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	result, err := h.progressUseCase.UnlockAchievement(c.Request().Context(), uid, req.AchievementID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *ProgressHandler) UpdateGameProgress(c echo.Context) error {
	var req updateGameProgressRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	progress, err := h.progressUseCase.UpdateGameProgress(c.Request().Context(), uid, entity.GameType(req.GameType), req.Data)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

func (h *ProgressHandler) GetSummary(c echo.Context) error {
	uid := c.Get("uid").(string)

	summary, err := h.progressUseCase.GetSummary(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}

func (h *ProgressHandler) GetLeaderboard(c echo.Context) error {
	limit := utils.GetLimitParam(c, 10, 100)
	gameType := c.QueryParam("gameType")

	entries, err := h.progressUseCase.GetLeaderboard(c.Request().Context(), limit, gameType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"leaderboard": entries,
		"limit":       limit,
		"count":       len(entries),
	})
}

func (h *ProgressHandler) GetChildProgress(c echo.Context) error {
	uid := c.Get("uid").(string)
	childID := c.Param("childId")

	progress, err := h.progressUseCase.GetChildProgress(c.Request().Context(), uid, childID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

func (h *ProgressHandler) GetBadgeCatalog(c echo.Context) error {
	return response.Success(c, catalog.Badges())
}

func (h *ProgressHandler) GetAchievementCatalog(c echo.Context) error {
	return response.Success(c, catalog.Achievements())
}
