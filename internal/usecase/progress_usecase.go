package usecase

import (
	"context"
	"sort"
	"time"

	"daxlearn/internal/domain/catalog"
	"daxlearn/internal/domain/entity"
	"daxlearn/internal/domain/repository"
	apperrors "daxlearn/pkg/errors"
	"daxlearn/pkg/logger"
)

// LeaderboardCache is the optional snapshot store for leaderboard reads.
// Any error from Get is treated as a miss.
type LeaderboardCache interface {
	Get(ctx context.Context, limit int, gameType string) ([]entity.LeaderboardEntry, error)
	Set(ctx context.Context, limit int, gameType string, entries []entity.LeaderboardEntry) error
}

type ProgressUseCase struct {
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
	leaderboard  LeaderboardCache
}

func NewProgressUseCase(
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
	leaderboard LeaderboardCache,
) *ProgressUseCase {
	return &ProgressUseCase{
		progressRepo: progressRepo,
		userRepo:     userRepo,
		leaderboard:  leaderboard,
	}
}

type UnlockAchievementResult struct {
	Achievement   entity.Achievement `json:"achievement"`
	PointsGranted int                `json:"pointsGranted"`
	NewlyUnlocked bool               `json:"newlyUnlocked"`
}

// GetProgress returns the learner's aggregate, creating it with
// defaults on first access.
func (uc *ProgressUseCase) GetProgress(ctx context.Context, userID string) (*entity.Progress, error) {
	return uc.progressRepo.GetOrCreate(ctx, userID)
}

// AddPoints atomically grants a positive point amount, rederives the
// level and advances the learning streak. Each call is a distinct
// reward event; it is deliberately not idempotent.
func (uc *ProgressUseCase) AddPoints(ctx context.Context, userID string, amount int, reason string) (*entity.AddPointsResult, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("Points must be a positive number", nil)
	}

	var result entity.AddPointsResult
	_, err := uc.progressRepo.Mutate(ctx, userID, func(p *entity.Progress) error {
		now := time.Now()
		p.AdvanceStreak(now)
		result = p.AddPoints(amount, now)
		p.RecordWeeklyStat(entity.WeeklyStat{
			Week:   entity.WeekKey(now),
			Points: amount,
			Streak: p.Streak.Current,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Reason = reason
	return &result, nil
}

// UnlockBadge inserts the badge into the learner's set if the catalog
// knows the id. Repeating the call returns the existing record.
func (uc *ProgressUseCase) UnlockBadge(ctx context.Context, userID, badgeID string) (*entity.Badge, error) {
	if _, ok := catalog.Badge(badgeID); !ok {
		return nil, apperrors.Validation("Invalid badge ID", nil)
	}

	var badge entity.Badge
	_, err := uc.progressRepo.Mutate(ctx, userID, func(p *entity.Progress) error {
		badge, _ = p.UnlockBadge(badgeID, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &badge, nil
}

// UnlockAchievement inserts the achievement and grants its catalog
// point value in the same atomic update, so a retried or concurrent
// duplicate can never grant points twice.
func (uc *ProgressUseCase) UnlockAchievement(ctx context.Context, userID, achievementID string) (*UnlockAchievementResult, error) {
	def, ok := catalog.Achievement(achievementID)
	if !ok {
		return nil, apperrors.Validation("Invalid achievement ID", nil)
	}

	var result UnlockAchievementResult
	_, err := uc.progressRepo.Mutate(ctx, userID, func(p *entity.Progress) error {
		now := time.Now()

		achievement, created := p.UnlockAchievement(achievementID, def.Points, now)
		result = UnlockAchievementResult{
			Achievement:   achievement,
			NewlyUnlocked: created,
		}
		if !created {
			return nil
		}

		p.AdvanceStreak(now)
		p.AddPoints(def.Points, now)
		p.RecordWeeklyStat(entity.WeeklyStat{
			Week:   entity.WeekKey(now),
			Points: def.Points,
			Streak: p.Streak.Current,
		})
		result.PointsGranted = def.Points
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateGameProgress merges one category's reported metrics and
// advances the streak. Completed counts accumulate across reports.
func (uc *ProgressUseCase) UpdateGameProgress(ctx context.Context, userID string, gameType entity.GameType, metrics entity.GameMetrics) (*entity.GameTypeProgress, error) {
	if !gameType.Valid() {
		return nil, apperrors.Validation("Invalid game type", nil)
	}
	if metrics.Completed < 0 {
		return nil, apperrors.Validation("Completed count cannot be negative", nil)
	}
	if metrics.Accuracy < 0 || metrics.Accuracy > 100 {
		return nil, apperrors.Validation("Accuracy must be between 0 and 100", nil)
	}

	var updated entity.GameTypeProgress
	_, err := uc.progressRepo.Mutate(ctx, userID, func(p *entity.Progress) error {
		now := time.Now()
		if metrics.LastPlayed.IsZero() {
			metrics.LastPlayed = now
		}

		p.AdvanceStreak(now)
		gp := p.UpdateGameProgress(gameType, metrics)
		p.RecordWeeklyStat(entity.WeeklyStat{
			Week:        entity.WeekKey(now),
			GamesPlayed: metrics.Completed,
			TimeSpent:   metrics.TimeSpent,
			Accuracy:    metrics.Accuracy,
			Streak:      p.Streak.Current,
		})

		updated = *gp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetSummary projects the compact dashboard view; read-only.
func (uc *ProgressUseCase) GetSummary(ctx context.Context, userID string) (*entity.Summary, error) {
	progress, err := uc.progressRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := progress.Summary()
	return &summary, nil
}

// GetLeaderboard returns a ranked snapshot ordered by points desc,
// level desc, then user id asc for determinism. Served from the cache
// when one is configured; staleness is bounded by the cache TTL.
func (uc *ProgressUseCase) GetLeaderboard(ctx context.Context, limit int, gameType string) ([]entity.LeaderboardEntry, error) {
	if gameType != "" && !entity.GameType(gameType).Valid() {
		return nil, apperrors.Validation("Invalid game type", nil)
	}

	if uc.leaderboard != nil {
		if entries, err := uc.leaderboard.Get(ctx, limit, gameType); err == nil {
			return entries, nil
		}
	}

	top, err := uc.progressRepo.ListTop(ctx, limit)
	if err != nil {
		return nil, err
	}

	if gameType != "" {
		filtered := top[:0]
		for _, p := range top {
			if gp := p.GameProgress[gameType]; gp != nil && gp.Completed > 0 {
				filtered = append(filtered, p)
			}
		}
		top = filtered
	}

	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Points != top[j].Points {
			return top[i].Points > top[j].Points
		}
		if top[i].Level != top[j].Level {
			return top[i].Level > top[j].Level
		}
		return top[i].UserID < top[j].UserID
	})

	entries := make([]entity.LeaderboardEntry, 0, len(top))
	for i, p := range top {
		entry := entity.LeaderboardEntry{
			Rank:             i + 1,
			UserID:           p.UserID,
			Points:           p.Points,
			Level:            p.Level,
			BadgeCount:       len(p.Badges),
			AchievementCount: len(p.Achievements),
		}

		if gameType != "" {
			if gp := p.GameProgress[gameType]; gp != nil {
				entry.Accuracy = gp.Accuracy
			}
		}

		if user, err := uc.userRepo.GetByID(ctx, p.UserID); err == nil {
			entry.Username = user.Username
			entry.Avatar = user.Avatar
		}

		entries = append(entries, entry)
	}

	if uc.leaderboard != nil {
		if err := uc.leaderboard.Set(ctx, limit, gameType, entries); err != nil {
			logger.Warn("Failed to cache leaderboard: %v", err)
		}
	}

	return entries, nil
}

// GetChildProgress returns a child's aggregate after verifying the
// parent link. A missing progress record is a not-found error here, not
// an auto-create: parents only observe, they never initialize.
func (uc *ProgressUseCase) GetChildProgress(ctx context.Context, parentID, childID string) (*entity.Progress, error) {
	child, err := uc.userRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}

	if child.ParentID != parentID {
		return nil, apperrors.Forbidden("You can only view your own child's progress", nil)
	}

	return uc.progressRepo.Get(ctx, childID)
}
