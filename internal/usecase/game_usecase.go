package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"daxlearn/internal/domain/catalog"
	"daxlearn/internal/domain/entity"
	"daxlearn/internal/domain/repository"
	apperrors "daxlearn/pkg/errors"
	"daxlearn/pkg/logger"
)

// GameResultReport is one completed game as reported by the game
// boundary. TimeSpent is in seconds.
type GameResultReport struct {
	Score     int     `json:"score"`
	Accuracy  float64 `json:"accuracy"`
	TimeSpent int     `json:"timeSpent"`
	Mistakes  int     `json:"mistakes"`
	HintsUsed int     `json:"hintsUsed"`
}

type GameResultOutcome struct {
	ResultID             string                   `json:"resultId"`
	PointsEarned         int                      `json:"pointsEarned"`
	NewPoints            int                      `json:"newPoints"`
	NewLevel             int                      `json:"newLevel"`
	LeveledUp            bool                     `json:"leveledUp"`
	UnlockedBadges       []entity.Badge           `json:"unlockedBadges"`
	UnlockedAchievements []entity.Achievement     `json:"unlockedAchievements"`
	GameProgress         *entity.GameTypeProgress `json:"gameProgress"`
}

// GameUseCase turns raw game performance into progress mutations:
// derived points, category progress, streaks, weekly stats and any
// achievements or badges the performance qualifies for, all in one
// atomic update.
type GameUseCase struct {
	progressRepo repository.ProgressRepository
}

func NewGameUseCase(progressRepo repository.ProgressRepository) *GameUseCase {
	return &GameUseCase{
		progressRepo: progressRepo,
	}
}

var firstPlayAchievements = map[entity.GameType]string{
	entity.GameTypeReading:       "first-reading",
	entity.GameTypeWriting:       "first-writing",
	entity.GameTypeSightWords:    "sight-word-starter",
	entity.GameTypeComprehension: "comprehension-beginner",
}

// derivePoints applies the scoring policy: base on score, bonuses for
// accuracy and pace, penalties for hints and mistakes, never below the
// participation floor of 10.
func derivePoints(report GameResultReport) int {
	points := report.Score * 10

	if report.Accuracy >= 90 {
		points += 50
	} else if report.Accuracy >= 80 {
		points += 25
	}

	if report.TimeSpent > 0 && report.TimeSpent < 300 {
		points += 20
	}

	if report.HintsUsed > 0 {
		points -= report.HintsUsed * 5
		if points < 0 {
			points = 0
		}
	}

	if report.Mistakes > 0 {
		points -= report.Mistakes * 2
		if points < 0 {
			points = 0
		}
	}

	if points < 10 {
		points = 10
	}

	return points
}

// qualifiedAchievements maps performance to catalog achievement ids.
func qualifiedAchievements(gameType entity.GameType, report GameResultReport) []string {
	var ids []string

	if report.Accuracy >= 100 || report.Score >= 100 {
		ids = append(ids, "perfect-score")
	}
	if report.Mistakes == 0 {
		ids = append(ids, "no-mistakes")
	}
	if report.HintsUsed == 0 {
		ids = append(ids, "no-hints")
	}
	if id, ok := firstPlayAchievements[gameType]; ok {
		ids = append(ids, id)
	}

	return ids
}

func (uc *GameUseCase) SubmitResult(ctx context.Context, userID string, gameType entity.GameType, report GameResultReport) (*GameResultOutcome, error) {
	if !gameType.Valid() {
		return nil, apperrors.Validation("Invalid game type", nil)
	}
	if report.Score < 0 || report.Score > 100 {
		return nil, apperrors.Validation("Score must be between 0 and 100", nil)
	}
	if report.Accuracy < 0 || report.Accuracy > 100 {
		return nil, apperrors.Validation("Accuracy must be between 0 and 100", nil)
	}
	if report.TimeSpent < 0 || report.Mistakes < 0 || report.HintsUsed < 0 {
		return nil, apperrors.Validation("Time, mistakes and hints cannot be negative", nil)
	}

	points := derivePoints(report)
	candidates := qualifiedAchievements(gameType, report)

	outcome := GameResultOutcome{
		ResultID:     uuid.New().String(),
		PointsEarned: points,
	}

	minutes := report.TimeSpent / 60
	if report.TimeSpent%60 > 0 {
		minutes++
	}

	_, err := uc.progressRepo.Mutate(ctx, userID, func(p *entity.Progress) error {
		now := time.Now()

		// The closure may rerun on write contention; start each attempt
		// from a clean outcome.
		outcome.PointsEarned = points
		outcome.UnlockedBadges = nil
		outcome.UnlockedAchievements = nil

		levelBefore := p.Level
		p.AdvanceStreak(now)

		gp := p.UpdateGameProgress(gameType, entity.GameMetrics{
			Completed:    1,
			Score:        report.Score,
			AverageScore: float64(report.Score),
			Accuracy:     report.Accuracy,
			TimeSpent:    minutes,
			LastPlayed:   now,
		})

		p.AddPoints(points, now)

		for _, id := range candidates {
			def, ok := catalog.Achievement(id)
			if !ok {
				continue
			}
			if achievement, created := p.UnlockAchievement(id, def.Points, now); created {
				p.AddPoints(def.Points, now)
				outcome.UnlockedAchievements = append(outcome.UnlockedAchievements, achievement)
				outcome.PointsEarned += def.Points
			}
		}

		outcome.NewPoints = p.Points
		outcome.NewLevel = p.Level
		outcome.LeveledUp = p.Level > levelBefore

		// Milestone badges derived from the updated aggregate.
		if p.TotalGamesPlayed >= 1 {
			if badge, created := p.UnlockBadge("first-game", now); created {
				outcome.UnlockedBadges = append(outcome.UnlockedBadges, badge)
			}
		}
		if p.Streak.Current >= 7 {
			if badge, created := p.UnlockBadge("streak-master", now); created {
				outcome.UnlockedBadges = append(outcome.UnlockedBadges, badge)
			}
		}
		if p.Level >= 5 {
			if badge, created := p.UnlockBadge("level-up", now); created {
				outcome.UnlockedBadges = append(outcome.UnlockedBadges, badge)
			}
		}
		if gameType == entity.GameTypeReading && gp.Completed >= 10 {
			if badge, created := p.UnlockBadge("reading-master", now); created {
				outcome.UnlockedBadges = append(outcome.UnlockedBadges, badge)
			}
		}

		p.RecordWeeklyStat(entity.WeeklyStat{
			Week:        entity.WeekKey(now),
			Points:      outcome.PointsEarned,
			GamesPlayed: 1,
			TimeSpent:   minutes,
			Accuracy:    report.Accuracy,
			Streak:      p.Streak.Current,
		})

		outcome.GameProgress = gp
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := *outcome.GameProgress
	outcome.GameProgress = &snapshot

	logger.Info("Game result recorded: user=%s game=%s points=%d result=%s", userID, gameType, outcome.PointsEarned, outcome.ResultID)

	return &outcome, nil
}
