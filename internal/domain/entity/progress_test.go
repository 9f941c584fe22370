package entity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0))
	assert.Equal(t, 1, LevelFor(99))
	assert.Equal(t, 2, LevelFor(100))
	assert.Equal(t, 3, LevelFor(250))
	assert.Equal(t, 1, LevelFor(-10))
}

func TestLevelForMonotonic(t *testing.T) {
	prev := LevelFor(0)
	for points := 0; points <= 1000; points += 7 {
		level := LevelFor(points)
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
}

func TestApplyLevelNeverLowers(t *testing.T) {
	p := NewProgress("u1", day(0))
	p.Points = 500
	require.True(t, p.ApplyLevel())
	assert.Equal(t, 6, p.Level)

	// A stored level above the derived one must survive.
	p.Points = 0
	assert.False(t, p.ApplyLevel())
	assert.Equal(t, 6, p.Level)
}

func TestAddPointsLevelUpScenario(t *testing.T) {
	p := NewProgress("u1", day(0))

	result := p.AddPoints(120, day(0))
	assert.Equal(t, 120, result.NewPoints)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.LeveledUp)

	result = p.AddPoints(30, day(0))
	assert.Equal(t, 150, result.NewPoints)
	assert.Equal(t, 2, result.NewLevel)
	assert.False(t, result.LeveledUp)
}

func TestAdvanceStreak(t *testing.T) {
	p := NewProgress("u1", day(0))
	p.Streak = Streak{Current: 1, Longest: 1, LastActivity: day(0)}

	p.AdvanceStreak(day(1))
	assert.Equal(t, 2, p.Streak.Current)
	assert.Equal(t, 2, p.Streak.Longest)

	// Gap of more than one day resets the run.
	p.AdvanceStreak(day(4))
	assert.Equal(t, 1, p.Streak.Current)
	assert.Equal(t, 2, p.Streak.Longest)
}

func TestAdvanceStreakSameDayIdempotent(t *testing.T) {
	p := NewProgress("u1", day(0))
	p.Streak = Streak{Current: 3, Longest: 5, LastActivity: day(0)}

	p.AdvanceStreak(day(0).Add(2 * time.Hour))
	p.AdvanceStreak(day(0).Add(5 * time.Hour))

	assert.Equal(t, 3, p.Streak.Current)
	assert.Equal(t, 5, p.Streak.Longest)
}

func TestAdvanceStreakDateOnlyComparison(t *testing.T) {
	p := NewProgress("u1", day(0))
	// 23:30 on day 0 to 00:30 on day 1 is under an hour of elapsed
	// time but still a one-day calendar gap.
	p.Streak = Streak{Current: 1, Longest: 1, LastActivity: time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)}

	p.AdvanceStreak(time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC))
	assert.Equal(t, 2, p.Streak.Current)
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	p := NewProgress("u1", day(0))

	p.AdvanceStreak(day(0))
	assert.Equal(t, 1, p.Streak.Current)
	assert.Equal(t, 1, p.Streak.Longest)
}

func TestUpdateGameProgressAccumulatesCompleted(t *testing.T) {
	p := NewProgress("u1", day(0))

	p.UpdateGameProgress(GameTypeReading, GameMetrics{Completed: 1, Score: 80, Accuracy: 75, TimeSpent: 10, LastPlayed: day(0)})
	p.UpdateGameProgress(GameTypeReading, GameMetrics{Completed: 1, Score: 60, Accuracy: 90, TimeSpent: 5, LastPlayed: day(1)})

	gp := p.GameProgress[string(GameTypeReading)]
	require.NotNil(t, gp)
	assert.Equal(t, 2, gp.Completed)
	assert.Equal(t, 80, gp.BestScore, "best score is a running max")
	assert.Equal(t, 90.0, gp.Accuracy, "accuracy reflects the latest game")
	assert.Equal(t, 5, gp.TimeSpent)
	assert.Equal(t, day(1), gp.LastPlayed)
}

func TestUpdateGameProgressRecomputesTotals(t *testing.T) {
	p := NewProgress("u1", day(0))

	p.UpdateGameProgress(GameTypeReading, GameMetrics{Completed: 2, Accuracy: 80, TimeSpent: 10, LastPlayed: day(0)})
	p.UpdateGameProgress(GameTypeWriting, GameMetrics{Completed: 1, Accuracy: 60, TimeSpent: 5, LastPlayed: day(0)})
	p.UpdateGameProgress(GameTypeSightWords, GameMetrics{Completed: 1, TimeSpent: 3, LastPlayed: day(0)})

	assert.Equal(t, 4, p.TotalGamesPlayed)
	assert.Equal(t, 18, p.TotalTimeSpent)
	// Categories with zero accuracy stay out of the mean.
	assert.InDelta(t, 70.0, p.AverageAccuracy, 0.001)
}

func TestRecordWeeklyStatMergesSameWeek(t *testing.T) {
	p := NewProgress("u1", day(0))

	p.RecordWeeklyStat(WeeklyStat{Week: "2026-W10", Points: 50, GamesPlayed: 1, TimeSpent: 10, Accuracy: 80, Streak: 2})
	p.RecordWeeklyStat(WeeklyStat{Week: "2026-W10", Points: 30, GamesPlayed: 2, TimeSpent: 5, Accuracy: 95, Streak: 3})

	require.Len(t, p.WeeklyStats, 1)
	stat := p.WeeklyStats[0]
	assert.Equal(t, 80, stat.Points)
	assert.Equal(t, 3, stat.GamesPlayed)
	assert.Equal(t, 15, stat.TimeSpent)
	assert.Equal(t, 95.0, stat.Accuracy)
	assert.Equal(t, 3, stat.Streak)
}

func TestRecordWeeklyStatEvictsOldestWeek(t *testing.T) {
	p := NewProgress("u1", day(0))

	// Insert the oldest week first and the rest in reverse order, so
	// eviction has to pick by key, not by insertion order.
	p.RecordWeeklyStat(WeeklyStat{Week: "2026-W01", Points: 1})
	for week := 13; week >= 2; week-- {
		p.RecordWeeklyStat(WeeklyStat{Week: fmt.Sprintf("2026-W%02d", week), Points: week})
	}

	require.Len(t, p.WeeklyStats, MaxWeeklyStats)
	weeks := make([]string, 0, len(p.WeeklyStats))
	for _, stat := range p.WeeklyStats {
		weeks = append(weeks, stat.Week)
	}
	assert.NotContains(t, weeks, "2026-W01", "the chronologically oldest week is evicted")
	assert.Contains(t, weeks, "2026-W02")
	assert.Contains(t, weeks, "2026-W13")
}

func TestUnlockBadgeIdempotent(t *testing.T) {
	p := NewProgress("u1", day(0))

	first, created := p.UnlockBadge("first-game", day(0))
	assert.True(t, created)

	second, created := p.UnlockBadge("first-game", day(3))
	assert.False(t, created)
	assert.Equal(t, first.UnlockedAt, second.UnlockedAt, "re-unlock keeps the original timestamp")
	assert.Len(t, p.Badges, 1)
}

func TestUnlockAchievementKeepsGrantedPoints(t *testing.T) {
	p := NewProgress("u1", day(0))

	first, created := p.UnlockAchievement("welcome", 50, day(0))
	assert.True(t, created)
	assert.Equal(t, 50, first.Points)

	// A later catalog value must not rewrite the stored record.
	second, created := p.UnlockAchievement("welcome", 500, day(1))
	assert.False(t, created)
	assert.Equal(t, 50, second.Points)
	assert.Len(t, p.Achievements, 1)
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewProgress("u1", day(0))
	p.UnlockBadge("first-game", day(0))
	p.UpdateGameProgress(GameTypeReading, GameMetrics{Completed: 1, Accuracy: 50, LastPlayed: day(0)})

	cp := p.Clone()
	cp.UnlockBadge("level-up", day(1))
	cp.GameProgress[string(GameTypeReading)].Completed = 99
	cp.Points = 1000

	assert.Len(t, p.Badges, 1)
	assert.Equal(t, 1, p.GameProgress[string(GameTypeReading)].Completed)
	assert.Equal(t, 0, p.Points)
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "2026-W09", WeekKey(time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC)))
	// Early January can belong to the previous ISO year.
	assert.Equal(t, "2020-W53", WeekKey(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewProgressDefaults(t *testing.T) {
	p := NewProgress("u1", day(0))

	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 1, p.Level)
	assert.Empty(t, p.Badges)
	assert.Empty(t, p.Achievements)
	assert.Len(t, p.GameProgress, 4)
	for _, gt := range AllGameTypes() {
		assert.Contains(t, p.GameProgress, string(gt))
	}
}

func TestGameTypeValid(t *testing.T) {
	for _, gt := range AllGameTypes() {
		assert.True(t, gt.Valid())
	}
	assert.False(t, GameType("algebra").Valid())
	assert.False(t, GameType("").Valid())
}
