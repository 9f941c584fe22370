package entity

import (
	"fmt"
	"sort"
	"time"
)

type GameType string

const (
	GameTypeReading       GameType = "reading"
	GameTypeWriting       GameType = "writing"
	GameTypeSightWords    GameType = "sightWords"
	GameTypeComprehension GameType = "comprehension"
)

func AllGameTypes() []GameType {
	return []GameType{GameTypeReading, GameTypeWriting, GameTypeSightWords, GameTypeComprehension}
}

func (g GameType) Valid() bool {
	switch g {
	case GameTypeReading, GameTypeWriting, GameTypeSightWords, GameTypeComprehension:
		return true
	}
	return false
}

// MaxWeeklyStats bounds the rolling window of per-week statistics.
const MaxWeeklyStats = 12

// PointsPerLevel is the fixed width of every level band.
const PointsPerLevel = 100

type GameTypeProgress struct {
	Completed    int       `firestore:"completed" json:"completed"`
	Total        int       `firestore:"total" json:"total"`
	BestScore    int       `firestore:"bestScore" json:"bestScore"`
	AverageScore float64   `firestore:"averageScore" json:"averageScore"`
	Accuracy     float64   `firestore:"accuracy" json:"accuracy"`
	TimeSpent    int       `firestore:"timeSpent" json:"timeSpent"`
	LastPlayed   time.Time `firestore:"lastPlayed" json:"lastPlayed"`
}

// GameMetrics is one game-completion report for a single category.
// Completed is a delta added to the stored counter; Score feeds the
// running best; the remaining fields replace the stored values.
type GameMetrics struct {
	Completed    int       `json:"completed"`
	Total        int       `json:"total"`
	Score        int       `json:"score"`
	AverageScore float64   `json:"averageScore"`
	Accuracy     float64   `json:"accuracy"`
	TimeSpent    int       `json:"timeSpent"`
	LastPlayed   time.Time `json:"lastPlayed"`
}

type Badge struct {
	ID         string    `firestore:"id" json:"id"`
	UnlockedAt time.Time `firestore:"unlockedAt" json:"unlockedAt"`
}

// Achievement records an unlock together with the point value granted
// at unlock time, so later catalog edits cannot rewrite history.
type Achievement struct {
	ID         string    `firestore:"id" json:"id"`
	Points     int       `firestore:"points" json:"points"`
	UnlockedAt time.Time `firestore:"unlockedAt" json:"unlockedAt"`
}

type Streak struct {
	Current      int       `firestore:"current" json:"current"`
	Longest      int       `firestore:"longest" json:"longest"`
	LastActivity time.Time `firestore:"lastActivity" json:"lastActivity"`
}

type WeeklyStat struct {
	Week        string  `firestore:"week" json:"week"`
	Points      int     `firestore:"points" json:"points"`
	GamesPlayed int     `firestore:"gamesPlayed" json:"gamesPlayed"`
	TimeSpent   int     `firestore:"timeSpent" json:"timeSpent"`
	Accuracy    float64 `firestore:"accuracy" json:"accuracy"`
	Streak      int     `firestore:"streak" json:"streak"`
}

// Progress is the per-learner gamification aggregate. It is mutated
// only inside repository transactions; every mutator keeps the derived
// fields (level, totals, weekly window) consistent.
type Progress struct {
	UserID           string                       `firestore:"userId" json:"userId"`
	Points           int                          `firestore:"points" json:"points"`
	Level            int                          `firestore:"level" json:"level"`
	Badges           []Badge                      `firestore:"badges" json:"badges"`
	Achievements     []Achievement                `firestore:"achievements" json:"achievements"`
	Streak           Streak                       `firestore:"streak" json:"streak"`
	GameProgress     map[string]*GameTypeProgress `firestore:"gameProgress" json:"gameProgress"`
	WeeklyStats      []WeeklyStat                 `firestore:"weeklyStats" json:"weeklyStats"`
	TotalGamesPlayed int                          `firestore:"totalGamesPlayed" json:"totalGamesPlayed"`
	TotalTimeSpent   int                          `firestore:"totalTimeSpent" json:"totalTimeSpent"`
	AverageAccuracy  float64                      `firestore:"averageAccuracy" json:"averageAccuracy"`
	CreatedAt        time.Time                    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time                    `firestore:"updatedAt" json:"updatedAt"`
}

type AddPointsResult struct {
	NewPoints int    `json:"newPoints"`
	NewLevel  int    `json:"newLevel"`
	LeveledUp bool   `json:"leveledUp"`
	Reason    string `json:"reason,omitempty"`
}

// LeaderboardEntry is the read-only ranking projection joined with the
// learner's public identity.
type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	UserID           string  `json:"userId"`
	Username         string  `json:"username,omitempty"`
	Avatar           string  `json:"avatar,omitempty"`
	Points           int     `json:"points"`
	Level            int     `json:"level"`
	BadgeCount       int     `json:"badges"`
	AchievementCount int     `json:"achievements"`
	Accuracy         float64 `json:"accuracy,omitempty"`
}

type Summary struct {
	Points           int     `json:"points"`
	Level            int     `json:"level"`
	Badges           int     `json:"badges"`
	Achievements     int     `json:"achievements"`
	CurrentStreak    int     `json:"currentStreak"`
	LongestStreak    int     `json:"longestStreak"`
	TotalGamesPlayed int     `json:"totalGamesPlayed"`
	TotalTimeSpent   int     `json:"totalTimeSpent"`
	AverageAccuracy  float64 `json:"averageAccuracy"`
}

// NewProgress builds the default aggregate created lazily on first access.
func NewProgress(userID string, now time.Time) *Progress {
	games := make(map[string]*GameTypeProgress, len(AllGameTypes()))
	for _, gt := range AllGameTypes() {
		games[string(gt)] = &GameTypeProgress{}
	}

	return &Progress{
		UserID:       userID,
		Points:       0,
		Level:        1,
		Badges:       []Badge{},
		Achievements: []Achievement{},
		Streak: Streak{
			Current:      0,
			Longest:      0,
			LastActivity: now,
		},
		GameProgress: games,
		WeeklyStats:  []WeeklyStat{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// LevelFor derives the level for a point total, one level per
// PointsPerLevel points, never below 1.
func LevelFor(points int) int {
	level := points/PointsPerLevel + 1
	if level < 1 {
		return 1
	}
	return level
}

// ApplyLevel recomputes the level from current points. The stored level
// only ever moves up; it reports whether it did.
func (p *Progress) ApplyLevel() bool {
	newLevel := LevelFor(p.Points)
	if newLevel > p.Level {
		p.Level = newLevel
		return true
	}
	return false
}

// AddPoints increments the point total and rederives the level.
// amount must already be validated as positive by the caller.
func (p *Progress) AddPoints(amount int, now time.Time) AddPointsResult {
	p.Points += amount
	leveledUp := p.ApplyLevel()
	p.UpdatedAt = now

	return AddPointsResult{
		NewPoints: p.Points,
		NewLevel:  p.Level,
		LeveledUp: leveledUp,
	}
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AdvanceStreak applies the calendar-day streak rules. Days are compared
// as UTC dates rather than elapsed time, so DST and timezone offsets
// cannot skew the gap. Calling it again on the same day is a no-op apart
// from refreshing LastActivity.
func (p *Progress) AdvanceStreak(now time.Time) {
	gap := int(dateOnly(now).Sub(dateOnly(p.Streak.LastActivity)).Hours() / 24)

	switch {
	case gap == 1:
		p.Streak.Current++
	case gap > 1:
		p.Streak.Current = 1
	case p.Streak.Current == 0:
		// First ever activity starts the streak.
		p.Streak.Current = 1
	}

	if p.Streak.Current > p.Streak.Longest {
		p.Streak.Longest = p.Streak.Current
	}

	p.Streak.LastActivity = now
	p.UpdatedAt = now
}

// UpdateGameProgress merges one category's report and recomputes the
// cross-category totals. Completed accumulates; BestScore is a running
// max; the remaining metrics reflect the latest game.
func (p *Progress) UpdateGameProgress(gameType GameType, m GameMetrics) *GameTypeProgress {
	if p.GameProgress == nil {
		p.GameProgress = make(map[string]*GameTypeProgress)
	}

	gp := p.GameProgress[string(gameType)]
	if gp == nil {
		gp = &GameTypeProgress{}
		p.GameProgress[string(gameType)] = gp
	}

	gp.Completed += m.Completed
	if m.Total > 0 {
		gp.Total = m.Total
	}
	if m.Score > gp.BestScore {
		gp.BestScore = m.Score
	}
	gp.AverageScore = m.AverageScore
	gp.Accuracy = m.Accuracy
	gp.TimeSpent = m.TimeSpent
	if !m.LastPlayed.IsZero() {
		gp.LastPlayed = m.LastPlayed
		p.UpdatedAt = m.LastPlayed
	}

	p.recomputeTotals()

	return gp
}

func (p *Progress) recomputeTotals() {
	totalGames := 0
	totalTime := 0
	accuracySum := 0.0
	accuracyCount := 0

	for _, gp := range p.GameProgress {
		totalGames += gp.Completed
		totalTime += gp.TimeSpent
		if gp.Accuracy > 0 {
			accuracySum += gp.Accuracy
			accuracyCount++
		}
	}

	p.TotalGamesPlayed = totalGames
	p.TotalTimeSpent = totalTime
	if accuracyCount > 0 {
		p.AverageAccuracy = accuracySum / float64(accuracyCount)
	}
}

// RecordWeeklyStat upserts by week key. Additive fields accumulate for
// the week; accuracy and streak hold the latest snapshot. The window
// never exceeds MaxWeeklyStats entries; overflow evicts the oldest week
// by key, not by insertion order.
func (p *Progress) RecordWeeklyStat(entry WeeklyStat) {
	for i := range p.WeeklyStats {
		if p.WeeklyStats[i].Week == entry.Week {
			p.WeeklyStats[i].Points += entry.Points
			p.WeeklyStats[i].GamesPlayed += entry.GamesPlayed
			p.WeeklyStats[i].TimeSpent += entry.TimeSpent
			p.WeeklyStats[i].Accuracy = entry.Accuracy
			p.WeeklyStats[i].Streak = entry.Streak
			return
		}
	}

	p.WeeklyStats = append(p.WeeklyStats, entry)

	if len(p.WeeklyStats) > MaxWeeklyStats {
		sort.Slice(p.WeeklyStats, func(i, j int) bool {
			return p.WeeklyStats[i].Week < p.WeeklyStats[j].Week
		})
		p.WeeklyStats = p.WeeklyStats[len(p.WeeklyStats)-MaxWeeklyStats:]
	}
}

// UnlockBadge inserts the badge if absent and reports whether the call
// created it. An already unlocked badge is returned unchanged.
func (p *Progress) UnlockBadge(badgeID string, now time.Time) (Badge, bool) {
	for _, b := range p.Badges {
		if b.ID == badgeID {
			return b, false
		}
	}

	badge := Badge{ID: badgeID, UnlockedAt: now}
	p.Badges = append(p.Badges, badge)
	p.UpdatedAt = now
	return badge, true
}

// UnlockAchievement inserts the achievement if absent, recording the
// point value in force at unlock time.
func (p *Progress) UnlockAchievement(achievementID string, points int, now time.Time) (Achievement, bool) {
	for _, a := range p.Achievements {
		if a.ID == achievementID {
			return a, false
		}
	}

	achievement := Achievement{ID: achievementID, Points: points, UnlockedAt: now}
	p.Achievements = append(p.Achievements, achievement)
	p.UpdatedAt = now
	return achievement, true
}

// Clone deep-copies the aggregate so optimistic writers can mutate a
// private snapshot and compare-and-swap it back.
func (p *Progress) Clone() *Progress {
	cp := *p

	cp.Badges = append([]Badge(nil), p.Badges...)
	cp.Achievements = append([]Achievement(nil), p.Achievements...)
	cp.WeeklyStats = append([]WeeklyStat(nil), p.WeeklyStats...)

	cp.GameProgress = make(map[string]*GameTypeProgress, len(p.GameProgress))
	for k, v := range p.GameProgress {
		gp := *v
		cp.GameProgress[k] = &gp
	}

	return &cp
}

func (p *Progress) Summary() Summary {
	return Summary{
		Points:           p.Points,
		Level:            p.Level,
		Badges:           len(p.Badges),
		Achievements:     len(p.Achievements),
		CurrentStreak:    p.Streak.Current,
		LongestStreak:    p.Streak.Longest,
		TotalGamesPlayed: p.TotalGamesPlayed,
		TotalTimeSpent:   p.TotalTimeSpent,
		AverageAccuracy:  p.AverageAccuracy,
	}
}

// WeekKey formats the ISO year-week for a point in time, zero padded so
// lexicographic order matches chronological order.
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
