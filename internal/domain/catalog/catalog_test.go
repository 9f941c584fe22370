package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeLookup(t *testing.T) {
	def, ok := Badge("first-game")
	require.True(t, ok)
	assert.Equal(t, "First Steps", def.Name)
	assert.Equal(t, RarityCommon, def.Rarity)

	_, ok = Badge("no-such-badge")
	assert.False(t, ok)
}

func TestAchievementLookup(t *testing.T) {
	def, ok := Achievement("welcome")
	require.True(t, ok)
	assert.Equal(t, 50, def.Points)

	def, ok = Achievement("streak-7")
	require.True(t, ok)
	assert.Equal(t, 100, def.Points)

	_, ok = Achievement("no-such-achievement")
	assert.False(t, ok)
}

func TestAchievementPointsArePositive(t *testing.T) {
	for _, def := range Achievements() {
		assert.Greater(t, def.Points, 0, "achievement %s must grant points", def.ID)
	}
}

func TestListingsCoverRegistry(t *testing.T) {
	badges := Badges()
	assert.Len(t, badges, 7)

	achievements := Achievements()
	assert.Len(t, achievements, 11)

	ids := make(map[string]bool)
	for _, def := range achievements {
		assert.False(t, ids[def.ID], "duplicate achievement id %s", def.ID)
		ids[def.ID] = true
	}
}
