// Package catalog holds the static definitions of unlockable badges and
// achievements. Definitions are immutable data looked up by id; learner
// state only ever stores the minimal unlock record.
package catalog

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type BadgeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Rarity      Rarity `json:"rarity"`
}

type AchievementDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
}

var badges = map[string]BadgeDefinition{
	"first-game": {
		ID:          "first-game",
		Name:        "First Steps",
		Description: "Completed your first game",
		Icon:        "🎮",
		Category:    "general",
		Rarity:      RarityCommon,
	},
	"reading-master": {
		ID:          "reading-master",
		Name:        "Reading Master",
		Description: "Completed 10 reading games",
		Icon:        "📚",
		Category:    "reading",
		Rarity:      RarityRare,
	},
	"writing-expert": {
		ID:          "writing-expert",
		Name:        "Writing Expert",
		Description: "Practiced all letters",
		Icon:        "✏️",
		Category:    "writing",
		Rarity:      RarityEpic,
	},
	"sight-word-champion": {
		ID:          "sight-word-champion",
		Name:        "Sight Word Champion",
		Description: "Mastered 50 sight words",
		Icon:        "👁️",
		Category:    "sight-words",
		Rarity:      RarityLegendary,
	},
	"comprehension-genius": {
		ID:          "comprehension-genius",
		Name:        "Comprehension Genius",
		Description: "Perfect score on comprehension",
		Icon:        "🧠",
		Category:    "comprehension",
		Rarity:      RarityEpic,
	},
	"streak-master": {
		ID:          "streak-master",
		Name:        "Streak Master",
		Description: "7-day learning streak",
		Icon:        "🔥",
		Category:    "general",
		Rarity:      RarityRare,
	},
	"level-up": {
		ID:          "level-up",
		Name:        "Level Up!",
		Description: "Reached level 5",
		Icon:        "⭐",
		Category:    "general",
		Rarity:      RarityCommon,
	},
}

var achievements = map[string]AchievementDefinition{
	"welcome": {
		ID:          "welcome",
		Name:        "Welcome to Dax",
		Description: "Started your learning journey",
		Points:      50,
		Category:    "general",
	},
	"first-reading": {
		ID:          "first-reading",
		Name:        "First Reader",
		Description: "Completed your first reading game",
		Points:      25,
		Category:    "reading",
	},
	"first-writing": {
		ID:          "first-writing",
		Name:        "First Writer",
		Description: "Practiced your first letter",
		Points:      25,
		Category:    "writing",
	},
	"sight-word-starter": {
		ID:          "sight-word-starter",
		Name:        "Sight Word Starter",
		Description: "Learned your first sight word",
		Points:      25,
		Category:    "sight-words",
	},
	"comprehension-beginner": {
		ID:          "comprehension-beginner",
		Name:        "Comprehension Beginner",
		Description: "Completed your first comprehension exercise",
		Points:      25,
		Category:    "comprehension",
	},
	"streak-3": {
		ID:          "streak-3",
		Name:        "3-Day Streak",
		Description: "Maintained a 3-day learning streak",
		Points:      50,
		Category:    "general",
	},
	"streak-7": {
		ID:          "streak-7",
		Name:        "Week Warrior",
		Description: "Maintained a 7-day learning streak",
		Points:      100,
		Category:    "general",
	},
	"level-5": {
		ID:          "level-5",
		Name:        "Level 5 Achiever",
		Description: "Reached level 5",
		Points:      75,
		Category:    "general",
	},
	"perfect-score": {
		ID:          "perfect-score",
		Name:        "Perfect Score",
		Description: "Achieved 100% accuracy in a game",
		Points:      100,
		Category:    "general",
	},
	"no-mistakes": {
		ID:          "no-mistakes",
		Name:        "Flawless",
		Description: "Finished a game without a single mistake",
		Points:      50,
		Category:    "general",
	},
	"no-hints": {
		ID:          "no-hints",
		Name:        "Independent Learner",
		Description: "Finished a game without using hints",
		Points:      25,
		Category:    "general",
	},
}

// Badge looks up a badge definition by id.
func Badge(id string) (BadgeDefinition, bool) {
	def, ok := badges[id]
	return def, ok
}

// Achievement looks up an achievement definition by id.
func Achievement(id string) (AchievementDefinition, bool) {
	def, ok := achievements[id]
	return def, ok
}

// Badges returns every badge definition. The slice is a copy; callers
// cannot mutate the registry.
func Badges() []BadgeDefinition {
	out := make([]BadgeDefinition, 0, len(badges))
	for _, def := range badges {
		out = append(out, def)
	}
	return out
}

// Achievements returns every achievement definition as a copy.
func Achievements() []AchievementDefinition {
	out := make([]AchievementDefinition, 0, len(achievements))
	for _, def := range achievements {
		out = append(out, def)
	}
	return out
}
