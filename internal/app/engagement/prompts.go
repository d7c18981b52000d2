package engagement

import "github.com/pulse-app/pulse/internal/domain"

// Prompt is the static re-engagement copy for one level.
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

var prompts = map[domain.EngagementLevel]Prompt{
	domain.LevelActive: {
		Title:   "You're on a roll",
		Message: "Keep the momentum going — one session at a time.",
	},
	domain.LevelSlipping: {
		Title:   "Don't lose your rhythm",
		Message: "It's been a couple of days. Even ten minutes counts.",
	},
	domain.LevelDormant: {
		Title:   "Your focus areas miss you",
		Message: "A short session today restarts the habit.",
	},
	domain.LevelReset: {
		Title:   "Fresh start",
		Message: "Every streak begins with a single session. Start one now.",
	},
}

// PromptFor returns the display copy for a level.
func PromptFor(level domain.EngagementLevel) Prompt {
	return prompts[level]
}
