package telegram_bot

import (
	"fmt"
	"time"

	"moodbot/internal/mood"
)

// cooldownMessage formats the "come back later" reply, e.g.
// "Next check-in available in: 6d 23h".
func cooldownMessage(remaining time.Duration) string {
	hours := int(remaining.Hours())
	days := hours / 24
	hours = hours % 24

	var when string
	if days > 0 {
		when = fmt.Sprintf("%dd %dh", days, hours)
	} else if hours > 0 {
		when = fmt.Sprintf("%dh", hours)
	} else {
		minutes := int(remaining.Minutes())
		if minutes < 1 {
			minutes = 1
		}
		when = fmt.Sprintf("%dm", minutes)
	}
	return "⏰ You already did your weekly check-in.\n\nNext check-in available in: " + when
}

// categoryEmoji prefixes every reply so the tone matches the mood.
var categoryEmoji = map[mood.Category]string{
	mood.Positive:        "😄",
	mood.NeutralTired:    "😴",
	mood.SadLow:          "💙",
	mood.AngryFrustrated: "🔥",
	mood.AnxiousStressed: "🌬️",
	mood.HeavyDeep:       "💙",
}

const crisisFooter = "🤝 Please reach out to someone you trust. Crisis support is available 24/7."

// formatResponseText assembles the reply text for a category: emoji
// prefix, the selected line, an optional video link and the crisis
// footer for heavy moods.
func formatResponseText(category mood.Category, text, videoURL string) string {
	category = mood.Normalize(category)
	out := categoryEmoji[category] + " " + text

	if videoURL != "" {
		switch category {
		case mood.SadLow:
			out += "\n\n💭 Watch this: " + videoURL
		case mood.AnxiousStressed:
			out += "\n\n🎵 Calm music: " + videoURL
		}
	}

	if category == mood.HeavyDeep {
		out += "\n\n" + crisisFooter
	}
	return out
}
