package telegram_bot

import (
	"strings"
	"testing"
	"time"

	"moodbot/internal/mood"
)

func TestCooldownMessage(t *testing.T) {
	cases := map[time.Duration]string{
		6*24*time.Hour + 23*time.Hour: "6d 23h",
		3 * time.Hour:                 "3h",
		30 * time.Minute:              "30m",
		10 * time.Second:              "1m",
	}
	for remaining, want := range cases {
		got := cooldownMessage(remaining)
		if !strings.Contains(got, want) {
			t.Errorf("cooldownMessage(%v) = %q, want it to contain %q", remaining, got, want)
		}
	}
}

func TestFormatResponseTextVideoLines(t *testing.T) {
	sad := formatResponseText(mood.SadLow, "hang in there", "https://example.com/v")
	if !strings.Contains(sad, "💭 Watch this: https://example.com/v") {
		t.Errorf("sad reply missing video line: %q", sad)
	}

	anxious := formatResponseText(mood.AnxiousStressed, "breathe", "https://example.com/v")
	if !strings.Contains(anxious, "🎵 Calm music: https://example.com/v") {
		t.Errorf("anxious reply missing video line: %q", anxious)
	}

	// Video URLs on non-eligible categories are ignored.
	positive := formatResponseText(mood.Positive, "yay", "https://example.com/v")
	if strings.Contains(positive, "example.com") {
		t.Errorf("positive reply must not contain a video link: %q", positive)
	}
}

func TestFormatResponseTextCrisisFooter(t *testing.T) {
	heavy := formatResponseText(mood.HeavyDeep, "you matter", "")
	if !strings.Contains(heavy, crisisFooter) {
		t.Errorf("heavy reply missing crisis footer: %q", heavy)
	}

	sad := formatResponseText(mood.SadLow, "hang in there", "")
	if strings.Contains(sad, crisisFooter) {
		t.Errorf("crisis footer must be HEAVY_DEEP only: %q", sad)
	}
}

func TestFormatResponseTextEmojiPrefix(t *testing.T) {
	got := formatResponseText(mood.AngryFrustrated, "breathe", "")
	if !strings.HasPrefix(got, "🔥 ") {
		t.Errorf("angry reply = %q, want 🔥 prefix", got)
	}
}

func TestMoodKeyboardCoversAllButtons(t *testing.T) {
	keyboard := moodKeyboard()

	if len(keyboard.InlineKeyboard) != len(mood.ButtonOrder)+1 {
		t.Fatalf("keyboard rows = %d, want %d", len(keyboard.InlineKeyboard), len(mood.ButtonOrder)+1)
	}
	for i, label := range mood.ButtonOrder {
		row := keyboard.InlineKeyboard[i]
		if len(row) != 1 || row[0].Text != label {
			t.Errorf("row %d = %+v, want button %q", i, row, label)
		}
		if row[0].CallbackData == nil || *row[0].CallbackData != moodDataPrefix+label {
			t.Errorf("row %d callback data = %v", i, row[0].CallbackData)
		}
	}
	last := keyboard.InlineKeyboard[len(keyboard.InlineKeyboard)-1][0]
	if last.CallbackData == nil || *last.CallbackData != typeMoodData {
		t.Errorf("last row must be the type-my-mood option, got %v", last.CallbackData)
	}
}
