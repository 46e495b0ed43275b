package content

import (
	"math/rand"

	"moodbot/internal/mood"
)

// ResponsePayload is the transport-agnostic reply for one check-in.
// Text is always non-empty; MemeFile and VideoURL are independently
// optional.
type ResponsePayload struct {
	Text     string
	TextID   string
	MemeFile string
	VideoURL string
}

// MediaChecker reports whether a media file actually exists in the
// backing store. A reference that fails the check is dropped rather
// than sent dangling.
type MediaChecker interface {
	Exists(filename string) bool
}

// Selector picks the reply content for a classified mood.
type Selector struct {
	catalog *Catalog
	media   MediaChecker
}

// NewSelector builds a Selector over the given catalog and media store.
func NewSelector(catalog *Catalog, media MediaChecker) *Selector {
	return &Selector{catalog: catalog, media: media}
}

// Which categories may carry which media. Angry and heavy moods get
// text only.
var (
	memeCategories = map[mood.Category]bool{
		mood.Positive:     true,
		mood.NeutralTired: true,
	}
	videoCategories = map[mood.Category]bool{
		mood.SadLow:          true,
		mood.AnxiousStressed: true,
	}
)

// genericFallback is returned when a category is entirely absent from
// the catalog.
const genericFallback = "Thanks for checking in. Take care of yourself."

// fallbackTexts are the per-category replies used when the catalog has
// no texts for a category. They are part of the contract, not
// configuration.
var fallbackTexts = map[mood.Category]string{
	mood.Positive:        "That's wonderful! Keep riding this wave and enjoy the moment.",
	mood.NeutralTired:    "It's okay to feel neutral. Rest when you need it.",
	mood.SadLow:          "I hear you. You're not alone in this. One step at a time.",
	mood.AngryFrustrated: "Your feelings are valid. Take a breath and give yourself space.",
	mood.AnxiousStressed: "Breathe. You're safe right now. One moment at a time.",
	mood.HeavyDeep:       "I'm glad you're here. Please reach out to someone you trust. Your life matters.",
}

// Select returns the reply payload for a category. It never fails:
// missing catalog entries and missing media degrade to text-only
// fallbacks.
func (s *Selector) Select(category mood.Category) ResponsePayload {
	category = mood.Normalize(category)

	entry, ok := s.catalog.get(category)
	if !ok {
		return ResponsePayload{Text: genericFallback, TextID: "default"}
	}

	payload := ResponsePayload{}

	if len(entry.Texts) > 0 {
		payload.Text = entry.Texts[rand.Intn(len(entry.Texts))]
		payload.TextID = string(category) + "_text"
	} else {
		payload.Text = fallbackTexts[category]
		payload.TextID = string(category) + "_fallback"
	}

	if memeCategories[category] && len(entry.Memes) > 0 {
		meme := entry.Memes[rand.Intn(len(entry.Memes))]
		if s.media != nil && s.media.Exists(meme) {
			payload.MemeFile = meme
		}
	}

	if videoCategories[category] && len(entry.Videos) > 0 {
		payload.VideoURL = entry.Videos[rand.Intn(len(entry.Videos))]
	}

	return payload
}
