package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"moodbot/internal/mood"
)

const testResponses = `{
	"POSITIVE": {
		"texts": ["nice one"],
		"memes": ["positive_001.jpg", "positive_002.jpg"],
		"videos": ["https://example.com/should-never-appear"]
	},
	"NEUTRAL_TIRED": {
		"texts": ["rest up"],
		"memes": ["calm_001.jpg"]
	},
	"SAD_LOW": {
		"texts": ["hang in there"],
		"memes": ["positive_001.jpg"],
		"videos": ["https://example.com/sad"]
	},
	"ANGRY_FRUSTRATED": {
		"texts": ["breathe"],
		"memes": ["positive_001.jpg"],
		"videos": ["https://example.com/angry"]
	},
	"ANXIOUS_STRESSED": {
		"texts": ["one step at a time"],
		"videos": ["https://example.com/calm"]
	},
	"HEAVY_DEEP": {
		"texts": []
	}
}`

type fakeMedia struct {
	existing map[string]bool
}

func (f *fakeMedia) Exists(filename string) bool {
	return f.existing[filename]
}

func newTestSelector(t *testing.T, responses string, existing ...string) *Selector {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.json")
	if err := os.WriteFile(path, []byte(responses), 0o644); err != nil {
		t.Fatal(err)
	}
	catalog := NewCatalog(path, zap.NewNop())

	media := &fakeMedia{existing: map[string]bool{}}
	for _, name := range existing {
		media.existing[name] = true
	}
	return NewSelector(catalog, media)
}

func TestSelectText(t *testing.T) {
	s := newTestSelector(t, testResponses, "positive_001.jpg", "positive_002.jpg")

	got := s.Select(mood.Positive)
	if got.Text != "nice one" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.TextID != "POSITIVE_text" {
		t.Errorf("TextID = %q, want POSITIVE_text", got.TextID)
	}
}

func TestSelectNoMediaForAngryAndHeavy(t *testing.T) {
	// Catalog deliberately lists memes and videos for ANGRY_FRUSTRATED;
	// the category rules must drop them anyway.
	s := newTestSelector(t, testResponses, "positive_001.jpg", "calm_001.jpg")

	for i := 0; i < 50; i++ {
		for _, cat := range []mood.Category{mood.AngryFrustrated, mood.HeavyDeep} {
			got := s.Select(cat)
			if got.MemeFile != "" || got.VideoURL != "" {
				t.Fatalf("%s must never carry media, got meme=%q video=%q", cat, got.MemeFile, got.VideoURL)
			}
			if got.Text == "" {
				t.Fatalf("%s returned empty text", cat)
			}
		}
	}
}

func TestSelectVideoOnlyForSadAndAnxious(t *testing.T) {
	s := newTestSelector(t, testResponses)

	if got := s.Select(mood.SadLow); got.VideoURL != "https://example.com/sad" {
		t.Errorf("SAD_LOW video = %q", got.VideoURL)
	}
	if got := s.Select(mood.AnxiousStressed); got.VideoURL != "https://example.com/calm" {
		t.Errorf("ANXIOUS_STRESSED video = %q", got.VideoURL)
	}
	for i := 0; i < 20; i++ {
		if got := s.Select(mood.Positive); got.VideoURL != "" {
			t.Fatalf("POSITIVE must not carry video, got %q", got.VideoURL)
		}
	}
}

func TestSelectMemeOnlyWhenFileExists(t *testing.T) {
	s := newTestSelector(t, testResponses, "positive_001.jpg")

	sawMeme := false
	for i := 0; i < 100; i++ {
		got := s.Select(mood.Positive)
		if got.MemeFile == "positive_002.jpg" {
			t.Fatal("missing meme file must be dropped, not returned")
		}
		if got.MemeFile == "positive_001.jpg" {
			sawMeme = true
		}
	}
	if !sawMeme {
		t.Error("existing meme was never selected across 100 draws")
	}

	// SAD_LOW lists a meme but is not a meme-eligible category.
	if got := s.Select(mood.SadLow); got.MemeFile != "" {
		t.Errorf("SAD_LOW must not carry memes, got %q", got.MemeFile)
	}
}

func TestSelectEmptyTextsUsesFallback(t *testing.T) {
	s := newTestSelector(t, testResponses)

	got := s.Select(mood.HeavyDeep)
	if got.Text == "" {
		t.Fatal("fallback text must be non-empty")
	}
	if !strings.Contains(got.Text, "Your life matters") {
		t.Errorf("unexpected fallback text %q", got.Text)
	}
	if got.TextID != "HEAVY_DEEP_fallback" {
		t.Errorf("TextID = %q, want HEAVY_DEEP_fallback", got.TextID)
	}
}

func TestSelectAbsentCategoryUsesGenericFallback(t *testing.T) {
	s := newTestSelector(t, `{"POSITIVE": {"texts": ["yay"]}}`)

	got := s.Select(mood.SadLow)
	if got.Text != genericFallback {
		t.Errorf("Text = %q, want generic fallback", got.Text)
	}
	if got.TextID != "default" {
		t.Errorf("TextID = %q, want default", got.TextID)
	}
	if got.MemeFile != "" || got.VideoURL != "" {
		t.Error("generic fallback must carry no media")
	}
}

func TestSelectUnknownCategoryTreatedAsDefault(t *testing.T) {
	s := newTestSelector(t, testResponses, "calm_001.jpg")

	got := s.Select(mood.Category("BOGUS"))
	if got.Text != "rest up" {
		t.Errorf("unknown category should select as %s, got text %q", mood.DefaultCategory, got.Text)
	}
}

func TestSelectMissingCatalogFileDegrades(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	s := NewSelector(catalog, &fakeMedia{})

	got := s.Select(mood.Positive)
	if got.Text != genericFallback || got.TextID != "default" {
		t.Errorf("missing catalog must yield generic fallback, got %+v", got)
	}
}

func TestCatalogReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.json")
	if err := os.WriteFile(path, []byte(`{"POSITIVE": {"texts": ["before"]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	catalog := NewCatalog(path, zap.NewNop())
	s := NewSelector(catalog, &fakeMedia{})

	if got := s.Select(mood.Positive); got.Text != "before" {
		t.Fatalf("Text = %q", got.Text)
	}

	if err := os.WriteFile(path, []byte(`{"POSITIVE": {"texts": ["after"]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := catalog.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := s.Select(mood.Positive); got.Text != "after" {
		t.Errorf("after reload Text = %q", got.Text)
	}
}
