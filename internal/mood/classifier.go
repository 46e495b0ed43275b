package mood

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode"

	"go.uber.org/zap"
)

// KeywordTable maps each category to its trigger phrases.
type KeywordTable map[Category][]string

// keywordSnapshot is an immutable, pre-normalized view of a
// KeywordTable. Classification always runs against one snapshot, so a
// concurrent reload can never be observed mid-update.
type keywordSnapshot struct {
	// keywords holds normalized phrases per category.
	keywords map[Category][]string
}

// Classifier turns a button selection or a free-text message into
// exactly one Category. It is safe for concurrent use; Reload swaps
// the keyword snapshot atomically.
type Classifier struct {
	path     string
	logger   *zap.Logger
	snapshot atomic.Pointer[keywordSnapshot]
}

// NewClassifier loads keywords from the given JSON file. A missing or
// unreadable file is not fatal: the classifier degrades to always
// returning the default category.
func NewClassifier(keywordsPath string, logger *zap.Logger) *Classifier {
	c := &Classifier{path: keywordsPath, logger: logger}
	if err := c.Reload(); err != nil {
		logger.Warn("Keywords unavailable, classifier will return the default category",
			zap.String("path", keywordsPath), zap.Error(err))
		c.snapshot.Store(&keywordSnapshot{keywords: map[Category][]string{}})
	}
	return c
}

// Reload re-reads the keyword file and swaps the snapshot. On error the
// previous snapshot (if any) stays in place.
func (c *Classifier) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read keywords file: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(c.path), err)
	}

	snap := &keywordSnapshot{keywords: make(map[Category][]string, len(raw))}
	for name, phrases := range raw {
		cat := Category(name)
		if !cat.Valid() {
			c.logger.Warn("Skipping unknown category in keywords file", zap.String("category", name))
			continue
		}
		normalized := make([]string, 0, len(phrases))
		for _, p := range phrases {
			if n := NormalizeText(p); n != "" {
				normalized = append(normalized, n)
			}
		}
		snap.keywords[cat] = normalized
	}

	c.snapshot.Store(snap)
	c.logger.Info("Keyword table loaded", zap.Int("categories", len(snap.keywords)))
	return nil
}

// NormalizeText lowercases the input, turns punctuation into spaces and
// collapses runs of whitespace. Classification is insensitive to casing
// and punctuation because every input and keyword passes through here.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ClassifyButton maps a mood keyboard label to its category. Unknown
// labels fall back to the default category and never fail.
func (c *Classifier) ClassifyButton(label string) Category {
	if cat, ok := ButtonLabels[label]; ok {
		return cat
	}
	return DefaultCategory
}

// ClassifyText classifies a free-text mood description via keyword
// matching. A category matches when one of its phrases appears as a
// substring of the normalized text, or when any single word of the
// phrase equals one of the input tokens. Ties go to the
// highest-priority category; no match yields the default.
//
// The token rule is deliberately loose (recall over precision): a
// multi-word phrase matches on any shared word.
func (c *Classifier) ClassifyText(text string) Category {
	normalized := NormalizeText(text)
	tokens := map[string]bool{}
	for _, w := range strings.Fields(normalized) {
		tokens[w] = true
	}

	snap := c.snapshot.Load()

	best := DefaultCategory
	matched := false
	for cat, phrases := range snap.keywords {
		if !categoryMatches(phrases, normalized, tokens) {
			continue
		}
		if !matched || cat.Rank() > best.Rank() {
			best = cat
			matched = true
		}
	}
	if !matched {
		return DefaultCategory
	}
	return best
}

// Classify dispatches to the button or text path.
func (c *Classifier) Classify(input string, isButton bool) Category {
	if isButton {
		return c.ClassifyButton(input)
	}
	return c.ClassifyText(input)
}

func categoryMatches(phrases []string, normalized string, tokens map[string]bool) bool {
	for _, phrase := range phrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
		for _, w := range strings.Fields(phrase) {
			if tokens[w] {
				return true
			}
		}
	}
	return false
}
