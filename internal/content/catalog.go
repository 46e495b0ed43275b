package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"moodbot/internal/mood"
)

// CategoryContent is one category's entry in the response catalog.
type CategoryContent struct {
	Texts  []string `json:"texts"`
	Memes  []string `json:"memes"`
	Videos []string `json:"videos"`
}

// Catalog holds the response content for all categories behind an
// atomically swappable snapshot, so /reload never leaves a concurrent
// selection looking at a half-updated table.
type Catalog struct {
	path     string
	logger   *zap.Logger
	snapshot atomic.Pointer[map[mood.Category]CategoryContent]
}

// NewCatalog loads responses from the given JSON file. A missing file
// is not fatal: selection falls back to the hardcoded texts.
func NewCatalog(responsesPath string, logger *zap.Logger) *Catalog {
	c := &Catalog{path: responsesPath, logger: logger}
	if err := c.Reload(); err != nil {
		logger.Warn("Response catalog unavailable, falling back to built-in texts",
			zap.String("path", responsesPath), zap.Error(err))
		empty := map[mood.Category]CategoryContent{}
		c.snapshot.Store(&empty)
	}
	return c
}

// Reload re-reads the responses file and swaps the snapshot. On error
// the previous snapshot stays in place.
func (c *Catalog) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read responses file: %w", err)
	}

	var raw map[string]CategoryContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(c.path), err)
	}

	table := make(map[mood.Category]CategoryContent, len(raw))
	for name, entry := range raw {
		cat := mood.Category(name)
		if !cat.Valid() {
			c.logger.Warn("Skipping unknown category in responses file", zap.String("category", name))
			continue
		}
		table[cat] = entry
	}

	c.snapshot.Store(&table)
	c.logger.Info("Response catalog loaded", zap.Int("categories", len(table)))
	return nil
}

func (c *Catalog) get(cat mood.Category) (CategoryContent, bool) {
	table := *c.snapshot.Load()
	entry, ok := table[cat]
	return entry, ok
}
