package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is a filesystem-backed media library rooted at a single
// directory, with one subdirectory per kind (memes/, calm/).
type Store struct {
	root string
}

// Kind describes where an imported image lands and how it is named.
type Kind struct {
	Subdir string
	Prefix string
}

var (
	KindMeme = Kind{Subdir: "memes", Prefix: "positive"}
	KindCalm = Kind{Subdir: "calm", Prefix: "calm"}
)

// KindByName resolves the CLI-facing kind names.
func KindByName(name string) (Kind, bool) {
	switch name {
	case "memes":
		return KindMeme, true
	case "calm":
		return KindCalm, true
	}
	return Kind{}, false
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Exists reports whether the named meme file is present. The check
// runs before a reference is handed to the transport so the bot never
// promises an attachment it cannot deliver.
func (s *Store) Exists(filename string) bool {
	if filename == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(s.root, KindMeme.Subdir, filename))
	return err == nil && !info.IsDir()
}

// Path returns the full filesystem path of a meme file.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.root, KindMeme.Subdir, filename)
}

// Import copies src into the kind's subdirectory under the next
// sequential name (prefix_001.ext, prefix_002.ext, ...) and returns
// the assigned filename.
func (s *Store) Import(src string, kind Kind) (string, error) {
	ext := strings.ToLower(filepath.Ext(src))
	if ext == "" {
		return "", fmt.Errorf("source file %s has no extension", src)
	}

	dir := filepath.Join(s.root, kind.Subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name, err := s.nextFilename(dir, kind.Prefix, ext)
	if err != nil {
		return "", err
	}

	if err := copyFile(src, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Store) nextFilename(dir, prefix, ext string) (string, error) {
	for n := 1; n < 10000; n++ {
		name := fmt.Sprintf("%s_%03d%s", prefix, n, ext)
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free slot for prefix %s in %s", prefix, dir)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
