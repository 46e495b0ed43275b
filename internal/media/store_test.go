package media

import (
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if store.Exists("positive_001.jpg") {
		t.Error("file should not exist yet")
	}
	if store.Exists("") {
		t.Error("empty filename must never exist")
	}

	if err := os.MkdirAll(filepath.Join(root, "memes"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeImage(t, filepath.Join(root, "memes"), "positive_001.jpg")

	if !store.Exists("positive_001.jpg") {
		t.Error("file should exist after creation")
	}
}

func TestImportSequentialNaming(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	srcDir := t.TempDir()

	src := writeImage(t, srcDir, "funny-cat.JPG")

	first, err := store.Import(src, KindMeme)
	if err != nil {
		t.Fatal(err)
	}
	if first != "positive_001.jpg" {
		t.Errorf("first import = %q, want positive_001.jpg", first)
	}

	second, err := store.Import(src, KindMeme)
	if err != nil {
		t.Fatal(err)
	}
	if second != "positive_002.jpg" {
		t.Errorf("second import = %q, want positive_002.jpg", second)
	}

	calm, err := store.Import(writeImage(t, srcDir, "sunset.png"), KindCalm)
	if err != nil {
		t.Fatal(err)
	}
	if calm != "calm_001.png" {
		t.Errorf("calm import = %q, want calm_001.png", calm)
	}

	if !store.Exists(first) || !store.Exists(second) {
		t.Error("imported memes must be visible to Exists")
	}
}

func TestImportRejectsExtensionlessSource(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	src := writeImage(t, t.TempDir(), "noextension")

	if _, err := store.Import(src, KindMeme); err == nil {
		t.Fatal("expected error for source without extension")
	}
}

func TestKindByName(t *testing.T) {
	if kind, ok := KindByName("memes"); !ok || kind != KindMeme {
		t.Errorf("memes -> %+v, %v", kind, ok)
	}
	if kind, ok := KindByName("calm"); !ok || kind != KindCalm {
		t.Errorf("calm -> %+v, %v", kind, ok)
	}
	if _, ok := KindByName("gifs"); ok {
		t.Error("unknown kind must not resolve")
	}
}
