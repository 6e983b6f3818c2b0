package sound

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCatalog(t *testing.T) {
	options, err := Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(options) == 0 {
		t.Fatal("Catalog is empty")
	}

	silent := false
	for _, o := range options {
		if o.ID == "" || o.Name == "" {
			t.Errorf("Option missing id or name: %+v", o)
		}
		if o.Silent() {
			silent = true
		}
	}
	if !silent {
		t.Error("Catalog should contain a silent option")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("chime"); err != nil {
		t.Errorf("Expected chime in catalog: %v", err)
	}
	if _, err := Lookup("does-not-exist"); err == nil {
		t.Error("Unknown id should error")
	}
}

func TestResolve(t *testing.T) {
	overrideDir := t.TempDir()
	bundledDir := t.TempDir()

	t.Run("BothMissing", func(t *testing.T) {
		r := NewResolverAt(overrideDir, bundledDir)
		_, err := r.Resolve("chime")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("BundledFallback", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(bundledDir, "chime.wav"), []byte("RIFF"), 0644); err != nil {
			t.Fatal(err)
		}
		r := NewResolverAt(overrideDir, bundledDir)
		path, err := r.Resolve("chime")
		if err != nil {
			t.Fatal(err)
		}
		if path != filepath.Join(bundledDir, "chime.wav") {
			t.Errorf("Expected bundled path, got %s", path)
		}
	})

	t.Run("OverrideWins", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(overrideDir, "chime.wav"), []byte("RIFF"), 0644); err != nil {
			t.Fatal(err)
		}
		r := NewResolverAt(overrideDir, bundledDir)
		path, err := r.Resolve("chime")
		if err != nil {
			t.Fatal(err)
		}
		if path != filepath.Join(overrideDir, "chime.wav") {
			t.Errorf("Override should win, got %s", path)
		}
	})

	t.Run("Silent", func(t *testing.T) {
		r := NewResolverAt(overrideDir, bundledDir)
		_, err := r.Resolve("silent")
		if !errors.Is(err, ErrSilent) {
			t.Errorf("Expected ErrSilent, got %v", err)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		r := NewResolverAt(overrideDir, bundledDir)
		if _, err := r.Resolve("nope"); err == nil {
			t.Error("Unknown id should error")
		}
	})
}
