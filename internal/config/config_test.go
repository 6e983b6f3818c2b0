package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreLoadSave(t *testing.T) {
	t.Run("NoConfigFile", func(t *testing.T) {
		store := NewStoreAt(t.TempDir())
		cfg, err := store.Load()
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if cfg != nil {
			t.Errorf("Expected nil config, got %v", cfg)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := NewStoreAt(filepath.Join(t.TempDir(), "cchime"))
		want := &Config{
			Mode:        ModeTTS,
			Provider:    "polly",
			APIKey:      "sk-test-1234",
			Sounds:      SoundSelection{Notification: "chime", Completion: "gong"},
			InstalledAt: "2026-08-26T10:00:00Z",
			Version:     "1.2.3",
		}
		if err := store.Save(want); err != nil {
			t.Fatal(err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatal(err)
		}
		if got == nil {
			t.Fatal("Expected config, got nil")
		}
		if *got != *want {
			t.Errorf("Round trip mismatch: got %+v, want %+v", got, want)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		store := NewStoreAt(dir)
		if _, err := store.Load(); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("SaveCreatesDirectory", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "nested", "cchime")
		store := NewStoreAt(base)
		if err := store.Save(&Config{Mode: ModeStandard}); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(base, ConfigFileName)); err != nil {
			t.Errorf("Config file not created: %v", err)
		}
	})
}

func TestStoreRemove(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	if err := store.Save(&Config{Mode: ModeStandard, Version: "1.0.0"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(); err != nil {
		t.Fatal(err)
	}

	// File still exists but parses as "not configured".
	cfg, err := store.Load()
	if err != nil {
		t.Errorf("Expected no error after remove, got %v", err)
	}
	if cfg != nil {
		t.Errorf("Expected nil config after remove, got %+v", cfg)
	}

	// Removing twice is fine.
	if err := store.Remove(); err != nil {
		t.Errorf("Second remove failed: %v", err)
	}
}

func TestTTSProvider(t *testing.T) {
	// Configs written before provider selection existed carry no provider
	// field and must keep working.
	cfg := &Config{Mode: ModeTTS}
	if got := cfg.TTSProvider(); got != DefaultTTSProvider {
		t.Errorf("TTSProvider() = %q, want the default", got)
	}

	cfg.Provider = "gcp"
	if got := cfg.TTSProvider(); got != "gcp" {
		t.Errorf("TTSProvider() = %q, want gcp", got)
	}
}

func TestValidateAPIKey(t *testing.T) {
	if err := ValidateAPIKey(""); err == nil {
		t.Error("Empty key should be rejected")
	}
	if err := ValidateAPIKey("short"); err == nil {
		t.Error("Very short key should be rejected")
	}
	if err := ValidateAPIKey("sk-abcdef123456"); err != nil {
		t.Errorf("Plausible key rejected: %v", err)
	}
}
