package wizard

import (
	"testing"

	"cchime/internal/config"
)

// Only the non-interactive paths are tested; the huh forms need a tty.

func TestSwitchModeToStandard(t *testing.T) {
	w := New("test")
	cfg := &config.Config{
		Mode:   config.ModeTTS,
		APIKey: "sk-keep-me-123",
		Sounds: config.SoundSelection{Notification: "chime", Completion: "gong"},
	}

	updated, err := w.SwitchMode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Mode != config.ModeStandard {
		t.Errorf("Mode = %q, want standard", updated.Mode)
	}
	if updated.APIKey != "sk-keep-me-123" {
		t.Error("API key should be preserved when switching to standard")
	}
	if cfg.Mode != config.ModeTTS {
		t.Error("Input config must not be mutated")
	}
}

func TestSwitchModeToTTSWithStoredKey(t *testing.T) {
	w := New("test")
	cfg := &config.Config{
		Mode:   config.ModeStandard,
		APIKey: "sk-stored-123",
	}

	// With a stored key no prompt runs, so this works headless.
	updated, err := w.SwitchMode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Mode != config.ModeTTS {
		t.Errorf("Mode = %q, want tts", updated.Mode)
	}
	if updated.APIKey != "sk-stored-123" {
		t.Error("Stored API key should be reused")
	}
}

func TestSwitchModePreservesProvider(t *testing.T) {
	w := New("test")
	cfg := &config.Config{
		Mode:     config.ModeTTS,
		Provider: "polly",
	}

	updated, err := w.SwitchMode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Provider != "polly" {
		t.Error("Provider should survive a mode switch")
	}
}

func TestSwitchModeToTTSWithCredentialProvider(t *testing.T) {
	w := New("test")
	cfg := &config.Config{
		Mode:     config.ModeStandard,
		Provider: "gcp",
	}

	// SDK-credential providers need no API key, so no prompt runs and the
	// switch works headless.
	updated, err := w.SwitchMode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Mode != config.ModeTTS {
		t.Errorf("Mode = %q, want tts", updated.Mode)
	}
	if updated.APIKey != "" {
		t.Errorf("No API key should be collected for gcp, got %q", updated.APIKey)
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey("sk-abcdef"); got != "****cdef" {
		t.Errorf("maskKey = %q", got)
	}
	if got := maskKey("ab"); got != "****" {
		t.Errorf("Short key should be fully masked, got %q", got)
	}
}
