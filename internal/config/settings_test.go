package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const marker = "/usr/local/bin/cchime"

func testCommands() map[string]string {
	return map[string]string{
		HookPreToolUse:   marker + " pre-tool-use",
		HookNotification: marker + " notify --notify",
		HookStop:         marker + " stop --chat",
		HookSubagentStop: marker + " stop",
	}
}

func settingsAt(t *testing.T, content string) *Settings {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return NewSettingsAt(path)
}

func hookEntryCount(t *testing.T, s *Settings, event string) int {
	t.Helper()
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	hooks := map[string][]json.RawMessage{}
	if raw, ok := doc["hooks"]; ok {
		if err := json.Unmarshal(raw, &hooks); err != nil {
			t.Fatal(err)
		}
	}
	return len(hooks[event])
}

func TestRegisterHooksFreshFile(t *testing.T) {
	s := settingsAt(t, "")
	if err := s.RegisterHooks(testCommands(), marker); err != nil {
		t.Fatal(err)
	}
	for _, event := range HookEvents {
		if n := hookEntryCount(t, s, event); n != 1 {
			t.Errorf("Event %s: expected 1 entry, got %d", event, n)
		}
		if _, ok := s.InstalledHookCommand(event, marker); !ok {
			t.Errorf("Event %s: registered command not found", event)
		}
	}
}

func TestRegisterHooksIdempotent(t *testing.T) {
	s := settingsAt(t, "")
	if err := s.RegisterHooks(testCommands(), marker); err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterHooks(testCommands(), marker); err != nil {
		t.Fatal(err)
	}
	for _, event := range HookEvents {
		if n := hookEntryCount(t, s, event); n != 1 {
			t.Errorf("Event %s: expected exactly 1 entry after double install, got %d", event, n)
		}
	}
}

func TestRegisterHooksPreservesForeignEntries(t *testing.T) {
	s := settingsAt(t, `{
		"model": "opus",
		"env": {"FOO": "bar"},
		"hooks": {
			"Stop": [
				{"matcher": "", "hooks": [{"type": "command", "command": "/opt/other/tool stop"}]}
			]
		}
	}`)

	if err := s.RegisterHooks(testCommands(), marker); err != nil {
		t.Fatal(err)
	}

	if n := hookEntryCount(t, s, HookStop); n != 2 {
		t.Errorf("Expected foreign entry plus ours on Stop, got %d entries", n)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if string(doc["model"]) != `"opus"` {
		t.Errorf("Unrelated key 'model' was altered: %s", doc["model"])
	}
	if _, ok := doc["env"]; !ok {
		t.Error("Unrelated key 'env' was dropped")
	}
}

func TestUnregisterHooks(t *testing.T) {
	s := settingsAt(t, `{
		"permissions": {"allow": ["Bash"]},
		"hooks": {
			"Stop": [
				{"matcher": "", "hooks": [{"type": "command", "command": "/opt/other/tool stop"}]}
			]
		}
	}`)

	if err := s.RegisterHooks(testCommands(), marker); err != nil {
		t.Fatal(err)
	}
	if err := s.UnregisterHooks(marker); err != nil {
		t.Fatal(err)
	}

	for _, event := range []string{HookPreToolUse, HookNotification, HookSubagentStop} {
		if n := hookEntryCount(t, s, event); n != 0 {
			t.Errorf("Event %s: expected 0 entries after uninstall, got %d", event, n)
		}
	}
	if n := hookEntryCount(t, s, HookStop); n != 1 {
		t.Errorf("Foreign Stop entry should survive uninstall, got %d entries", n)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["permissions"]; !ok {
		t.Error("Unrelated key 'permissions' was dropped")
	}
}

func TestInstalledHookCommandSubstringMatch(t *testing.T) {
	// The ownership check is a substring match; a foreign command that
	// merely mentions the marker text also matches. Known limitation.
	s := settingsAt(t, `{
		"hooks": {
			"Stop": [
				{"matcher": "", "hooks": [{"type": "command", "command": "echo /usr/local/bin/cchime"}]}
			]
		}
	}`)
	if _, ok := s.InstalledHookCommand(HookStop, marker); !ok {
		t.Error("Substring match should report the entry")
	}
	if _, ok := s.InstalledHookCommand(HookNotification, marker); ok {
		t.Error("No entry exists for Notification")
	}
}

func TestSettingsMissingFileDegrades(t *testing.T) {
	s := NewSettingsAt(filepath.Join(t.TempDir(), "missing", "settings.json"))
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Missing file should degrade to empty document, got %v", err)
	}
	if len(doc) != 0 {
		t.Errorf("Expected empty document, got %v", doc)
	}
}
