package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Hook event names as Claude Code spells them in settings.json.
const (
	HookPreToolUse   = "PreToolUse"
	HookNotification = "Notification"
	HookStop         = "Stop"
	HookSubagentStop = "SubagentStop"
)

// HookEvents lists every event cchime registers a handler for.
var HookEvents = []string{HookPreToolUse, HookNotification, HookStop, HookSubagentStop}

// Settings wraps the host-owned ~/.claude/settings.json. The document is
// treated as an opaque bag: only the "hooks" key is ever interpreted, and
// every other key survives a load-mutate-save cycle untouched.
type Settings struct {
	path string
}

// NewSettings returns a Settings bound to ~/.claude/settings.json.
func NewSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewSettingsAt(filepath.Join(homeDir, ClaudeDir, "settings.json")), nil
}

// NewSettingsAt returns a Settings bound to an explicit path.
func NewSettingsAt(path string) *Settings {
	return &Settings{path: path}
}

// hookEntry is the one shape inside "hooks" this tool understands. Entries
// that do not parse into it are carried through unmodified.
type hookEntry struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []hookCommand `json:"hooks"`
}

type hookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// Load parses the settings document. Missing or unreadable files degrade to
// an empty document so install still works on a fresh machine.
func (s *Settings) Load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("Could not read settings, starting empty")
		}
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return doc, nil
}

// Save writes the whole document back in one operation.
func (s *Settings) Save(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), DirPermission); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, FilePermission); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	log.Debug().Str("path", s.path).Msg("Saved settings")
	return nil
}

// RegisterHooks installs one command per event. Any existing entry whose
// command contains the marker is dropped first, so installing twice leaves
// exactly one registration per event.
func (s *Settings) RegisterHooks(commands map[string]string, marker string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}

	hooks := decodeHooks(doc)
	for event, command := range commands {
		entries := stripOwn(hooks[event], marker)
		entry, err := json.Marshal(hookEntry{
			Hooks: []hookCommand{{Type: "command", Command: command}},
		})
		if err != nil {
			return fmt.Errorf("failed to marshal hook entry: %w", err)
		}
		hooks[event] = append(entries, entry)
	}

	if err := encodeHooks(doc, hooks); err != nil {
		return err
	}
	return s.Save(doc)
}

// UnregisterHooks removes every hook entry carrying the marker, leaving
// foreign entries and all unrelated settings keys in place.
func (s *Settings) UnregisterHooks(marker string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}

	hooks := decodeHooks(doc)
	for event, entries := range hooks {
		remaining := stripOwn(entries, marker)
		if len(remaining) == 0 {
			delete(hooks, event)
		} else {
			hooks[event] = remaining
		}
	}

	if len(hooks) == 0 {
		delete(doc, "hooks")
	} else if err := encodeHooks(doc, hooks); err != nil {
		return err
	}
	return s.Save(doc)
}

// InstalledHookCommand reports the registered command for an event when one
// of the entries looks like ours. The match is a substring check on the
// marker, not an identity check; status output words it accordingly.
func (s *Settings) InstalledHookCommand(event, marker string) (string, bool) {
	doc, err := s.Load()
	if err != nil {
		return "", false
	}
	for _, raw := range decodeHooks(doc)[event] {
		var entry hookEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		for _, h := range entry.Hooks {
			if strings.Contains(h.Command, marker) {
				return h.Command, true
			}
		}
	}
	return "", false
}

func decodeHooks(doc map[string]json.RawMessage) map[string][]json.RawMessage {
	hooks := map[string][]json.RawMessage{}
	if raw, ok := doc["hooks"]; ok {
		if err := json.Unmarshal(raw, &hooks); err != nil {
			log.Warn().Err(err).Msg("Unrecognized hooks section, rebuilding it")
			return map[string][]json.RawMessage{}
		}
	}
	return hooks
}

func encodeHooks(doc map[string]json.RawMessage, hooks map[string][]json.RawMessage) error {
	raw, err := json.Marshal(hooks)
	if err != nil {
		return fmt.Errorf("failed to marshal hooks section: %w", err)
	}
	doc["hooks"] = raw
	return nil
}

// stripOwn filters out entries whose command text contains the marker.
// Entries that do not parse are kept as-is; they belong to someone else.
func stripOwn(entries []json.RawMessage, marker string) []json.RawMessage {
	var kept []json.RawMessage
	for _, raw := range entries {
		var entry hookEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			kept = append(kept, raw)
			continue
		}
		ours := false
		for _, h := range entry.Hooks {
			if strings.Contains(h.Command, marker) {
				ours = true
				break
			}
		}
		if !ours {
			kept = append(kept, raw)
		}
	}
	return kept
}
