// Package config owns every JSON document cchime reads or writes: its own
// configuration under ~/.claude/cchime/, the Claude Code settings file it
// patches hook registrations into, and the global config it registers its
// MCP server in.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	ConfigFileName = "config.json"
	ClaudeDir      = ".claude"
	AppDir         = "cchime"

	DirPermission  = 0755
	FilePermission = 0644
)

// Modes for audio feedback.
const (
	ModeStandard = "standard"
	ModeTTS      = "tts"
)

// DefaultTTSProvider is used when no provider is configured.
const DefaultTTSProvider = "elevenlabs"

// SoundSelection names the sound id to play per event type.
type SoundSelection struct {
	Notification string `json:"notification"`
	Completion   string `json:"completion"`
}

// Config is the installed cchime configuration.
type Config struct {
	Mode        string         `json:"mode"`
	Provider    string         `json:"provider,omitempty"`
	APIKey      string         `json:"api_key,omitempty"`
	Sounds      SoundSelection `json:"sounds"`
	InstalledAt string         `json:"installed_at"`
	Version     string         `json:"version"`
}

// TTSProvider returns the configured synthesis provider, defaulting when
// the field predates provider selection or was left empty.
func (c *Config) TTSProvider() string {
	if c.Provider == "" {
		return DefaultTTSProvider
	}
	return c.Provider
}

// Store reads and writes cchime's own documents under a base directory,
// normally ~/.claude/cchime.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at ~/.claude/cchime.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewStoreAt(filepath.Join(homeDir, ClaudeDir, AppDir)), nil
}

// NewStoreAt creates a store rooted at an explicit directory.
func NewStoreAt(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the directory the store writes under.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// LogsDir returns the directory event logs are written to.
func (s *Store) LogsDir() string {
	return filepath.Join(s.baseDir, "logs")
}

// SoundsDir returns the directory user sound overrides live in.
func (s *Store) SoundsDir() string {
	return filepath.Join(s.baseDir, "sounds")
}

func (s *Store) configPath() string {
	return filepath.Join(s.baseDir, ConfigFileName)
}

// Load returns the stored configuration, or nil when none exists. A missing
// file is not an error; malformed JSON is, and callers treat it as "not
// configured".
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", s.configPath()).Msg("No configuration found")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Mode == "" {
		// An emptied file after uninstall parses fine but holds nothing.
		return nil, nil
	}

	log.Debug().Str("mode", cfg.Mode).Msg("Loaded configuration")
	return &cfg, nil
}

// Save writes the configuration, creating the base directory on first use.
func (s *Store) Save(cfg *Config) error {
	if err := os.MkdirAll(s.baseDir, DirPermission); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.configPath(), data, FilePermission); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Debug().Str("path", s.configPath()).Msg("Saved configuration")
	return nil
}

// Remove empties the configuration file. The file itself is kept so a later
// install overwrites rather than recreates it.
func (s *Store) Remove() error {
	if _, err := os.Stat(s.configPath()); os.IsNotExist(err) {
		return nil
	}
	if err := os.WriteFile(s.configPath(), []byte("{}\n"), FilePermission); err != nil {
		return fmt.Errorf("failed to clear config file: %w", err)
	}
	log.Debug().Str("path", s.configPath()).Msg("Cleared configuration")
	return nil
}

// ValidateAPIKey applies the minimal format check the wizard and
// switch-mode flows share.
func ValidateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if len(key) < 8 {
		return fmt.Errorf("API key looks too short")
	}
	return nil
}
