package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// MCPServerName is the key cchime registers itself under in the host's
// global config.
const MCPServerName = "cchime"

// MCPServer describes one server entry under "mcpServers".
type MCPServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// MCPConfig wraps the host's global ~/.claude.json. Like Settings it only
// touches a single key ("mcpServers") and round-trips everything else.
type MCPConfig struct {
	path string
}

// NewMCPConfig returns an MCPConfig bound to ~/.claude.json.
func NewMCPConfig() (*MCPConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewMCPConfigAt(filepath.Join(homeDir, ".claude.json")), nil
}

// NewMCPConfigAt returns an MCPConfig bound to an explicit path.
func NewMCPConfigAt(path string) *MCPConfig {
	return &MCPConfig{path: path}
}

// Load parses the global config, degrading to an empty document when the
// file is missing or unreadable.
func (m *MCPConfig) Load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", m.path).Msg("Could not read global config, starting empty")
		}
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse global config: %w", err)
	}
	return doc, nil
}

// Save writes the whole document back.
func (m *MCPConfig) Save(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(m.path), DirPermission); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal global config: %w", err)
	}
	if err := os.WriteFile(m.path, data, FilePermission); err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}
	log.Debug().Str("path", m.path).Msg("Saved global config")
	return nil
}

// RegisterServer adds or replaces the cchime entry under mcpServers,
// leaving other server entries untouched.
func (m *MCPConfig) RegisterServer(server MCPServer) error {
	doc, err := m.Load()
	if err != nil {
		return err
	}

	servers := decodeServers(doc)
	raw, err := json.Marshal(server)
	if err != nil {
		return fmt.Errorf("failed to marshal server entry: %w", err)
	}
	servers[MCPServerName] = raw

	if err := encodeServers(doc, servers); err != nil {
		return err
	}
	return m.Save(doc)
}

// UnregisterServer removes the cchime entry if present.
func (m *MCPConfig) UnregisterServer() error {
	doc, err := m.Load()
	if err != nil {
		return err
	}

	servers := decodeServers(doc)
	if _, ok := servers[MCPServerName]; !ok {
		return nil
	}
	delete(servers, MCPServerName)

	if len(servers) == 0 {
		delete(doc, "mcpServers")
	} else if err := encodeServers(doc, servers); err != nil {
		return err
	}
	return m.Save(doc)
}

// ServerRegistered reports whether the cchime entry exists.
func (m *MCPConfig) ServerRegistered() bool {
	doc, err := m.Load()
	if err != nil {
		return false
	}
	_, ok := decodeServers(doc)[MCPServerName]
	return ok
}

func decodeServers(doc map[string]json.RawMessage) map[string]json.RawMessage {
	servers := map[string]json.RawMessage{}
	if raw, ok := doc["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			log.Warn().Err(err).Msg("Unrecognized mcpServers section, rebuilding it")
			return map[string]json.RawMessage{}
		}
	}
	return servers
}

func encodeServers(doc map[string]json.RawMessage, servers map[string]json.RawMessage) error {
	raw, err := json.Marshal(servers)
	if err != nil {
		return fmt.Errorf("failed to marshal mcpServers section: %w", err)
	}
	doc["mcpServers"] = raw
	return nil
}
