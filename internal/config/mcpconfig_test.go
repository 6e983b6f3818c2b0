package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func mcpAt(t *testing.T, content string) *MCPConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".claude.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return NewMCPConfigAt(path)
}

func TestRegisterServer(t *testing.T) {
	m := mcpAt(t, "")
	server := MCPServer{
		Command: "/usr/local/bin/cchime",
		Args:    []string{"mcp"},
		Env:     map[string]string{"ELEVENLABS_API_KEY": "sk-test-1234"},
	}
	if err := m.RegisterServer(server); err != nil {
		t.Fatal(err)
	}
	if !m.ServerRegistered() {
		t.Error("Server should be registered")
	}

	// Re-registering replaces, not duplicates.
	if err := m.RegisterServer(server); err != nil {
		t.Fatal(err)
	}
	doc, err := m.Load()
	if err != nil {
		t.Fatal(err)
	}
	servers := map[string]MCPServer{}
	if err := json.Unmarshal(doc["mcpServers"], &servers); err != nil {
		t.Fatal(err)
	}
	if len(servers) != 1 {
		t.Errorf("Expected 1 server entry, got %d", len(servers))
	}
	if servers[MCPServerName].Env["ELEVENLABS_API_KEY"] != "sk-test-1234" {
		t.Error("API key not carried in server env")
	}
}

func TestUnregisterServerPreservesOthers(t *testing.T) {
	m := mcpAt(t, `{
		"theme": "dark",
		"mcpServers": {
			"other": {"command": "/opt/other/serve"}
		}
	}`)

	if err := m.RegisterServer(MCPServer{Command: "/usr/local/bin/cchime", Args: []string{"mcp"}}); err != nil {
		t.Fatal(err)
	}
	if err := m.UnregisterServer(); err != nil {
		t.Fatal(err)
	}
	if m.ServerRegistered() {
		t.Error("Server should be gone")
	}

	doc, err := m.Load()
	if err != nil {
		t.Fatal(err)
	}
	if string(doc["theme"]) != `"dark"` {
		t.Errorf("Unrelated key 'theme' was altered: %s", doc["theme"])
	}
	servers := map[string]json.RawMessage{}
	if err := json.Unmarshal(doc["mcpServers"], &servers); err != nil {
		t.Fatal(err)
	}
	if _, ok := servers["other"]; !ok {
		t.Error("Foreign server entry was dropped")
	}
}

func TestUnregisterServerNoop(t *testing.T) {
	m := mcpAt(t, "")
	if err := m.UnregisterServer(); err != nil {
		t.Errorf("Unregister on empty config should be a no-op, got %v", err)
	}
}
