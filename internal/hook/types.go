// Package hook provides types and parsing for Claude Code hook events.
// Each handler invocation receives exactly one JSON object on stdin; the
// shape is host-defined and documented at
// https://docs.anthropic.com/en/docs/claude-code/hooks
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Event carries the fields common to every hook payload.
type Event struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	CWD            string `json:"cwd,omitempty"`
	HookEventName  string `json:"hook_event_name,omitempty"`
}

// PreToolUseEvent fires before a tool call starts.
type PreToolUseEvent struct {
	Event
	ToolName  string                 `json:"tool_name"`
	ToolInput map[string]interface{} `json:"tool_input,omitempty"`
	// Task is a fallback some harnesses send instead of tool_name.
	Task string `json:"task,omitempty"`
}

// NotificationEvent fires when Claude needs the user's attention.
type NotificationEvent struct {
	Event
	Message string `json:"message"`
}

// StopEvent fires when the main agent (or a subagent) finishes a turn.
type StopEvent struct {
	Event
	StopHookActive bool `json:"stop_hook_active,omitempty"`
}

// ParsePreToolUseEvent decodes a PreToolUse payload.
func ParsePreToolUseEvent(r io.Reader) (*PreToolUseEvent, error) {
	var event PreToolUseEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to parse PreToolUse event: %w", err)
	}
	return &event, nil
}

// ParseNotificationEvent decodes a Notification payload.
func ParseNotificationEvent(r io.Reader) (*NotificationEvent, error) {
	var event NotificationEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to parse Notification event: %w", err)
	}
	return &event, nil
}

// ParseStopEvent decodes a Stop/SubagentStop payload.
func ParseStopEvent(r io.Reader) (*StopEvent, error) {
	var event StopEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to parse Stop event: %w", err)
	}
	return &event, nil
}

// TaskLabel derives a short human label for the status indicator, falling
// through the payload fields harnesses are known to populate.
func (e *PreToolUseEvent) TaskLabel() string {
	if e.ToolName != "" {
		return e.ToolName
	}
	if e.Task != "" {
		return e.Task
	}
	for _, key := range []string{"description", "command", "file_path"} {
		if v, ok := e.ToolInput[key].(string); ok && v != "" {
			return truncateLabel(v)
		}
	}
	return "Working"
}

func truncateLabel(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const max = 32
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so a multibyte character is never split.
	cut := max - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
