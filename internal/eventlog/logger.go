// Package eventlog appends timestamped hook events to per-event JSON log
// files and keeps the small debounce state the stop handler consults.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	dirPermission  = 0755
	filePermission = 0644

	debounceFileName = "last-stop.json"
	chatLogFileName  = "chat.json"

	// DefaultDebounceWindow suppresses completion feedback for stop events
	// arriving this close to the previous one.
	DefaultDebounceWindow = 5 * time.Second
)

// Record is one entry in an event log file: the event payload plus the
// timestamp it was logged at.
type Record map[string]interface{}

// Logger appends records to <dir>/<event>.json files.
type Logger struct {
	dir string
	now func() time.Time
}

// New creates a logger writing under dir. The directory is created on the
// first append.
func New(dir string) *Logger {
	return &Logger{dir: dir, now: time.Now}
}

func (l *Logger) eventPath(event string) string {
	return filepath.Join(l.dir, event+".json")
}

// Append logs one event payload. The log file is a JSON array rewritten in
// full on every call; a missing or corrupt file starts a fresh array.
func (l *Logger) Append(event string, payload interface{}) error {
	if err := os.MkdirAll(l.dir, dirPermission); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	record, err := toRecord(payload)
	if err != nil {
		return err
	}
	record["timestamp"] = l.now().Format(time.RFC3339)

	records := l.readRecords(event)
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal log records: %w", err)
	}
	if err := os.WriteFile(l.eventPath(event), data, filePermission); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

// Records returns the logged entries for an event, oldest first.
func (l *Logger) Records(event string) []Record {
	return l.readRecords(event)
}

func (l *Logger) readRecords(event string) []Record {
	data, err := os.ReadFile(l.eventPath(event))
	if err != nil {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("Corrupt log file, starting over")
		return nil
	}
	return records
}

func toRecord(payload interface{}) (Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	record := Record{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("event payload is not an object: %w", err)
	}
	return record, nil
}

// debounceState is the persisted shape of last-stop.json.
type debounceState struct {
	LastStop string `json:"last_stop"`
}

// ShouldDebounce reports whether a completion signal arrived within the
// window of the previous one, and records the current signal either way.
func (l *Logger) ShouldDebounce(window time.Duration) bool {
	path := filepath.Join(l.dir, debounceFileName)
	now := l.now()

	suppressed := false
	if data, err := os.ReadFile(path); err == nil {
		var state debounceState
		if err := json.Unmarshal(data, &state); err == nil {
			if last, err := time.Parse(time.RFC3339, state.LastStop); err == nil {
				suppressed = now.Sub(last) < window
			}
		}
	}

	if err := os.MkdirAll(l.dir, dirPermission); err == nil {
		data, _ := json.MarshalIndent(debounceState{LastStop: now.Format(time.RFC3339)}, "", "  ")
		if err := os.WriteFile(path, data, filePermission); err != nil {
			log.Debug().Err(err).Msg("Failed to write debounce state")
		}
	}
	return suppressed
}

// AppendChatLog reads a newline-delimited JSON transcript, skipping lines
// that do not parse, and appends the parsed records to the consolidated
// chat log.
func (l *Logger) AppendChatLog(transcriptPath string) (int, error) {
	file, err := os.Open(transcriptPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var parsed []json.RawMessage
	scanner := bufio.NewScanner(file)
	// Transcript lines can be very long; 1MB instead of the default 64KB.
	const maxScanTokenSize = 1024 * 1024
	scanner.Buffer(make([]byte, maxScanTokenSize), maxScanTokenSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			log.Debug().Msg("Skipping malformed transcript line")
			continue
		}
		parsed = append(parsed, append(json.RawMessage{}, line...))
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read transcript: %w", err)
	}

	if err := os.MkdirAll(l.dir, dirPermission); err != nil {
		return 0, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(l.dir, chatLogFileName)
	var existing []json.RawMessage
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &existing)
	}
	existing = append(existing, parsed...)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal chat log: %w", err)
	}
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return 0, fmt.Errorf("failed to write chat log: %w", err)
	}
	return len(parsed), nil
}
