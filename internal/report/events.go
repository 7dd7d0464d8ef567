// Package report writes structured pipeline events to a JSONL log.
// The indexer emits one event per notable outcome (extraction failure,
// capability downgrade, prune) so failures can be audited after a run
// without scraping console output.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventIndex      EventType = "index"
	EventExtract    EventType = "extract"
	EventSkip       EventType = "skip"
	EventCapability EventType = "capability"
	EventPrune      EventType = "prune"
	EventThumbnail  EventType = "thumbnail"
	EventError      EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the pipeline
type Event struct {
	Timestamp time.Time         `json:"ts"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	Path      string            `json:"path,omitempty"`
	Category  string            `json:"category,omitempty"`
	Status    string            `json:"status,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates an event logger writing to a timestamped file
// in outputDir. Events below minLevel are dropped.
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("events-%s.jsonl", time.Now().Format("20060102-150405"))
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// NullLogger returns a logger that drops every event.
func NullLogger() *EventLogger {
	return &EventLogger{}
}

// Path returns the log file path, or "" for a null logger.
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the underlying file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil
	}
	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return nil
}

// LogIndexed logs a successfully upserted file
func (l *EventLogger) LogIndexed(path, category, status string) error {
	return l.Log(&Event{
		Level:    LevelDebug,
		Event:    EventIndex,
		Path:     path,
		Category: category,
		Status:   status,
	})
}

// LogExtractFailure logs a per-file extraction failure
func (l *EventLogger) LogExtractFailure(path, category string, err error) error {
	return l.Log(&Event{
		Level:    LevelWarning,
		Event:    EventExtract,
		Path:     path,
		Category: category,
		Error:    err.Error(),
	})
}

// LogSkip logs a skipped file with the reason
func (l *EventLogger) LogSkip(path, reason string) error {
	return l.Log(&Event{
		Level:  LevelDebug,
		Event:  EventSkip,
		Path:   path,
		Reason: reason,
	})
}

// LogCapability logs a capability downgrade (emitted once per run)
func (l *EventLogger) LogCapability(name, reason string) error {
	return l.Log(&Event{
		Level:  LevelWarning,
		Event:  EventCapability,
		Reason: reason,
		Extra:  map[string]string{"capability": name},
	})
}

// LogThumbnail logs a generated thumbnail
func (l *EventLogger) LogThumbnail(path string, bytes int) error {
	return l.Log(&Event{
		Level: LevelDebug,
		Event: EventThumbnail,
		Path:  path,
		Extra: map[string]string{"bytes": fmt.Sprintf("%d", bytes)},
	})
}

// LogPrune logs removal of a stale record
func (l *EventLogger) LogPrune(path string) error {
	return l.Log(&Event{
		Level:  LevelInfo,
		Event:  EventPrune,
		Path:   path,
		Reason: "file missing on disk",
	})
}
