// Package render holds display helpers for the terminal monitor.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// LogEntry is a single captured log message.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogBuffer is a thread-safe circular buffer of log entries, so diagnostics
// stay visible inside the terminal UI instead of scrolling through it.
type LogBuffer struct {
	entries []LogEntry
	size    int
	index   int
	count   int
	mutex   sync.RWMutex
}

// NewLogBuffer creates a buffer holding the most recent size entries.
func NewLogBuffer(size int) *LogBuffer {
	return &LogBuffer{
		entries: make([]LogEntry, size),
		size:    size,
	}
}

// Add inserts a log entry, evicting the oldest when full.
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.entries[lb.index] = entry
	lb.index = (lb.index + 1) % lb.size
	if lb.count < lb.size {
		lb.count++
	}
}

// Recent returns up to maxCount entries, newest first.
func (lb *LogBuffer) Recent(maxCount int) []LogEntry {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	count := lb.count
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}
	result := make([]LogEntry, count)
	for i := 0; i < count; i++ {
		result[i] = lb.entries[(lb.index-1-i+lb.size)%lb.size]
	}
	return result
}

// LogBufferHandler is a slog.Handler that captures records into a LogBuffer.
type LogBufferHandler struct {
	buffer *LogBuffer
	level  slog.Level
}

// NewLogBufferHandler creates a handler writing to the given buffer.
func NewLogBufferHandler(buffer *LogBuffer, level slog.Level) *LogBufferHandler {
	return &LogBufferHandler{buffer: buffer, level: level}
}

func (h *LogBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *LogBufferHandler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message
	record.Attrs(func(a slog.Attr) bool {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	h.buffer.Add(LogEntry{
		Time:    record.Time,
		Level:   record.Level,
		Message: message,
	})
	return nil
}

func (h *LogBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *LogBufferHandler) WithGroup(name string) slog.Handler {
	return h
}

// FormatLogEntry renders an entry for a log pane line.
func FormatLogEntry(entry LogEntry) string {
	level := "???"
	switch entry.Level {
	case slog.LevelDebug:
		level = "DBG"
	case slog.LevelInfo:
		level = "INF"
	case slog.LevelWarn:
		level = "WRN"
	case slog.LevelError:
		level = "ERR"
	}
	return fmt.Sprintf("%s [%s] %s", entry.Time.Format("15:04:05"), level, entry.Message)
}
