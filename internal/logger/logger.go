package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return newWithLevel(w, log.InfoLevel)
}

func newWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file, creating its
// directory if needed
func NewFileLogger(path string) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return newWithLevel(f, log.DebugLevel), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(vault, folder, dateFormat string) {
	l.Debug("config loaded",
		"vault", vault,
		"folder", folder,
		"date_format", dateFormat)
}

// ConfigSaved logs a settings change that was persisted
func (l *Logger) ConfigSaved(key, value string) {
	l.Info("setting saved",
		"key", key,
		"value", value)
}

// NoteResolved logs the target path computed for the current date
func (l *Logger) NoteResolved(path string, exists bool) {
	l.Debug("note resolved",
		"path", path,
		"exists", exists)
}

// FolderCreated logs creation of a missing note folder
func (l *Logger) FolderCreated(folder string) {
	l.Info("folder created",
		"folder", folder)
}

// NoteCreated logs creation of a new periodic note
func (l *Logger) NoteCreated(path string) {
	l.Info("note created",
		"path", path)
}

// CreateFailed logs a failed folder or file creation
func (l *Logger) CreateFailed(op, path string, err error) {
	l.Error("create failed",
		"op", op,
		"path", path,
		"error", err)
}

// EditorOpened logs a note handed to the editor
func (l *Logger) EditorOpened(path, editor string) {
	l.Info("editor opened",
		"path", path,
		"editor", editor)
}

// StateError logs a history-state error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}
