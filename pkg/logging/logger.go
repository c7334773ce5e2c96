package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldPath      = "path"
	FieldRows      = "rows"
	FieldColumns   = "columns"
	FieldFeatures  = "features"
	FieldTrain     = "train_rows"
	FieldTest      = "test_rows"
	FieldTrees     = "trees"
	FieldSeed      = "seed"
	FieldDuration  = "duration"
	FieldTier      = "tier"
	FieldError     = "error"
)

// Components
const (
	ComponentApp      = "app"
	ComponentData     = "data"
	ComponentTraining = "training"
	ComponentQuery    = "query"
)

// Logger wraps slog.Logger with a component name.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Format    string // "tint", "json" or "text"
	Writer    io.Writer
	Component string
}

// New creates a logger. Output goes to stderr unless Writer is set, leaving
// stdout to the interactive dialogue.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	if cfg.Component == "" {
		cfg.Component = ComponentApp
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      cfg.Level,
			TimeFormat: "15:04:05",
		})
	}

	return &Logger{
		Logger:    slog.New(handler).With(FieldRunID, uuid.NewString()),
		component: cfg.Component,
	}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), component: ComponentApp}
}

// WithComponent returns a logger tagged with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// Component returns the logger's component name
func (l *Logger) Component() string { return l.component }

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
