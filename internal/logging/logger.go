// Package logging provides config-driven categorized file-based logging for instaquran.
// Logs are written to .instaquran/logs/ with separate files per category.
// Logging is controlled by debug_mode in the config - when false, no logs are written,
// so the terminal UI is never disturbed.
package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config loading
	CategoryInput  Category = "input"  // Keystrokes, debounced validation, submit gating
	CategoryFetch  Category = "fetch"  // quran.com API calls
	CategoryRender Category = "render" // Headless browser rasterization
	CategoryExport Category = "export" // File save, clipboard
	CategoryUI     Category = "ui"     // Studio lifecycle and messages
)

// AllCategories lists every category in declaration order.
var AllCategories = []Category{
	CategoryBoot, CategoryInput, CategoryFetch, CategoryRender, CategoryExport, CategoryUI,
}

// Config selects what gets logged and how.
type Config struct {
	DebugMode  bool
	Level      string          // debug, info, warn, error
	JSONFormat bool            // JSON lines instead of console text
	Categories map[string]bool // missing categories are enabled
}

// Logger is a category-scoped logger. The zero value discards everything.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	config    Config
	level     zapcore.Level = zapcore.InfoLevel
	configMu  sync.RWMutex
)

// LogsDir returns the directory logs are written to for a workspace.
func LogsDir(workspace string) string {
	return filepath.Join(workspace, ".instaquran", "logs")
}

// Initialize sets up the logging directory.
// Should be called once at startup with the workspace path.
func Initialize(workspace string, cfg Config) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	CloseAll()

	parsed, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	configMu.Lock()
	config = cfg
	level = parsed
	logsDir = LogsDir(workspace)
	configMu.Unlock()

	// Silent no-op in production mode
	if !cfg.DebugMode {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== instaquran logging initialized ===")
	boot.Info("Workspace: %s", workspace)
	boot.Info("Log level: %s", parsed)
	return nil
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return config.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !config.DebugMode {
		return false
	}
	enabled, exists := config.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	configMu.RLock()
	dir, jsonFormat, lvl := logsDir, config.JSONFormat, level
	configMu.RUnlock()
	if dir == "" {
		return &Logger{category: category}
	}

	// Date prefix for easy rotation
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	logPath := filepath.Join(dir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if jsonFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(file), lvl)

	l := &Logger{
		category: category,
		file:     file,
		sugar:    zap.New(core).Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// With returns a logger carrying structured key-value context, e.g. a request id.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	if l.sugar == nil {
		return l
	}
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns the category logger tagged with the request id in ctx, if any.
func FromContext(ctx context.Context, category Category) *Logger {
	l := Get(category)
	if id := RequestID(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}

// CloseAll flushes and closes all log files
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for cat, l := range loggers {
		if l.sugar != nil {
			_ = l.sugar.Sync()
		}
		if l.file != nil {
			_ = l.file.Close()
		}
		delete(loggers, cat)
	}
}

// =============================================================================
// Category helpers
// =============================================================================

func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

func BootWarn(format string, args ...interface{}) {
	Get(CategoryBoot).Warn(format, args...)
}

func Input(format string, args ...interface{}) {
	Get(CategoryInput).Info(format, args...)
}

func InputDebug(format string, args ...interface{}) {
	Get(CategoryInput).Debug(format, args...)
}

func Fetch(format string, args ...interface{}) {
	Get(CategoryFetch).Info(format, args...)
}

func FetchDebug(format string, args ...interface{}) {
	Get(CategoryFetch).Debug(format, args...)
}

func FetchError(format string, args ...interface{}) {
	Get(CategoryFetch).Error(format, args...)
}

func Render(format string, args ...interface{}) {
	Get(CategoryRender).Info(format, args...)
}

func RenderDebug(format string, args ...interface{}) {
	Get(CategoryRender).Debug(format, args...)
}

func RenderError(format string, args ...interface{}) {
	Get(CategoryRender).Error(format, args...)
}

func Export(format string, args ...interface{}) {
	Get(CategoryExport).Info(format, args...)
}

func ExportError(format string, args ...interface{}) {
	Get(CategoryExport).Error(format, args...)
}

func UI(format string, args ...interface{}) {
	Get(CategoryUI).Info(format, args...)
}

func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debug(format, args...)
}
