package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/riordanpawley/taskflow/internal/app"
	"github.com/riordanpawley/taskflow/internal/config"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/services/planning"
	"github.com/riordanpawley/taskflow/internal/store"
)

// Options are the global command line flags
type Options struct {
	ConfigPath string
	Verbose    bool
	NoAI       bool
}

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config  *config.Config
	Store   *store.Store
	Planner app.Planner // nil when AI is disabled
	Logger  *slog.Logger

	closers []io.Closer
}

// NewDependencies loads configuration and wires the store, logger and
// planning gateway
func NewDependencies(opts Options) (*Dependencies, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.NoAI {
		cfg.AI.APIKey = ""
	}

	deps := &Dependencies{Config: cfg}

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	deps.closers = append(deps.closers, logFile)
	deps.Logger = newLogger(logFile, level)

	if cfg.Log.Traces {
		deps.closers = append(deps.closers, installTracing(deps.Logger))
	}

	deps.Store = newStore(cfg.Board, deps.Logger)

	gateway, err := planning.NewGateway(&http.Client{}, cfg.AI, deps.Logger)
	switch {
	case errors.Is(err, domain.ErrAIDisabled):
		deps.Logger.Info("AI features disabled")
	case err != nil:
		deps.Close()
		return nil, fmt.Errorf("failed to create planning gateway: %w", err)
	default:
		deps.Planner = gateway
	}

	return deps, nil
}

// Close flushes tracing and releases the log file, newest first
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	d.closers = nil
	return errors.Join(errs...)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func newStore(cfg config.BoardConfig, logger *slog.Logger) *store.Store {
	opts := []store.Option{
		store.WithStrictIDs(cfg.StrictIDs),
		store.WithLogger(logger),
	}
	if cfg.SeedDemo {
		opts = append(opts, store.WithSeed(store.DemoTasks(time.Now())))
	}
	return store.New(opts...)
}

// openLogFile opens path for appending, creating its directory. The TUI
// owns the terminal, so logs never go to stdout.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// parseLevel maps a config level name to a slog level, defaulting to info
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
