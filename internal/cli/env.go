package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"primer/internal/config"
	"primer/internal/history"
	"primer/internal/lesson"
	"primer/internal/logging"
	"primer/internal/progress"
)

// attemptJournal is the history surface the commands use.
type attemptJournal interface {
	Record(ctx context.Context, attempt history.Attempt) (string, error)
	List(ctx context.Context, moduleID string, limit int) ([]history.Attempt, error)
	Latest(ctx context.Context, moduleID string) (history.Attempt, bool, error)
	Summary(ctx context.Context) ([]history.ModuleSummary, error)
	Close() error
}

// openJournal is a test seam for the DuckDB attempt journal.
var openJournal = func(ctx context.Context, path string) (attemptJournal, error) {
	journal, err := history.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return journal, nil
}

var errHistoryDisabled = errors.New("attempt history is disabled in config")

// envOptions selects what an environment opens.
type envOptions struct {
	configPath string
	// cfg skips loading when already resolved.
	cfg *config.Config
	// logToFile sends logs to <data-dir>/primer.log instead of stderr.
	logToFile bool
	stderr    io.Writer
	history   bool
}

// environment holds the loaded config and opened collaborators for one command.
type environment struct {
	cfg     config.Config
	log     *logrus.Logger
	catalog *lesson.Catalog
	tracker *progress.Tracker
	journal attemptJournal
	closers []func() error
}

// openEnvironment loads config and lessons and opens the progress store.
func openEnvironment(ctx context.Context, opts envOptions) (*environment, error) {
	var cfg config.Config
	if opts.cfg != nil {
		cfg = *opts.cfg
	} else {
		loaded, err := loadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	env := &environment{cfg: cfg}
	if err := env.openLogger(opts); err != nil {
		env.Close()
		return nil, err
	}
	catalog, err := lesson.LoadCatalog(cfg.LessonsDir)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	env.catalog = catalog

	store, err := env.openStore(ctx)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.tracker = progress.NewTracker(store, env.log)

	if opts.history && cfg.HistoryEnabled() {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			env.Close()
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		journal, err := openJournal(ctx, filepath.Join(cfg.DataDir, config.HistoryDBName))
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
		env.journal = journal
		env.closers = append(env.closers, journal.Close)
	}
	env.log.WithFields(logrus.Fields{
		"lessons": cfg.LessonsDir,
		"modules": catalog.Len(),
		"store":   cfg.Store,
	}).Debug("environment ready")
	return env, nil
}

// openLogger configures logging to stderr or the data dir log file.
func (e *environment) openLogger(opts envOptions) error {
	output := opts.stderr
	if opts.logToFile {
		if err := os.MkdirAll(e.cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		file, err := os.OpenFile(filepath.Join(e.cfg.DataDir, config.LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		e.closers = append(e.closers, file.Close)
		output = file
	}
	logger, err := logging.New(logging.Options{
		Level:  e.cfg.LogLevel,
		Format: e.cfg.LogFormat,
		Output: output,
	})
	if err != nil {
		return err
	}
	e.log = logger
	return nil
}

// openStore opens the configured progress store.
func (e *environment) openStore(ctx context.Context) (progress.Store, error) {
	switch e.cfg.Store {
	case "memory":
		return progress.NewMemoryStore(), nil
	case "sqlite":
		if err := os.MkdirAll(e.cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := progress.OpenSQLStore(ctx, filepath.Join(e.cfg.DataDir, config.ProgressDBName))
		if err != nil {
			return nil, fmt.Errorf("open progress store: %w", err)
		}
		e.closers = append(e.closers, store.Close)
		return store, nil
	default:
		store, err := progress.OpenFileStore(filepath.Join(e.cfg.DataDir, config.ProgressFileName))
		if err != nil {
			return nil, fmt.Errorf("open progress store: %w", err)
		}
		return store, nil
	}
}

// requireJournal returns the journal or errHistoryDisabled.
func (e *environment) requireJournal() (attemptJournal, error) {
	if e.journal == nil {
		return nil, errHistoryDisabled
	}
	return e.journal, nil
}

// Close releases opened resources in reverse order.
func (e *environment) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
