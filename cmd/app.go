package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/pocketdo/internal/config"
	"github.com/nibzard/pocketdo/internal/kv"
	"github.com/nibzard/pocketdo/internal/logging"
	"github.com/nibzard/pocketdo/internal/todo"
)

// app wires config, logging, storage, and the task store for one run.
type app struct {
	cfg    *config.Config
	runLog *logging.RunLog
	logger *log.Logger
	kv     kv.Store
	store  *todo.Store
}

// maxRunLogs is how many per-run log files are kept in the log dir.
const maxRunLogs = 20

// openApp opens the storage backend and hydrates the store. With logRun a
// per-run log file is opened and old ones are pruned. Log output goes to the
// run log and, when console is non-nil, to console too.
func openApp(ctx context.Context, cfg *config.Config, console io.Writer, logRun bool) (*app, error) {
	var runLog *logging.RunLog
	var writers []io.Writer
	if logRun {
		var err error
		runLog, err = logging.OpenRunLog(cfg.LogDir())
		if err != nil {
			return nil, fmt.Errorf("opening run log: %w", err)
		}
		writers = append(writers, runLog.Writer())
	}
	if console != nil {
		writers = append(writers, console)
	}
	logger := logging.New(io.MultiWriter(writers...), cfg.LogOptions())

	if logRun {
		if n, err := logging.PruneLogs(cfg.LogDir(), maxRunLogs); err != nil {
			logger.Warn("pruning old run logs", "err", err)
		} else if n > 0 {
			logger.Debug("pruned old run logs", "removed", n)
		}
	}

	ids, err := todo.NewIDGenerator(cfg.IDFormat)
	if err != nil {
		runLog.Close()
		return nil, err
	}

	store, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		runLog.Close()
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Backend, err)
	}
	logger.Debug("storage opened", "backend", cfg.Backend, "dir", cfg.DataDir)

	storage := todo.NewStorage(store)
	tasks := todo.NewStore(storage, todo.WithIDGenerator(ids), todo.WithLogger(logger))
	tasks.Hydrate(todo.LoadOrEmpty(ctx, storage, logger))

	return &app{
		cfg:    cfg,
		runLog: runLog,
		logger: logger,
		kv:     store,
		store:  tasks,
	}, nil
}

// Close waits for pending writes, then closes storage and the run log.
func (a *app) Close() error {
	a.store.Wait()
	var errs []error
	if err := a.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	if err := a.runLog.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing run log: %w", err))
	}
	return errors.Join(errs...)
}
