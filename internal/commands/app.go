package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"ticklist/internal/config"
	"ticklist/internal/logging"
	"ticklist/internal/storage"
	"ticklist/internal/task"
)

// App holds the services shared by every command. It is allocated before
// the commands are registered and populated by Open in the root Before hook.
type App struct {
	Config  config.Config
	Storage *storage.Store
	Tasks   *task.Store
}

func (a *App) Open(flags *Flags) error {
	cfg, err := config.LoadOrCreate(flags.ConfigPath, flags.DataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", flags.ConfigPath, err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	tasks, err := openTasks(db, cfg, logging.Component("app"))
	if err != nil {
		_ = db.Close()
		return err
	}

	a.Config = cfg
	a.Storage = db
	a.Tasks = tasks
	return nil
}

// openTasks loads the task store. A failed sample seed is logged and the
// store is still returned, since the samples are already in memory.
func openTasks(p task.Persister, cfg config.Config, logger zerolog.Logger) (*task.Store, error) {
	tasks, err := task.NewStore(p,
		task.WithSamples(cfg.SeedSamples),
		task.WithLogger(logging.Component("tasks")),
	)
	if err != nil && !errors.Is(err, task.ErrPersistence) {
		return nil, err
	}
	if err != nil {
		logger.Warn().Err(err).Msg("sample tasks were not saved")
	}
	return tasks, nil
}

func (a *App) Close() error {
	if a.Storage == nil {
		return nil
	}
	err := a.Storage.Close()
	a.Storage = nil
	a.Tasks = nil
	return err
}

// Shutdown closes the app and then the log file. The log is closed even when
// closing the app fails.
func Shutdown(app io.Closer, closeLog func()) error {
	if closeLog != nil {
		defer closeLog()
	}
	if err := app.Close(); err != nil {
		logger := logging.Component("app")
		logger.Error().Err(err).Msg("failed to close database")
		return err
	}
	return nil
}
