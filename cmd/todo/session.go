package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/keyed"
	"todo/internal/logging"
	"todo/internal/storage"
	"todo/internal/task"
)

// session is everything a command needs, opened from the config.
type session struct {
	cfg    config.Config
	logger *log.Logger
	db     *storage.Store
	store  *task.Store
	logs   io.Closer
}

func openSession(opts *options) (*session, error) {
	path := opts.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	logger, logs, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("session opened", "config", path, "db", cfg.DBPath)

	return &session{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  task.Open(keyed.New(db, logger), task.WithLogger(logger)),
		logs:   logs,
	}, nil
}

// Close releases the database and the log file. The task list is not
// flushed here; only the interactive program writes it back.
func (s *session) Close() error {
	return errors.Join(s.db.Close(), s.logs.Close())
}
