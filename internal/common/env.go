package common

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/sumz/internal/controller"
	"github.com/dtnitsch/sumz/internal/logging"
	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/articles"
	"github.com/dtnitsch/sumz/pkg/summarizer"
)

// Exit codes returned through cli.Exit.
const (
	ExitUserError    = 1
	ExitRuntimeError = 2
)

// EnvOptions controls what Open builds.
type EnvOptions struct {
	// NeedSummarizer fails Open when the provider cannot be built, for
	// example because its API key is missing.
	NeedSummarizer bool
	// Interactive routes logs away from the terminal.
	Interactive bool
	// OnChange is passed to the controller.
	OnChange func(controller.State)
}

// Env is everything a command needs: config, logger, store and controller.
type Env struct {
	Config     *models.Config
	Logger     *slog.Logger
	Store      *articles.Store
	Controller *controller.Controller

	closers []io.Closer
}

// Open loads configuration from the global flags and wires the controller.
func Open(c *cli.Context, opts EnvOptions) (*Env, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.Bool("ephemeral") {
		cfg.Store.Driver = models.StoreMemory
	}
	if p := c.String("provider"); p != "" {
		cfg.Provider = p
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, logCloser := logging.New(cfg.Log, logging.Options{
		Quiet:       c.Bool("quiet"),
		Debug:       c.Bool("debug"),
		Interactive: opts.Interactive,
		File:        c.String("log-file"),
		DefaultFile: defaultLogFile(cfg.Store),
	})
	env := &Env{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	kv, kvCloser, err := articles.OpenKV(cfg.Store)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.closers = append(env.closers, kvCloser)
	env.Store = articles.NewStore(kv, logger)

	s, err := summarizer.New(cfg, logger)
	if err != nil {
		if opts.NeedSummarizer {
			env.Close()
			return nil, err
		}
		logger.Debug("summarizer unavailable", "provider", cfg.Provider, "error", err)
		s = unavailable(err)
	}

	ctrlOpts := []controller.Option{controller.WithLogger(logger)}
	if opts.OnChange != nil {
		ctrlOpts = append(ctrlOpts, controller.WithOnChange(opts.OnChange))
	}
	env.Controller = controller.New(env.Store, s, ctrlOpts...)

	logger.Debug("environment ready",
		"provider", cfg.Provider,
		"store", cfg.Store.Driver,
		"history_size", len(env.Controller.Snapshot().History),
	)
	return env, nil
}

// Close stops the controller timers and releases the store and log file.
func (e *Env) Close() error {
	if e.Controller != nil {
		e.Controller.Close()
	}
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func unavailable(cause error) summarizer.Summarizer {
	return summarizer.Func(func(ctx context.Context, params models.SummarizeParams) models.Outcome {
		return models.Failure(0, cause.Error())
	})
}

// defaultLogFile places the interactive log next to a configured SQLite
// database. Other stores fall back to logging.DefaultPath.
func defaultLogFile(store models.StoreConfig) string {
	if store.Driver != models.StoreSQLite || store.Path == "" || store.Path == ":memory:" {
		return ""
	}
	return filepath.Join(filepath.Dir(store.Path), logging.DefaultLogName)
}
