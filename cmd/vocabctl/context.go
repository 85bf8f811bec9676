package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/heartmarshall/deutsch-vocab/internal/adapter/jsonfile"
	"github.com/heartmarshall/deutsch-vocab/internal/app"
	"github.com/heartmarshall/deutsch-vocab/internal/config"
	"github.com/heartmarshall/deutsch-vocab/internal/store"
)

type globalFlags struct {
	configPath string
	storePath  string
	verbose    bool
}

// commandContext lazily loads configuration and the progress store shared
// by every subcommand of one invocation.
type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.LoadPath(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if p := strings.TrimSpace(c.flags.storePath); p != "" {
			cfg.Store.Path = p
		}

		logCfg := config.LogConfig{Level: "warn", Format: "text"}
		if c.flags.verbose {
			logCfg.Level = "info"
		}
		c.logger = app.NewLogger(logCfg)
		c.config = cfg
	})
	return c.config, c.configErr
}

// openStore loads the progress file. Unlike the server, a missing or
// unreadable file is an error here.
func (c *commandContext) openStore(ctx context.Context) (*store.ProgressStore, jsonfile.LoadInfo, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, jsonfile.LoadInfo{}, err
	}

	progress := app.OpenStore(cfg.Store, c.logger)
	info, err := progress.Load(ctx)
	if err != nil {
		return nil, info, fmt.Errorf("open %s: %w", cfg.Store.Path, err)
	}
	return progress, info, nil
}
