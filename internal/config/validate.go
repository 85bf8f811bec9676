package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Practice.validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	if err := c.Journal.validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if c.RateLimit.AnswersPerMinute < 0 {
		return fmt.Errorf("rate_limit.answers_per_minute must be >= 0 (got %d)", c.RateLimit.AnswersPerMinute)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("path is required")
	}
	if s.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0 (got %v)", s.LockTimeout)
	}
	if s.BackupInterval < 0 {
		return fmt.Errorf("backup_interval must be >= 0 (got %v)", s.BackupInterval)
	}
	if s.BackupKeep < 0 {
		return fmt.Errorf("backup_keep must be >= 0 (got %d)", s.BackupKeep)
	}
	if s.BackupInterval > 0 && strings.TrimSpace(s.BackupDir) == "" {
		return fmt.Errorf("backup_dir is required when backup_interval is set")
	}
	return nil
}

func (p *PracticeConfig) validate() error {
	p.DefaultLevel = strings.TrimSpace(p.DefaultLevel)
	if p.DefaultLevel == "" {
		return fmt.Errorf("default_level is required")
	}
	if p.TopDifficultLimit <= 0 {
		return fmt.Errorf("top_difficult_limit must be > 0 (got %d)", p.TopDifficultLimit)
	}
	return nil
}

func (j *JournalConfig) validate() error {
	if !j.Enabled() {
		return nil
	}
	if j.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", j.MaxConns)
	}
	if j.MinConns < 0 || j.MinConns > j.MaxConns {
		return fmt.Errorf("min_conns must be in 0..max_conns (got %d)", j.MinConns)
	}
	return nil
}
