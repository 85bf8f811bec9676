package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Practice  PracticeConfig  `yaml:"practice"`
	Journal   JournalConfig   `yaml:"journal"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// newConfig returns a Config with the defaults that cannot be expressed as
// env-default tags. cleanenv fills tagged defaults into zero fields, so a
// bool defaulting to true there could never be switched off by YAML.
func newConfig() Config {
	var cfg Config
	cfg.Store.SnapshotBeforeCorrection = true
	cfg.Journal.Migrate = true
	return cfg
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig holds the progress document location and its snapshot policy.
type StoreConfig struct {
	Path        string        `yaml:"path"         env:"STORE_PATH"         env-default:"data/vocab_progress.json"`
	LockTimeout time.Duration `yaml:"lock_timeout" env:"STORE_LOCK_TIMEOUT" env-default:"2s"`

	BackupDir string `yaml:"backup_dir" env:"STORE_BACKUP_DIR" env-default:"data/backups"`
	// BackupInterval of zero disables scheduled snapshots.
	BackupInterval time.Duration `yaml:"backup_interval" env:"STORE_BACKUP_INTERVAL" env-default:"1h"`
	BackupKeep     int           `yaml:"backup_keep"     env:"STORE_BACKUP_KEEP"     env-default:"24"`

	// SnapshotBeforeCorrection defaults to true in newConfig.
	SnapshotBeforeCorrection bool `yaml:"snapshot_before_correction" env:"STORE_SNAPSHOT_BEFORE_CORRECTION"`
}

// PracticeConfig holds answer evaluation and selection defaults.
type PracticeConfig struct {
	DefaultLevel      string `yaml:"default_level"       env:"PRACTICE_DEFAULT_LEVEL"       env-default:"A1.1"`
	ArticlesMandatory bool   `yaml:"articles_mandatory"  env:"PRACTICE_ARTICLES_MANDATORY"  env-default:"false"`
	TopDifficultLimit int    `yaml:"top_difficult_limit" env:"PRACTICE_TOP_DIFFICULT_LIMIT" env-default:"10"`
}

// JournalConfig holds the optional PostgreSQL attempt journal settings.
// An empty DSN disables the journal.
type JournalConfig struct {
	DSN             string        `yaml:"dsn"                env:"JOURNAL_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"JOURNAL_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"JOURNAL_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"JOURNAL_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"JOURNAL_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"JOURNAL_MIGRATE"`
}

// Enabled reports whether a journal database is configured.
func (c JournalConfig) Enabled() bool { return c.DSN != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits answer submissions per client IP.
type RateLimitConfig struct {
	// AnswersPerMinute of zero disables the limit.
	AnswersPerMinute int           `yaml:"answers_per_minute" env:"RATE_LIMIT_ANSWERS_PER_MINUTE" env-default:"120"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}
