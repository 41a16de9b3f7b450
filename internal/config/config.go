package config

import "time"

// Config holds runtime settings for FinHive.
//
// Fields:
//   - LocalDSN: SQLite file backing the local record store (":memory:" for a throwaway store).
//   - RemoteDSN: PostgreSQL DSN of the remote mirror; empty disables mirroring.
//   - S3*: object storage for receipt payloads; an empty bucket disables it.
//   - Outbox*: polling interval, retry budget, per-job timeout and batch size of the mirror worker.
//   - LogLevel / LogFormat: see logging.New.
//   - UserID: owner identifier the CLI acts as.
type Config struct {
	LocalDSN  string
	RemoteDSN string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	OutboxInterval    time.Duration
	OutboxMaxAttempts int
	OutboxJobTimeout  time.Duration
	OutboxBatchSize   int

	LogLevel  string
	LogFormat string

	UserID string
}

// LoadDefaults populates c with defaults suitable for a single local user.
func (c *Config) LoadDefaults() {
	c.LocalDSN = "finhive.db"
	c.RemoteDSN = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.OutboxInterval = 5 * time.Second
	c.OutboxMaxAttempts = 8
	c.OutboxJobTimeout = 10 * time.Second
	c.OutboxBatchSize = 50
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.UserID = "local-user"
}

// MirrorEnabled reports whether a remote DSN is configured.
func (c *Config) MirrorEnabled() bool {
	return c.RemoteDSN != ""
}

// BlobStoreEnabled reports whether receipt payloads go to object storage.
func (c *Config) BlobStoreEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig applies defaults, then the environment (optionally seeded from
// a .env file), then a JSON file, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
