package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/finhive/internal/flagx"
	"github.com/dmitrijs2005/finhive/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted.
type JsonConfig struct {
	LocalDSN          string         `json:"local_dsn"`
	RemoteDSN         string         `json:"remote_dsn"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_endpoint"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	OutboxInterval    timex.Duration `json:"outbox_interval"`
	OutboxMaxAttempts int            `json:"outbox_max_attempts"`
	OutboxJobTimeout  timex.Duration `json:"outbox_job_timeout"`
	OutboxBatchSize   int            `json:"outbox_batch_size"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
	UserID            string         `json:"user_id"`
}

// parseJson overlays cfg with the fields present in the file named by
// -c/-config. Fields missing from the file keep their current value.
// Panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.LocalDSN, jc.LocalDSN)
	setString(&cfg.RemoteDSN, jc.RemoteDSN)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.UserID, jc.UserID)

	if jc.OutboxInterval.Duration > 0 {
		cfg.OutboxInterval = jc.OutboxInterval.Duration
	}
	if jc.OutboxJobTimeout.Duration > 0 {
		cfg.OutboxJobTimeout = jc.OutboxJobTimeout.Duration
	}
	if jc.OutboxMaxAttempts > 0 {
		cfg.OutboxMaxAttempts = jc.OutboxMaxAttempts
	}
	if jc.OutboxBatchSize > 0 {
		cfg.OutboxBatchSize = jc.OutboxBatchSize
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
