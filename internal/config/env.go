package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotenv is a seam for godotenv.Load.
var loadDotenv = godotenv.Load

// parseEnv overlays cfg with FINHIVE_* environment variables. A dotenv file
// named by -e/-env-file is loaded first; without the flag ./.env is tried and
// silently skipped when missing. Variables already set in the process
// environment take precedence over the file.
//
// Panics on unreadable dotenv files or malformed numeric values.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := loadDotenv(path); err != nil {
			panic(err)
		}
	} else if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString("LOCAL_DSN", &cfg.LocalDSN)
	envString("REMOTE_DSN", &cfg.RemoteDSN)
	envString("S3_BUCKET", &cfg.S3Bucket)
	envString("S3_REGION", &cfg.S3Region)
	envString("S3_ENDPOINT", &cfg.S3BaseEndpoint)
	envString("S3_ACCESS_KEY", &cfg.S3AccessKey)
	envString("S3_SECRET_KEY", &cfg.S3SecretKey)
	envDuration("OUTBOX_INTERVAL", &cfg.OutboxInterval)
	envInt("OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts)
	envDuration("OUTBOX_JOB_TIMEOUT", &cfg.OutboxJobTimeout)
	envInt("OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envString("LOG_FORMAT", &cfg.LogFormat)
	envString("USER_ID", &cfg.UserID)
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(common.EnvPrefix + name); ok {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	v, ok := os.LookupEnv(common.EnvPrefix + name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}

func envDuration(name string, dst *time.Duration) {
	v, ok := os.LookupEnv(common.EnvPrefix + name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
