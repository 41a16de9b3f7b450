package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/finhive/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-l string   local SQLite DSN
//	-d string   remote PostgreSQL DSN
//	-u string   user id
//	-i int      outbox polling interval, seconds
//	-m int      outbox max attempts per job
//	-t int      outbox per-job timeout, seconds
//	-v string   log level
//	-f string   log format (text, json, zap)
//	-b string   S3 bucket
//	-g string   S3 region
//	-x string   S3 base endpoint
//
// Only these flags are parsed; the rest of os.Args is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-d", "-u", "-i", "-m", "-t", "-v", "-f", "-b", "-g", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDSN, "l", cfg.LocalDSN, "local SQLite DSN")
	fs.StringVar(&cfg.RemoteDSN, "d", cfg.RemoteDSN, "remote PostgreSQL DSN")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id")
	interval := fs.Int("i", int(cfg.OutboxInterval.Seconds()), "outbox polling interval (in seconds)")
	fs.IntVar(&cfg.OutboxMaxAttempts, "m", cfg.OutboxMaxAttempts, "outbox max attempts per job")
	timeout := fs.Int("t", int(cfg.OutboxJobTimeout.Seconds()), "outbox per-job timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for receipt payloads")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "x", cfg.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OutboxInterval = time.Duration(*interval) * time.Second
	cfg.OutboxJobTimeout = time.Duration(*timeout) * time.Second
}
