// Package app wires the local store, the remote mirror, the outbox worker
// and the interactive shell together and runs them until the user leaves
// or the process is signalled.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/finhive/internal/analytics"
	"github.com/dmitrijs2005/finhive/internal/blobstore"
	"github.com/dmitrijs2005/finhive/internal/cli"
	"github.com/dmitrijs2005/finhive/internal/config"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/outbox"
	"github.com/dmitrijs2005/finhive/internal/services"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"golang.org/x/sync/errgroup"
)

// logOutput receives the application log.
var logOutput io.Writer = os.Stderr

// Seams for tests.
var (
	openMirror = func(dsn string, now timex.Clock) (mirror.Mirror, io.Closer, error) {
		m, err := mirror.Open(dsn, now)
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	}
	newBlobStore = func(ctx context.Context, opts blobstore.Options) (services.Blobs, error) {
		s, err := blobstore.New(ctx, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

type App struct {
	cfg     *config.Config
	log     logging.Logger
	db      *localstore.DB
	closers []io.Closer
	worker  *outbox.Worker
	shell   *cli.App
}

// NewApp opens the stores described by cfg. The shell reads commands from
// in and writes to out; prompts are shown only when interactive is set.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, interactive bool) (*App, error) {
	log, err := logging.New(logOutput, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	now := timex.Clock(timex.SystemClock)

	db, err := localstore.Open(ctx, cfg.LocalDSN, log, localstore.WithClock(now))
	if err != nil {
		return nil, err
	}
	app := &App{cfg: cfg, log: log, db: db, closers: []io.Closer{db}}

	var m mirror.Mirror = mirror.Disabled{}
	if cfg.MirrorEnabled() {
		pm, closer, err := openMirror(cfg.RemoteDSN, now)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("mirror init error: %w", err)
		}
		m = pm
		app.closers = append(app.closers, closer)
	} else {
		log.Info(ctx, "remote mirror disabled, running local only")
	}

	// A nil *S3Store must not reach services as a non-nil Blobs.
	var blobs services.Blobs
	if cfg.BlobStoreEnabled() {
		blobs, err = newBlobStore(ctx, blobstore.Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("blob store init error: %w", err)
		}
	}

	svc := services.New(db, m, blobs, log, now)

	opts := outbox.DefaultOptions()
	opts.Interval = cfg.OutboxInterval
	opts.MaxAttempts = cfg.OutboxMaxAttempts
	opts.JobTimeout = cfg.OutboxJobTimeout
	opts.BatchSize = cfg.OutboxBatchSize
	app.worker = outbox.NewWorker(db.Outbox(), m, log, now, opts)
	svc.RegisterHandlers(app.worker)

	engine := analytics.NewEngine(svc.Transactions, svc.Accounts, svc.Holdings, m, log, now)
	app.shell = cli.NewApp(cfg.UserID, svc, engine, app.worker, log,
		cli.WithIO(in, out), cli.WithPrompt(interactive))

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves the shell with the outbox worker in the background. It returns
// once the shell exits or ctx is cancelled, after the worker has stopped.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.log.Info(ctx, "Starting app...", "user", app.cfg.UserID, "local", app.cfg.LocalDSN)
	app.initSignalHandler(ctx, cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.worker.Run(gctx)
	})

	// The shell may stay blocked on a read after a signal; it is not waited
	// for once ctx is done.
	shellDone := make(chan struct{})
	go func() {
		defer close(shellDone)
		app.shell.Run(gctx)
	}()

	select {
	case <-shellDone:
	case <-gctx.Done():
	}
	cancelFunc()

	err := g.Wait()
	app.log.Info(context.Background(), "Stopped")
	return err
}

// Close releases the stores in reverse order of opening.
func (app *App) Close() error {
	var first error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	app.closers = nil
	return first
}
