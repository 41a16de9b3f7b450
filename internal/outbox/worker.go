package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/sethvargo/go-retry"
)

// Handler performs the remote leg of jobs for one collection.
type Handler interface {
	// Apply mirrors the change described by job.
	Apply(ctx context.Context, job localstore.Job) error
	// Settle records the outcome on the local record. Records that no
	// longer exist are ignored.
	Settle(ctx context.Context, job localstore.Job, state models.SyncState) error
}

// Queue is the subset of the outbox repository the worker uses.
type Queue interface {
	Due(ctx context.Context, limit int) ([]localstore.Job, error)
	MarkDone(ctx context.Context, id int64, attempts int) error
	Reschedule(ctx context.Context, id int64, attempts int, next time.Time, lastErr string) error
	MarkFailed(ctx context.Context, id int64, attempts int, lastErr string) error
	Counts(ctx context.Context) (map[localstore.JobStatus]int, error)
	PruneDone(ctx context.Context, cutoff time.Time) (int64, error)
}

type Options struct {
	Interval    time.Duration
	JobTimeout  time.Duration
	MaxAttempts int
	BatchSize   int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	// Retention is how long finished jobs are kept before pruning.
	Retention time.Duration
}

func DefaultOptions() Options {
	return Options{
		Interval:    5 * time.Second,
		JobTimeout:  10 * time.Second,
		MaxAttempts: 8,
		BatchSize:   50,
		BaseBackoff: 2 * time.Second,
		MaxBackoff:  5 * time.Minute,
		Retention:   24 * time.Hour,
	}
}

// Result summarizes one drain round.
type Result struct {
	Done    int
	Retried int
	Failed  int
}

type Status struct {
	Online  bool
	Pending int
	Done    int
	Failed  int
}

type Worker struct {
	queue  Queue
	pinger mirror.Pinger
	log    logging.Logger
	now    timex.Clock
	opts   Options

	handlers map[string]Handler
	online   atomic.Bool
	// round serializes drain rounds between Run and Sync.
	round sync.Mutex
}

func NewWorker(queue Queue, pinger mirror.Pinger, log logging.Logger, now timex.Clock, opts Options) *Worker {
	if now == nil {
		now = timex.SystemClock
	}
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = def.JobTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = def.BaseBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = def.MaxBackoff
	}
	if opts.Retention <= 0 {
		opts.Retention = def.Retention
	}
	return &Worker{
		queue:    queue,
		pinger:   pinger,
		log:      logging.ForModule(log, "outbox"),
		now:      now,
		opts:     opts,
		handlers: make(map[string]Handler),
	}
}

// Register binds h to jobs of collection. It must be called before Run.
func (w *Worker) Register(collection string, h Handler) {
	w.handlers[collection] = h
}

func (w *Worker) Online() bool {
	return w.online.Load()
}

// Run drains the outbox every Options.Interval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	if _, err := w.Sync(ctx); err != nil && !errors.Is(err, common.ErrMirrorUnavailable) && ctx.Err() == nil {
		w.log.Error(ctx, "outbox round failed", "error", err)
	}
	if n, err := w.queue.PruneDone(ctx, w.now().Add(-w.opts.Retention)); err != nil {
		w.log.Warn(ctx, "outbox prune failed", "error", err)
	} else if n > 0 {
		w.log.Debug(ctx, "outbox pruned", "jobs", n)
	}
}

// Sync runs one drain round now. It returns common.ErrMirrorUnavailable
// without touching the queue when the mirror is offline. Individual job
// failures are recorded on the jobs and counted in the result.
func (w *Worker) Sync(ctx context.Context) (Result, error) {
	w.round.Lock()
	defer w.round.Unlock()

	var res Result
	if err := w.ping(ctx); err != nil {
		return res, err
	}

	jobs, err := w.queue.Due(ctx, w.opts.BatchSize)
	if err != nil {
		return res, err
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		switch w.process(ctx, job) {
		case localstore.JobDone:
			res.Done++
		case localstore.JobFailed:
			res.Failed++
		default:
			res.Retried++
		}
	}
	return res, nil
}

func (w *Worker) Status(ctx context.Context) (Status, error) {
	counts, err := w.queue.Counts(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Online:  w.Online(),
		Pending: counts[localstore.JobPending],
		Done:    counts[localstore.JobDone],
		Failed:  counts[localstore.JobFailed],
	}, nil
}

func (w *Worker) ping(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, w.opts.JobTimeout)
	err := w.pinger.Ping(pctx)
	cancel()

	if err != nil {
		if w.online.Swap(false) {
			w.log.Warn(ctx, "switched to offline mode", "error", err)
		}
		if !errors.Is(err, common.ErrMirrorUnavailable) {
			err = fmt.Errorf("%w: %v", common.ErrMirrorUnavailable, err)
		}
		return err
	}
	if !w.online.Swap(true) {
		w.log.Info(ctx, "switched to online mode")
	}
	return nil
}

// process applies one job and returns the status it ended in.
func (w *Worker) process(ctx context.Context, job localstore.Job) localstore.JobStatus {
	log := w.log.With("job", job.ID, "topic", job.Topic(), "record", job.RecordID)
	attempts := job.Attempts + 1

	h, ok := w.handlers[job.Collection]
	if !ok {
		msg := fmt.Sprintf("%v: %s", common.ErrUnknownCollection, job.Collection)
		log.Error(ctx, "no handler for job", "error", msg)
		if err := w.queue.MarkFailed(ctx, job.ID, attempts, msg); err != nil {
			log.Error(ctx, "failed to mark job failed", "error", err)
		}
		return localstore.JobFailed
	}

	jctx, cancel := context.WithTimeout(ctx, w.opts.JobTimeout)
	err := h.Apply(jctx, job)
	cancel()

	if err == nil {
		if qerr := w.queue.MarkDone(ctx, job.ID, attempts); qerr != nil {
			log.Error(ctx, "failed to mark job done", "error", qerr)
		}
		w.settle(ctx, log, h, job, models.Synced())
		log.Debug(ctx, "job mirrored", "attempts", attempts)
		return localstore.JobDone
	}

	if attempts >= w.opts.MaxAttempts {
		log.Error(ctx, "job failed permanently", "attempts", attempts, "error", err)
		if qerr := w.queue.MarkFailed(ctx, job.ID, attempts, err.Error()); qerr != nil {
			log.Error(ctx, "failed to mark job failed", "error", qerr)
		}
		w.settle(ctx, log, h, job, models.Failed(err.Error()))
		return localstore.JobFailed
	}

	next := w.now().Add(w.backoff(attempts))
	log.Warn(ctx, "job failed, will retry", "attempts", attempts, "next_attempt_at", next, "error", err)
	if qerr := w.queue.Reschedule(ctx, job.ID, attempts, next, err.Error()); qerr != nil {
		log.Error(ctx, "failed to reschedule job", "error", qerr)
	}
	return localstore.JobPending
}

// settle updates the local record. Deleted records have nothing to settle.
func (w *Worker) settle(ctx context.Context, log logging.Logger, h Handler, job localstore.Job, state models.SyncState) {
	if job.Action == localstore.ActionDelete {
		return
	}
	if err := h.Settle(ctx, job, state); err != nil {
		log.Warn(ctx, "failed to record sync state", "status", state.SyncStatus, "error", err)
	}
}

// backoff returns the delay before the given attempt number is retried:
// BaseBackoff doubled per attempt, capped at MaxBackoff.
func (w *Worker) backoff(attempt int) time.Duration {
	b := retry.WithCappedDuration(w.opts.MaxBackoff, retry.NewExponential(w.opts.BaseBackoff))
	var d time.Duration
	for i := 0; i < attempt; i++ {
		d, _ = b.Next()
	}
	return d
}
