package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finhive/internal/dbx"
	"github.com/dmitrijs2005/finhive/internal/timex"
)

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Action says what the remote leg of a job must do with the record.
type Action string

const (
	ActionInsert Action = "insert"
	ActionDelete Action = "delete"
	ActionUpsert Action = "upsert"
)

// Job is one pending change waiting to be mirrored.
type Job struct {
	ID            int64
	Collection    string
	Action        Action
	RecordID      string
	UserID        string
	Payload       []byte
	Status        JobStatus
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Topic names the job as "<collection>.<action>".
func (j Job) Topic() string {
	return j.Collection + "." + string(j.Action)
}

// Enqueuer accepts new outbox jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) (int64, error)
}

// OutboxRepository reads and writes the outbox table.
type OutboxRepository struct {
	db  dbx.DBTX
	now timex.Clock
}

func NewOutboxRepository(db dbx.DBTX, now timex.Clock) *OutboxRepository {
	if now == nil {
		now = timex.SystemClock
	}
	return &OutboxRepository{db: db, now: now}
}

// Enqueue stores job as pending and due immediately.
func (r *OutboxRepository) Enqueue(ctx context.Context, job Job) (int64, error) {
	ts := r.now().UnixMilli()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO outbox (collection, action, record_id, user_id, payload, status, attempts, next_attempt_at, last_error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'pending', 0, ?, '', ?, ?)
	`, job.Collection, string(job.Action), job.RecordID, job.UserID, job.Payload, ts, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue %s job: %w", job.Topic(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read job id: %w", err)
	}
	return id, nil
}

// Due returns up to limit pending jobs whose next attempt time has passed.
// Only the oldest pending job of each record is returned, so changes to one
// record are mirrored in the order they were made.
func (r *OutboxRepository) Due(ctx context.Context, limit int) ([]Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.collection, o.action, o.record_id, o.user_id, o.payload, o.status,
		       o.attempts, o.next_attempt_at, o.last_error, o.created_at, o.updated_at
		FROM outbox o
		WHERE o.status = 'pending' AND o.next_attempt_at <= ?
		  AND o.id = (
		      SELECT MIN(p.id) FROM outbox p
		      WHERE p.status = 'pending' AND p.collection = o.collection AND p.record_id = o.record_id
		  )
		ORDER BY o.id
		LIMIT ?
	`, r.now().UnixMilli(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select due jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var (
			j                     Job
			action, status        string
			next, created, update int64
		)
		if err := rows.Scan(&j.ID, &j.Collection, &action, &j.RecordID, &j.UserID, &j.Payload, &status,
			&j.Attempts, &next, &j.LastError, &created, &update); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		j.Action = Action(action)
		j.Status = JobStatus(status)
		j.NextAttemptAt = time.UnixMilli(next)
		j.CreatedAt = time.UnixMilli(created)
		j.UpdatedAt = time.UnixMilli(update)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}
	return jobs, nil
}

// MarkDone records a successful mirror.
func (r *OutboxRepository) MarkDone(ctx context.Context, id int64, attempts int) error {
	return r.update(ctx, id, JobDone, attempts, r.now(), "")
}

// Reschedule keeps the job pending until next.
func (r *OutboxRepository) Reschedule(ctx context.Context, id int64, attempts int, next time.Time, lastErr string) error {
	return r.update(ctx, id, JobPending, attempts, next, lastErr)
}

// MarkFailed gives up on the job.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id int64, attempts int, lastErr string) error {
	return r.update(ctx, id, JobFailed, attempts, r.now(), lastErr)
}

func (r *OutboxRepository) update(ctx context.Context, id int64, status JobStatus, attempts int, next time.Time, lastErr string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outbox SET status = ?, attempts = ?, next_attempt_at = ?, last_error = ?, updated_at = ?
		WHERE id = ?
	`, string(status), attempts, next.UnixMilli(), lastErr, r.now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("failed to update job %d: %w", id, err)
	}
	return dbx.AtMostOne(res)
}

// Counts returns the number of jobs per status.
func (r *OutboxRepository) Counts(ctx context.Context) (map[JobStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM outbox GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	defer rows.Close()

	counts := map[JobStatus]int{JobPending: 0, JobDone: 0, JobFailed: 0}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan job count: %w", err)
		}
		counts[JobStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job counts: %w", err)
	}
	return counts, nil
}

// PruneDone deletes finished jobs last touched before cutoff.
func (r *OutboxRepository) PruneDone(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM outbox WHERE status = 'done' AND updated_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune jobs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
