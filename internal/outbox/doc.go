// Package outbox mirrors locally committed changes to the remote store.
//
// Record accessors never talk to the mirror on the write path. They enqueue
// a job in the local outbox table within the same transaction that changes
// the collection. The Worker drains due jobs in the background, hands each
// to the Handler registered for its collection and records the outcome on
// the job and on the record's sync state. Failed jobs are retried with
// exponential backoff until Options.MaxAttempts is reached.
//
// While the mirror does not answer Ping the worker stays offline and leaves
// the queue untouched, so a long outage costs no attempts.
package outbox
