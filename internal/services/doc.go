// Package services holds the record accessors: per-entity get, add, update
// and delete operations over the local store, with the remote mirror as a
// read fallback and the outbox as the only write path to it.
//
// Every accessor filters reads and deletes by owner. Reads never fail: local
// data wins whenever the owner has any, otherwise the mirror is consulted and
// its rows are merged into the local store as synced. Writes commit locally
// together with an outbox job and return without waiting for the mirror;
// the job outcome later shows up in the record's sync status.
package services
