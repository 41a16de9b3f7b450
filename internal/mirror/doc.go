// Package mirror is the client of the remote relational store that mirrors
// the local collections.
//
// PostgresMirror builds its statements with squirrel and runs them over a
// dbx.DBTX, so every table operation works on a plain *sql.DB or inside a
// transaction. Point writes are idempotent: inserts ignore an existing id and
// deletes of a missing row succeed. This lets the outbox retry a job whose
// first attempt reached the server but lost the reply.
//
// The mirror imposes no timeouts of its own; callers bound each operation
// with the context they pass in.
package mirror
