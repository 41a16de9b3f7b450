// Package localstore is the primary, process-local persistence of FinHive.
//
// Records live as JSON arrays under fixed collection keys in a SQLite file.
// Collection[T] is the typed view over one key: reads fail soft, writes go
// through Mutate, which serializes writers per key and commits the new
// collection together with any outbox jobs describing the change. The outbox
// table is drained by the outbox worker, which mirrors changes to the remote
// store.
package localstore
