// Package models defines the owner-scoped finance records kept in the local
// store and mirrored to the remote database.
//
// Every record except UserPreferences embeds SyncState, the local-only
// mirror status, and exposes RecordID and OwnerID for owner filtering.
package models
