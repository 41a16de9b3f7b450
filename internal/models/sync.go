package models

// SyncStatus tracks whether a local record reached the remote mirror.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// SyncState is embedded in mirrored records. It never leaves the local store.
type SyncState struct {
	SyncStatus SyncStatus `json:"sync_status,omitempty"`
	SyncError  string     `json:"sync_error,omitempty"`
}

// SetSync replaces the sync state.
func (s *SyncState) SetSync(state SyncState) {
	*s = state
}

// Sync returns the current sync state.
func (s SyncState) Sync() SyncState {
	return s
}

// Pending, Synced and Failed build the three states.
func Pending() SyncState { return SyncState{SyncStatus: SyncPending} }

func Synced() SyncState { return SyncState{SyncStatus: SyncSynced} }

func Failed(err string) SyncState { return SyncState{SyncStatus: SyncFailed, SyncError: err} }

// Record is implemented by every owner-scoped record.
type Record interface {
	RecordID() string
	OwnerID() string
}
