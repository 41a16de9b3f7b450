package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/outbox"
)

// record is the pointer side of a mirrored record type.
type record[T any] interface {
	*T
	models.Record
	SetSync(models.SyncState)
}

// remoteOps is the remote leg of one record type. Nil functions mark
// operations the remote side does not offer.
type remoteOps[T any] struct {
	selectAll func(ctx context.Context, userID string) ([]T, error)
	put       func(ctx context.Context, item T) error
	delete    func(ctx context.Context, id, userID string) error
}

// ownedCollection implements the uniform accessor contract for one
// collection of owner-scoped records. It is also the outbox handler of that
// collection.
type ownedCollection[T any, P record[T]] struct {
	coll   *localstore.Collection[T]
	remote remoteOps[T]
	log    logging.Logger
}

var _ outbox.Handler = (*ownedCollection[models.Account, *models.Account])(nil)

func newOwned[T any, P record[T]](db *localstore.DB, key string, remote remoteOps[T], log logging.Logger) *ownedCollection[T, P] {
	return &ownedCollection[T, P]{
		coll:   localstore.NewCollection[T](db, key),
		remote: remote,
		log:    log.With("collection", key),
	}
}

func (o *ownedCollection[T, P]) key() string { return o.coll.Key() }

// local returns the owner's records from the local store only.
func (o *ownedCollection[T, P]) local(ctx context.Context, userID string) []T {
	return filterOwner[T, P](o.coll.Load(ctx), userID)
}

func filterOwner[T any, P record[T]](items []T, userID string) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).OwnerID() == userID {
			out = append(out, items[i])
		}
	}
	return out
}

// GetAll returns the owner's records: local first, then the mirror. A
// non-empty remote result is merged into the local store before returning.
func (o *ownedCollection[T, P]) GetAll(ctx context.Context, userID string) []T {
	if items := o.local(ctx, userID); len(items) > 0 {
		return items
	}
	if o.remote.selectAll == nil {
		return []T{}
	}

	items, err := o.remote.selectAll(ctx, userID)
	if err != nil {
		o.log.Debug(ctx, "remote fallback unavailable", "user", userID, "error", err)
		return []T{}
	}
	if len(items) == 0 {
		return []T{}
	}

	for i := range items {
		P(&items[i]).SetSync(models.Synced())
	}
	err = o.coll.Mutate(ctx, func(ctx context.Context, all []T, _ localstore.Enqueuer) ([]T, bool, error) {
		if len(filterOwner[T, P](all, userID)) > 0 {
			// Records were added locally meanwhile; they take precedence.
			return all, false, nil
		}
		return append(all, items...), true, nil
	})
	if err != nil {
		o.log.Warn(ctx, "failed to merge remote records", "user", userID, "error", err)
	}
	return items
}

// add commits item as pending together with its insert job.
func (o *ownedCollection[T, P]) add(ctx context.Context, item T) (T, error) {
	P(&item).SetSync(models.Pending())
	job, err := o.job(localstore.ActionInsert, P(&item))
	if err != nil {
		return item, err
	}

	err = o.coll.Mutate(ctx, func(ctx context.Context, items []T, q localstore.Enqueuer) ([]T, bool, error) {
		if _, err := q.Enqueue(ctx, job); err != nil {
			return nil, false, err
		}
		return append(items, item), true, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to save %s: %w", o.key(), err)
	}
	return item, nil
}

// Delete removes the record matching both id and userID and queues the
// remote delete. It reports whether a local record was removed.
func (o *ownedCollection[T, P]) Delete(ctx context.Context, id, userID string) (bool, error) {
	removed := false
	err := o.coll.Mutate(ctx, func(ctx context.Context, items []T, q localstore.Enqueuer) ([]T, bool, error) {
		kept := make([]T, 0, len(items))
		for i := range items {
			p := P(&items[i])
			if p.RecordID() == id && p.OwnerID() == userID {
				removed = true
				continue
			}
			kept = append(kept, items[i])
		}
		if o.remote.delete != nil {
			if _, err := q.Enqueue(ctx, localstore.Job{
				Collection: o.key(),
				Action:     localstore.ActionDelete,
				RecordID:   id,
				UserID:     userID,
			}); err != nil {
				return nil, false, err
			}
		}
		return kept, removed, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", o.key(), err)
	}
	return removed, nil
}

func (o *ownedCollection[T, P]) job(action localstore.Action, item P) (localstore.Job, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return localstore.Job{}, fmt.Errorf("failed to encode %s record: %w", o.key(), err)
	}
	return localstore.Job{
		Collection: o.key(),
		Action:     action,
		RecordID:   item.RecordID(),
		UserID:     item.OwnerID(),
		Payload:    payload,
	}, nil
}

// Apply mirrors one outbox job.
func (o *ownedCollection[T, P]) Apply(ctx context.Context, job localstore.Job) error {
	switch job.Action {
	case localstore.ActionInsert, localstore.ActionUpsert:
		if o.remote.put == nil {
			return fmt.Errorf("%s: remote writes not supported", job.Topic())
		}
		var item T
		if err := json.Unmarshal(job.Payload, &item); err != nil {
			return fmt.Errorf("%s: bad payload: %w", job.Topic(), err)
		}
		return o.remote.put(ctx, item)
	case localstore.ActionDelete:
		if o.remote.delete == nil {
			return fmt.Errorf("%s: remote deletes not supported", job.Topic())
		}
		return o.remote.delete(ctx, job.RecordID, job.UserID)
	default:
		return fmt.Errorf("%s: unknown action", job.Topic())
	}
}

// Settle stores the mirror outcome on the local record, if it still exists.
func (o *ownedCollection[T, P]) Settle(ctx context.Context, job localstore.Job, state models.SyncState) error {
	return o.coll.Mutate(ctx, func(ctx context.Context, items []T, _ localstore.Enqueuer) ([]T, bool, error) {
		for i := range items {
			p := P(&items[i])
			if p.RecordID() == job.RecordID && p.OwnerID() == job.UserID {
				p.SetSync(state)
				return items, true, nil
			}
		}
		return items, false, nil
	})
}
