package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/shopspring/decimal"
)

// DefaultRecent is the number of transactions Recent returns for limit <= 0.
const DefaultRecent = 5

// NewTransaction holds the caller-supplied fields of a transaction. An empty
// Category becomes models.DefaultCategory and a nil Date means today.
type NewTransaction struct {
	AccountID   *string
	Amount      decimal.Decimal
	Type        models.TransactionType
	Category    string
	Description string
	Date        *models.Date
}

type TransactionService struct {
	*ownedCollection[models.Transaction, *models.Transaction]
	now   timex.Clock
	newID func() string
}

func NewTransactionService(db *localstore.DB, m mirror.Transactions, log logging.Logger, now timex.Clock) *TransactionService {
	return &TransactionService{
		ownedCollection: newOwned[models.Transaction, *models.Transaction](db, models.KeyTransactions, remoteOps[models.Transaction]{
			selectAll: m.SelectTransactions,
			put:       m.InsertTransaction,
			delete:    m.DeleteTransaction,
		}, log),
		now:   now,
		newID: newID,
	}
}

func (s *TransactionService) Add(ctx context.Context, userID string, in NewTransaction) (models.Transaction, error) {
	now := s.now()
	t := models.Transaction{
		ID:          s.newID(),
		UserID:      userID,
		AccountID:   in.AccountID,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		CreatedAt:   now,
	}
	if t.Category == "" {
		t.Category = models.DefaultCategory
	}
	if in.Date != nil {
		t.Date = *in.Date
	} else {
		t.Date = models.DateOf(now)
	}
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}
	return s.add(ctx, t)
}

// Recent returns up to limit of the owner's transactions, newest first by
// creation time.
func (s *TransactionService) Recent(ctx context.Context, userID string, limit int) []models.Transaction {
	if limit <= 0 {
		limit = DefaultRecent
	}
	items := s.GetAll(ctx, userID)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Local returns the owner's transactions without consulting the mirror.
// Unlike GetAll it reports an unreadable log instead of treating it as
// empty.
func (s *TransactionService) Local(ctx context.Context, userID string) ([]models.Transaction, error) {
	items, err := s.coll.Read(ctx)
	if err != nil {
		return nil, err
	}
	return filterOwner[models.Transaction, *models.Transaction](items, userID), nil
}

// Revision changes whenever the local transaction log is written.
func (s *TransactionService) Revision() uint64 {
	return s.coll.Revision()
}
