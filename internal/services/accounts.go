package services

import (
	"context"

	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/shopspring/decimal"
)

// NewAccount holds the caller-supplied fields of an account.
type NewAccount struct {
	Name       string
	Type       models.AccountType
	Balance    decimal.Decimal
	CardType   *string
	LastFour   *string
	MonthlyFee *decimal.Decimal
}

type AccountService struct {
	*ownedCollection[models.Account, *models.Account]
	now   timex.Clock
	newID func() string
}

func NewAccountService(db *localstore.DB, m mirror.Accounts, log logging.Logger, now timex.Clock) *AccountService {
	return &AccountService{
		ownedCollection: newOwned[models.Account, *models.Account](db, models.KeyAccounts, remoteOps[models.Account]{
			selectAll: m.SelectAccounts,
			put:       m.InsertAccount,
			delete:    m.DeleteAccount,
		}, log),
		now:   now,
		newID: newID,
	}
}

func (s *AccountService) Add(ctx context.Context, userID string, in NewAccount) (models.Account, error) {
	now := s.now()
	a := models.Account{
		ID:         s.newID(),
		UserID:     userID,
		Name:       in.Name,
		Type:       in.Type,
		Balance:    in.Balance,
		CardType:   in.CardType,
		LastFour:   in.LastFour,
		MonthlyFee: in.MonthlyFee,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := a.Validate(); err != nil {
		return models.Account{}, err
	}
	return s.add(ctx, a)
}

// Primary returns the owner's first checking account.
func (s *AccountService) Primary(ctx context.Context, userID string) (models.Account, bool) {
	for _, a := range s.GetAll(ctx, userID) {
		if a.Type == models.AccountChecking {
			return a, true
		}
	}
	return models.Account{}, false
}
