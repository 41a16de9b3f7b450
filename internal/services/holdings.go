package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/shopspring/decimal"
)

type HoldingService struct {
	*ownedCollection[models.CurrencyHolding, *models.CurrencyHolding]
	now   timex.Clock
	newID func() string
}

func NewHoldingService(db *localstore.DB, m mirror.Holdings, log logging.Logger, now timex.Clock) *HoldingService {
	return &HoldingService{
		ownedCollection: newOwned[models.CurrencyHolding, *models.CurrencyHolding](db, models.KeyHoldings, remoteOps[models.CurrencyHolding]{
			selectAll: m.SelectHoldings,
			put:       m.InsertHolding,
			delete:    m.DeleteHolding,
		}, log),
		now:   now,
		newID: newID,
	}
}

// Add records an amount held in the currency with ISO code.
func (s *HoldingService) Add(ctx context.Context, userID, code string, amount decimal.Decimal) (models.CurrencyHolding, error) {
	now := s.now()
	h := models.CurrencyHolding{
		ID:        s.newID(),
		UserID:    userID,
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Validate(); err != nil {
		return models.CurrencyHolding{}, err
	}
	return s.add(ctx, h)
}
