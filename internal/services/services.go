package services

import (
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/outbox"
	"github.com/dmitrijs2005/finhive/internal/timex"
)

// Registry accepts outbox handlers. *outbox.Worker implements it.
type Registry interface {
	Register(collection string, h outbox.Handler)
}

// Services bundles every accessor over one local store and one mirror.
type Services struct {
	Accounts     *AccountService
	Transactions *TransactionService
	Receipts     *ReceiptService
	Settings     *SettingsService
	Goals        *GoalService
	Holdings     *HoldingService
	Contacts     *ContactService
}

// New wires the accessors. blobs may be nil.
func New(db *localstore.DB, m mirror.Mirror, blobs Blobs, log logging.Logger, now timex.Clock) *Services {
	if now == nil {
		now = timex.SystemClock
	}
	log = logging.ForModule(log, "services")
	return &Services{
		Accounts:     NewAccountService(db, m, log, now),
		Transactions: NewTransactionService(db, m, log, now),
		Receipts:     NewReceiptService(db, m, blobs, log, now),
		Settings:     NewSettingsService(db, m, log, now),
		Goals:        NewGoalService(db, m, log),
		Holdings:     NewHoldingService(db, m, log, now),
		Contacts:     NewContactService(db, m, log, now),
	}
}

// RegisterHandlers binds each mirrored collection to its outbox handler.
func (s *Services) RegisterHandlers(r Registry) {
	r.Register(models.KeyAccounts, s.Accounts.ownedCollection)
	r.Register(models.KeyTransactions, s.Transactions.ownedCollection)
	r.Register(models.KeyReceipts, s.Receipts.ownedCollection)
	r.Register(models.KeyProfile, s.Settings.handler())
	r.Register(models.KeyHoldings, s.Holdings.ownedCollection)
	r.Register(models.KeyContacts, s.Contacts.ownedCollection)
}
