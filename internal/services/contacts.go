package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
)

type ContactService struct {
	*ownedCollection[models.Contact, *models.Contact]
	now   timex.Clock
	newID func() string
}

func NewContactService(db *localstore.DB, m mirror.Contacts, log logging.Logger, now timex.Clock) *ContactService {
	return &ContactService{
		ownedCollection: newOwned[models.Contact, *models.Contact](db, models.KeyContacts, remoteOps[models.Contact]{
			selectAll: m.SelectContacts,
			put:       m.InsertContact,
			delete:    m.DeleteContact,
		}, log),
		now:   now,
		newID: newID,
	}
}

func (s *ContactService) Add(ctx context.Context, userID, name string, avatar *string) (models.Contact, error) {
	c := models.Contact{
		ID:        s.newID(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Avatar:    avatar,
		CreatedAt: s.now(),
	}
	if err := c.Validate(); err != nil {
		return models.Contact{}, err
	}
	return s.add(ctx, c)
}
