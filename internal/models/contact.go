package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
)

type Contact struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SyncState
}

func (c Contact) RecordID() string { return c.ID }
func (c Contact) OwnerID() string  { return c.UserID }

func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: contact name is required", common.ErrValidation)
	}
	return nil
}
