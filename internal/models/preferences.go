package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"golang.org/x/text/currency"
)

// Preference defaults for users who never saved any.
const (
	DefaultCurrency   = "INR"
	DefaultDateFormat = "DD/MM/YYYY"
)

var dateFormats = map[string]struct{}{
	"DD/MM/YYYY": {},
	"MM/DD/YYYY": {},
	"YYYY-MM-DD": {},
}

// UserPreferences live only in the local store.
type UserPreferences struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Currency           string    `json:"currency"`
	DateFormat         string    `json:"date_format"`
	EmailNotifications bool      `json:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p UserPreferences) RecordID() string { return p.ID }
func (p UserPreferences) OwnerID() string  { return p.UserID }

// DefaultPreferences returns the preferences of a user who never saved any.
func DefaultPreferences(userID string, now time.Time) UserPreferences {
	return UserPreferences{
		UserID:             userID,
		Currency:           DefaultCurrency,
		DateFormat:         DefaultDateFormat,
		EmailNotifications: true,
		PushNotifications:  false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

type PreferencesPatch struct {
	Currency           *string `json:"currency,omitempty"`
	DateFormat         *string `json:"date_format,omitempty"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	PushNotifications  *bool   `json:"push_notifications,omitempty"`
}

// Validate checks the fields the patch sets.
func (p PreferencesPatch) Validate() error {
	if p.Currency != nil {
		if _, err := currency.ParseISO(*p.Currency); err != nil {
			return fmt.Errorf("%w: unknown currency %q", common.ErrValidation, *p.Currency)
		}
	}
	if p.DateFormat != nil {
		if _, ok := dateFormats[*p.DateFormat]; !ok {
			return fmt.Errorf("%w: unsupported date format %q", common.ErrValidation, *p.DateFormat)
		}
	}
	return nil
}

func (p *UserPreferences) Apply(patch PreferencesPatch) {
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.DateFormat != nil {
		p.DateFormat = *patch.DateFormat
	}
	if patch.EmailNotifications != nil {
		p.EmailNotifications = *patch.EmailNotifications
	}
	if patch.PushNotifications != nil {
		p.PushNotifications = *patch.PushNotifications
	}
}
