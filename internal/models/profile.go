package models

import "time"

// UserProfile is keyed by the user id itself.
type UserProfile struct {
	ID          string    `json:"id"`
	FirstName   *string   `json:"first_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsPremium   *bool     `json:"is_premium,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SyncState
}

func (p UserProfile) RecordID() string { return p.ID }
func (p UserProfile) OwnerID() string  { return p.ID }

// ProfilePatch lists the fields an update may change; nil means "keep".
type ProfilePatch struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	IsPremium   *bool   `json:"is_premium,omitempty"`
}

// Apply merges the non-nil fields of patch into p.
func (p *UserProfile) Apply(patch ProfilePatch) {
	if patch.FirstName != nil {
		p.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = patch.LastName
	}
	if patch.PhoneNumber != nil {
		p.PhoneNumber = patch.PhoneNumber
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	if patch.IsPremium != nil {
		p.IsPremium = patch.IsPremium
	}
}
