package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
)

// SettingsService manages the user profile, which is mirrored, and the
// preferences, which exist only locally.
type SettingsService struct {
	profiles *ownedCollection[models.UserProfile, *models.UserProfile]
	prefs    *localstore.Collection[models.UserPreferences]
	now      timex.Clock
	newID    func() string
}

func NewSettingsService(db *localstore.DB, m mirror.Profiles, log logging.Logger, now timex.Clock) *SettingsService {
	selectProfile := func(ctx context.Context, userID string) ([]models.UserProfile, error) {
		p, err := m.SelectProfile(ctx, userID)
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []models.UserProfile{p}, nil
	}

	return &SettingsService{
		profiles: newOwned[models.UserProfile, *models.UserProfile](db, models.KeyProfile, remoteOps[models.UserProfile]{
			selectAll: selectProfile,
			put:       m.UpsertProfile,
		}, log),
		prefs: localstore.NewCollection[models.UserPreferences](db, models.KeyPreferences),
		now:   now,
		newID: newID,
	}
}

// Profile returns the user's profile, reporting false when none exists
// locally or remotely.
func (s *SettingsService) Profile(ctx context.Context, userID string) (models.UserProfile, bool) {
	items := s.profiles.GetAll(ctx, userID)
	if len(items) == 0 {
		return models.UserProfile{}, false
	}
	return items[0], true
}

// UpdateProfile merges patch into the profile, creating it when absent, and
// queues an upsert of the whole profile.
func (s *SettingsService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.UserProfile, error) {
	// Pull a remote-only profile in first so the upsert does not blank it.
	s.profiles.GetAll(ctx, userID)

	var out models.UserProfile
	err := s.profiles.coll.Mutate(ctx, func(ctx context.Context, items []models.UserProfile, q localstore.Enqueuer) ([]models.UserProfile, bool, error) {
		now := s.now()
		idx := -1
		for i := range items {
			if items[i].ID == userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			items = append(items, models.UserProfile{ID: userID, CreatedAt: now})
			idx = len(items) - 1
		}

		p := &items[idx]
		p.Apply(patch)
		p.UpdatedAt = now
		p.SetSync(models.Pending())

		job, err := s.profiles.job(localstore.ActionUpsert, p)
		if err != nil {
			return nil, false, err
		}
		if _, err := q.Enqueue(ctx, job); err != nil {
			return nil, false, err
		}
		out = *p
		return items, true, nil
	})
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return out, nil
}

// Preferences returns the stored preferences or the defaults.
func (s *SettingsService) Preferences(ctx context.Context, userID string) models.UserPreferences {
	for _, p := range s.prefs.Load(ctx) {
		if p.UserID == userID {
			return p
		}
	}
	return models.DefaultPreferences(userID, s.now())
}

func (s *SettingsService) UpdatePreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (models.UserPreferences, error) {
	if err := patch.Validate(); err != nil {
		return models.UserPreferences{}, err
	}

	var out models.UserPreferences
	err := s.prefs.Mutate(ctx, func(ctx context.Context, items []models.UserPreferences, _ localstore.Enqueuer) ([]models.UserPreferences, bool, error) {
		now := s.now()
		idx := -1
		for i := range items {
			if items[i].UserID == userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			p := models.DefaultPreferences(userID, now)
			p.ID = s.newID()
			items = append(items, p)
			idx = len(items) - 1
		}

		items[idx].Apply(patch)
		items[idx].UpdatedAt = now
		out = items[idx]
		return items, true, nil
	})
	if err != nil {
		return models.UserPreferences{}, fmt.Errorf("failed to save preferences: %w", err)
	}
	return out, nil
}

func (s *SettingsService) handler() *ownedCollection[models.UserProfile, *models.UserProfile] {
	return s.profiles
}
