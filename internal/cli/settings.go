package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finhive/internal/models"
)

func deref[T any](p *T, empty string) string {
	if p == nil {
		return empty
	}
	return fmt.Sprint(*p)
}

func (a *App) cmdProfile(ctx context.Context, _ []string) error {
	p, ok := a.svc.Settings.Profile(ctx, a.user)
	if !ok {
		fmt.Fprintln(a.out, "No profile yet. Use setprofile to create one.")
		return nil
	}
	name := strings.TrimSpace(deref(p.FirstName, "") + " " + deref(p.LastName, ""))
	if name == "" {
		name = "-"
	}
	fmt.Fprintln(a.out, "Name:   ", name)
	fmt.Fprintln(a.out, "Phone:  ", deref(p.PhoneNumber, "-"))
	fmt.Fprintln(a.out, "Avatar: ", deref(p.AvatarURL, "-"))
	fmt.Fprintln(a.out, "Premium:", deref(p.IsPremium, "false"))
	fmt.Fprintln(a.out, "Sync:   ", syncMark(p.SyncState))
	return nil
}

func (a *App) cmdSetProfile(ctx context.Context, _ []string) error {
	var patch models.ProfilePatch
	var err error
	if patch.FirstName, err = a.askOptional("First name (empty to keep)"); err != nil {
		return err
	}
	if patch.LastName, err = a.askOptional("Last name (empty to keep)"); err != nil {
		return err
	}
	if patch.PhoneNumber, err = a.askOptional("Phone number (empty to keep)"); err != nil {
		return err
	}
	if patch.AvatarURL, err = a.askOptional("Avatar URL (empty to keep)"); err != nil {
		return err
	}

	if _, err := a.svc.Settings.UpdateProfile(ctx, a.user, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved.")
	return nil
}

func (a *App) cmdPrefs(ctx context.Context, _ []string) error {
	p := a.svc.Settings.Preferences(ctx, a.user)
	fmt.Fprintln(a.out, "Currency:           ", p.Currency)
	fmt.Fprintln(a.out, "Date format:        ", p.DateFormat)
	fmt.Fprintln(a.out, "Email notifications:", p.EmailNotifications)
	fmt.Fprintln(a.out, "Push notifications: ", p.PushNotifications)
	return nil
}

func (a *App) cmdSetPrefs(ctx context.Context, _ []string) error {
	var patch models.PreferencesPatch
	var err error
	if patch.Currency, err = a.askOptional("Currency code (empty to keep)"); err != nil {
		return err
	}
	if patch.Currency != nil {
		code := strings.ToUpper(*patch.Currency)
		patch.Currency = &code
	}
	if patch.DateFormat, err = a.askOptional("Date format DD/MM/YYYY, MM/DD/YYYY or YYYY-MM-DD (empty to keep)"); err != nil {
		return err
	}
	if patch.EmailNotifications, err = a.askYesNo("Email notifications"); err != nil {
		return err
	}
	if patch.PushNotifications, err = a.askYesNo("Push notifications"); err != nil {
		return err
	}

	if _, err := a.svc.Settings.UpdatePreferences(ctx, a.user, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Preferences saved.")
	return nil
}
