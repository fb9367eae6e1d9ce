package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gmfgallery/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections that tests swap.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

// Login asks for the admin password and opens the session when it matches.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "Already logged in")
		return nil
	}

	password, err := getPassword(a.reader, "Admin password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.session.CheckCredential(ctx, string(password))
	if err != nil {
		return err
	}
	if !ok {
		a.log.Warn(ctx, "admin login rejected")
		fmt.Fprintln(a.out, "Incorrect password")
		return nil
	}

	if err := a.session.Login(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	ok, err := a.session.IsAuthenticated(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "Admin session: open")
	} else {
		fmt.Fprintln(a.out, "Admin session: closed")
	}
	return nil
}

// ChangePassword replaces the admin password. Passwords shorter than
// config.MinPasswordLength are refused.
func (a *App) ChangePassword(ctx context.Context) error {
	password, err := getPassword(a.reader, "New admin password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if minLen := a.config.MinPasswordLength; len([]rune(string(password))) < minLen {
		fmt.Fprintf(a.out, "Password must be at least %d characters\n", minLen)
		return nil
	}

	if err := a.session.SetCredential(ctx, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Admin password updated")
	return nil
}
