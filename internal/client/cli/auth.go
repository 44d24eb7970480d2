package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cloudstack/internal/client/client"
	"github.com/dmitrijs2005/cloudstack/internal/common"
)

// Login prompts for email and password and signs in. The password is wiped
// from memory before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, client.ErrUnavailable):
			a.setMode(ModeOffline)
			a.printf("Server unavailable, try again later\n")
		case errors.Is(err, client.ErrUnauthorized):
			a.printf("Login unsuccessful: invalid credentials\n")
		default:
			a.printf("Login unsuccessful: %s\n", err.Error())
		}
		return err
	}

	a.setUser(email)
	a.setMode(ModeOnline)
	a.printf("Login successful\n")
	return nil
}

// Me asks the server who the current token belongs to.
func (a *App) Me(ctx context.Context) error {
	email, err := a.api.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	a.printf("Signed in as %s\n", email)
	return nil
}

// Logout drops the token. Tokens cannot be revoked server-side; an old
// token stays valid until it expires.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.setUser("")
	a.printf("Logged out\n")
	return nil
}

// report prints err for the user. An expired or rejected token also signs
// the user out locally.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.api.Logout()
		a.setUser("")
		a.printf("Session expired, please login again\n")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		a.printf("Server unavailable\n")
	case errors.Is(err, client.ErrNotFound):
		a.printf("Item not found\n")
	default:
		a.printf("Error: %s\n", err.Error())
	}
	return err
}
