package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (models.Credentials, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return models.Credentials{}, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	defer common.WipeByteArray(password)

	return models.Credentials{Email: email, Password: string(password)}, nil
}

// Register creates an account. The server logs the new user in, so the
// meal list is loaded right away.
func (a *App) Register(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, creds); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, "Registration successful!")
	return a.List(ctx)
}

// Login authenticates and loads the meal list.
func (a *App) Login(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, creds); err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.auth.Session().UserEmail)
	return a.List(ctx)
}

// Logout forgets the session. Preferences and captured media stay on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.fail(err)
	}

	a.pendingPhoto, a.pendingAudio = "", ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
