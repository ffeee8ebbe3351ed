package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/selimv/vitrine/internal/models"
)

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	session, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Printf("Welcome back, %s!\n", session.User.Name)
	return nil
}

// Signup registers a new account and logs it in.
func (a *App) Signup(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	session, err := a.session.Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	fmt.Printf("Account created. Welcome, %s!\n", session.User.Name)
	return nil
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// Profile shows the current user and optionally edits name or email.
// Empty answers leave the corresponding field unchanged.
func (a *App) Profile(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		return nil
	}

	fmt.Printf("Name:  %s\nEmail: %s\n", session.User.Name, session.User.Email)

	var patch models.UserPatch
	if name, ok, err := GetOptionalText(a.reader, "New name", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.Name = &name
	}
	if email, ok, err := GetOptionalText(a.reader, "New email", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.Email = &email
	}

	if patch.Name == nil && patch.Email == nil {
		return nil
	}

	user, err := a.session.UpdateUser(ctx, patch)
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}
