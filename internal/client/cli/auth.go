package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/localauth/internal/client/validation"
	"github.com/dmitrijs2005/localauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// ErrInvalidInput is returned when a form fails validation; the message has
// already been shown to the user.
var ErrInvalidInput = errors.New("invalid input")

// Signup prompts for name, email and password, validates them and creates the
// account. On success the new account is signed in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	// Only the read buffer is wiped; the string handed to the service is an
	// immutable copy.
	defer common.WipeByteArray(pw)
	password := string(pw)

	if msg := validation.SignupForm.FirstError(map[string]string{
		"name": name, "email": email, "password": password,
	}); msg != "" {
		fmt.Fprintln(a.out, msg)
		return ErrInvalidInput
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.authService.Signup(ctx, name, email, password); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	u, _ := a.authService.CurrentUser()
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for email and password and signs the account in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	// Only the read buffer is wiped; the string handed to the service is an
	// immutable copy.
	defer common.WipeByteArray(pw)
	password := string(pw)

	if msg := validation.LoginForm.FirstError(map[string]string{
		"email": email, "password": password,
	}); msg != "" {
		fmt.Fprintln(a.out, msg)
		return ErrInvalidInput
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.authService.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	u, _ := a.authService.CurrentUser()
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

// Logout signs the current account out. The local session is gone even when
// the stored copy could not be removed; the user is warned in that case.
func (a *App) Logout(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	err := a.authService.Logout(ctx)
	if err != nil && !errors.Is(err, common.ErrPersistence) {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}
	if err != nil {
		fmt.Fprintln(a.out, "Logged out, but the saved session could not be removed.")
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile shows the signed-in account.
func (a *App) Profile(_ context.Context) error {
	u, ok := a.authService.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\nID:    %s\n", u.Name, u.Email, u.ID)
	return nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateAccount):
		return "An account with this email already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, common.ErrOperationInProgress):
		return "Please wait for the current request to finish"
	case errors.Is(err, common.ErrCorruptState):
		return "Stored account data is damaged"
	default:
		return "Something went wrong while accessing local storage. Please try again."
	}
}
