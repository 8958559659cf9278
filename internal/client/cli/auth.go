package cli

import (
	"context"
	"fmt"

	"github.com/aleksivanovs/notekeep/internal/client/notes"
	"github.com/aleksivanovs/notekeep/internal/client/validation"
)

// getSimpleText, getTextDefault, getPassword and getMultiline are
// indirections used to facilitate testing. They point to interactive input
// helpers and can be swapped in tests.
var (
	getSimpleText  = GetSimpleText
	getTextDefault = GetTextDefault
	getPassword    = GetPassword
	getMultiline   = GetMultiline
)

// Login prompts for credentials and tries to authenticate. On success the
// note collection is fetched immediately so 'list' works right away. The
// failure message comes from the session store; it is printed, never raised.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, email, password)
	if !res.Success {
		fmt.Fprintln(a.out, res.Message)
		return nil
	}

	fmt.Fprintln(a.out, "Login successful")
	if err := a.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not fetch your notes; try 'refresh'.")
	}
	return nil
}

// Register prompts for the registration form, runs the local checks before
// any network call, and creates the account. A successful registration logs
// the user in directly, exactly like login.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Password strength: %d%%\n", validation.PasswordStrength(password))

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	if v := validation.ValidateRegistration(username, email, password, confirm); v.HasErrors() {
		fmt.Fprintln(a.out, v.FirstMessage())
		return nil
	}

	res := a.session.Register(ctx, username, email, password)
	if !res.Success {
		fmt.Fprintln(a.out, res.Message)
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", username)
	return a.Refresh(ctx)
}

// Logout ends the session and performs the full reset: the cached notes and
// the filter state are dropped so nothing leaks into the next session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.notes.Reset()
	a.searchTerm = ""
	a.selectedCategory = notes.CategoryAll
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the authenticated identity.
func (a *App) WhoAmI() error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", identity.Username, identity.Email)
	return nil
}
