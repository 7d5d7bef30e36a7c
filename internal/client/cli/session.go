package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/vault"
	"github.com/fatih/color"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Unlock asks for the master password and activates the vault key. On a
// fresh installation the password is asked twice and becomes the master
// password.
func (a *App) Unlock(ctx context.Context) error {
	if a.isUnlocked() {
		fmt.Fprintln(a.out, "Vault is already unlocked.")
		return nil
	}

	state, err := a.session.Status(ctx)
	if err != nil {
		return err
	}

	pw, err := getPassword("Master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if state == vault.StateUninitialized {
		confirm, err := getPassword("Repeat master password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)
		if string(pw) != string(confirm) {
			return ErrPasswordMismatch
		}
	}

	created, err := a.session.Unlock(ctx, string(pw))
	if errors.Is(err, common.ErrInvalidSecret) {
		fmt.Fprintln(a.out, color.RedString("Invalid master password."))
		return nil
	}
	if err != nil {
		return err
	}

	a.markActive()
	if created {
		fmt.Fprintln(a.out, color.GreenString("Vault created and unlocked."))
	} else {
		fmt.Fprintln(a.out, color.GreenString("Vault unlocked."))
	}
	return nil
}

// Lock clears the key from memory.
func (a *App) Lock(ctx context.Context) error {
	a.session.Lock(ctx)
	fmt.Fprintln(a.out, "Vault locked.")
	return nil
}

// Status prints the lifecycle state and the active settings.
func (a *App) Status(ctx context.Context) error {
	state, err := a.session.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "State:     %s\n", state)
	fmt.Fprintf(a.out, "Profile:   %s\n", a.config.UserID)
	fmt.Fprintf(a.out, "Store:     %s\n", a.config.SecureStore)
	if a.config.AutoLockAfter > 0 {
		fmt.Fprintf(a.out, "Auto-lock: %s\n", a.config.AutoLockAfter)
	} else {
		fmt.Fprintln(a.out, "Auto-lock: off")
	}
	return nil
}
