package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/fatih/color"
)

// listLimit caps how many entries list prints.
const listLimit = 200

// test seams
var (
	getSimpleText  = GetSimpleText
	getPassword    = GetPassword
	getYesNo       = GetYesNo
	writeClipboard = clipboard.WriteAll
)

// Add prompts for a new entry and stores it.
func (a *App) Add(ctx context.Context) error {
	service, err := getSimpleText(a.reader, "Service name", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	category, err := getSimpleText(a.reader, "Category (optional)", a.out)
	if err != nil {
		return err
	}
	fav, err := getYesNo(a.reader, "Favorite?", a.out)
	if err != nil {
		return err
	}

	e, err := a.entries.Add(ctx, models.NewEntry{
		ServiceName:     service,
		ServiceUsername: username,
		Password:        string(pw),
		CategoryID:      category,
		IsFavorite:      fav,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s\n", color.GreenString("Entry added:"), e.ID)
	return nil
}

// List prints the user's entries without their passwords.
func (a *App) List(ctx context.Context) error {
	items, err := a.entries.List(ctx, listLimit)
	if err != nil {
		return err
	}
	return a.printEntries(items, "No entries.")
}

// ListCategory prints the entries filed under category.
func (a *App) ListCategory(ctx context.Context, category string) error {
	items, err := a.entries.ListByCategory(ctx, category)
	if err != nil {
		return err
	}
	return a.printEntries(items, fmt.Sprintf("No entries in category %q.", category))
}

// Find prints the entries whose service name or username contains term.
func (a *App) Find(ctx context.Context, term string) error {
	items, err := a.entries.Search(ctx, term, listLimit)
	if err != nil {
		return err
	}
	return a.printEntries(items, fmt.Sprintf("No entries match %q.", term))
}

func (a *App) printEntries(items []models.EntryView, empty string) error {
	if len(items) == 0 {
		fmt.Fprintln(a.out, empty)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tUSERNAME\tCATEGORY\tFAV\tCREATED")
	for _, it := range items {
		name := it.ServiceName
		if it.Unreadable {
			name += " " + color.RedString("(unreadable)")
		}
		fav := ""
		if it.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, name, it.ServiceUsername, it.CategoryID, fav, it.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// Show prints one entry including its password.
func (a *App) Show(ctx context.Context, id string) error {
	v, err := a.entries.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:       %s\n", v.ID)
	fmt.Fprintf(a.out, "Service:  %s\n", v.ServiceName)
	fmt.Fprintf(a.out, "Username: %s\n", v.ServiceUsername)
	fmt.Fprintf(a.out, "Password: %s\n", v.Password)
	if v.CategoryID != "" {
		fmt.Fprintf(a.out, "Category: %s\n", v.CategoryID)
	}
	fmt.Fprintf(a.out, "Favorite: %t\n", v.IsFavorite)
	fmt.Fprintf(a.out, "Created:  %s\n", v.CreatedAt.Local().Format(time.DateTime))
	return nil
}

// Copy puts an entry's password on the system clipboard.
func (a *App) Copy(ctx context.Context, id string) error {
	v, err := a.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := writeClipboard(v.Password); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	fmt.Fprintf(a.out, "Password for %s copied to clipboard.\n", v.ServiceName)
	return nil
}

// Passwd replaces an entry's password.
func (a *App) Passwd(ctx context.Context, id string) error {
	pw, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.entries.UpdatePassword(ctx, id, string(pw)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated.")
	return nil
}

// Fav toggles the favorite flag.
func (a *App) Fav(ctx context.Context, id string) error {
	fav, err := a.entries.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	if fav {
		fmt.Fprintln(a.out, "Marked as favorite.")
	} else {
		fmt.Fprintln(a.out, "Removed from favorites.")
	}
	return nil
}

// Delete removes an entry after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := getYesNo(a.reader, fmt.Sprintf("Delete entry %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.entries.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, color.GreenString("Entry deleted."))
	return nil
}

// Migrate encrypts entries that were stored as plaintext.
func (a *App) Migrate(ctx context.Context) error {
	n, err := a.entries.MigrateLegacy(ctx)
	if n > 0 {
		fmt.Fprintf(a.out, "%d entries encrypted.\n", n)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(a.out, "Nothing to migrate.")
	}
	return nil
}
