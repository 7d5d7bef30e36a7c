package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	checkIdle(ctx context.Context)
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	Status(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	ListCategory(ctx context.Context, category string) error
	Find(ctx context.Context, term string) error
	Show(ctx context.Context, id string) error
	Copy(ctx context.Context, id string) error
	Passwd(ctx context.Context, id string) error
	Fav(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Migrate(ctx context.Context) error
}

const (
	helpLocked   = "Available commands: unlock, status, help, exit"
	helpUnlocked = "Available commands: add, (l)ist [-c <category>], find <term>, show <id>, copy <id>, passwd <id>, fav <id>, delete <id>, migrate, lock, status, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit".
//
// Before every command the idle timer is checked, so a vault left alone for
// too long is locked before the command runs. Entry commands are refused
// while the vault is locked. Errors returned by handlers are printed and the
// loop continues.
//
// The reader is shared with the command handlers, which prompt for their own
// input on it.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vk [%s]> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		a.checkIdle(ctx)

		var err error
		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn(helpUnlocked)
			} else {
				printlnFn(helpLocked)
			}

		case "unlock":
			err = a.Unlock(ctx)

		case "lock":
			err = a.Lock(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "add", "migrate":
			if !requireUnlocked(a) {
				continue
			}
			if cmd == "add" {
				err = a.Add(ctx)
			} else {
				err = a.Migrate(ctx)
			}

		case "l", "list":
			if len(args) != 0 && (len(args) != 2 || args[0] != "-c") {
				printlnFn(fmt.Sprintf("Usage: %s [-c <category>]", cmd))
				continue
			}
			if !requireUnlocked(a) {
				continue
			}
			if len(args) == 2 {
				err = a.ListCategory(ctx, args[1])
			} else {
				err = a.List(ctx)
			}

		case "find":
			if len(args) == 0 {
				printlnFn("Usage: find <term>")
				continue
			}
			if !requireUnlocked(a) {
				continue
			}
			err = a.Find(ctx, strings.Join(args, " "))

		case "show", "copy", "passwd", "fav", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			if !requireUnlocked(a) {
				continue
			}
			id := args[0]
			switch cmd {
			case "show":
				err = a.Show(ctx, id)
			case "copy":
				err = a.Copy(ctx, id)
			case "passwd":
				err = a.Passwd(ctx, id)
			case "fav":
				err = a.Fav(ctx, id)
			case "delete":
				err = a.Delete(ctx, id)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(color.RedString("Error:"), err)
		}
	}
}

func requireUnlocked(a execIface) bool {
	if a.isUnlocked() {
		return true
	}
	printlnFn(color.YellowString("Vault is locked.") + " Run 'unlock' first.")
	return false
}
