package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI() error
	List() error
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Show(id string) error
	Delete(ctx context.Context, id string) error
	TogglePin(ctx context.Context, id string) error
	Search(term string)
	Category(name string)
	Categories() error
	ToggleView()
}

// runREPL starts the read–eval–print loop for the NoteKeep CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands while signed out: help, register, login, exit.
// Commands while signed in: (l)ist, search [term], category [name],
// categories, add, edit <id>, show <id>, delete <id>, pin <id>, view,
// refresh, whoami, logout, exit.
//
// Note commands are gated on an authenticated session; while signed out the
// REPL tells the user to log in instead of dispatching. Errors returned by
// command handlers are ignored here; handlers report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search [term], category [name], categories, add, edit <id>, show <id>, delete <id>, pin <id>, view, refresh, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "l", "list", "search", "category", "categories", "add", "edit",
			"show", "delete", "rm", "pin", "view", "refresh", "whoami", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			dispatchNoteCommand(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// dispatchNoteCommand handles the commands only available once logged in.
func dispatchNoteCommand(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "l", "list":
		_ = a.List()

	case "search":
		// No argument clears the search term.
		a.Search(strings.Join(args, " "))

	case "category":
		name := "all"
		if len(args) > 0 {
			name = strings.Join(args, " ")
		}
		a.Category(name)

	case "categories":
		_ = a.Categories()

	case "add":
		_ = a.Add(ctx)

	case "edit":
		if len(args) == 0 {
			printlnFn("Usage: edit <id>")
			return
		}
		_ = a.Edit(ctx, args[0])

	case "show":
		if len(args) == 0 {
			printlnFn("Usage: show <id>")
			return
		}
		_ = a.Show(args[0])

	case "delete", "rm":
		if len(args) == 0 {
			printlnFn("Usage: delete <id>")
			return
		}
		_ = a.Delete(ctx, args[0])

	case "pin":
		if len(args) == 0 {
			printlnFn("Usage: pin <id>")
			return
		}
		_ = a.TogglePin(ctx, args[0])

	case "view":
		a.ToggleView()

	case "refresh":
		_ = a.Refresh(ctx)

	case "whoami":
		_ = a.WhoAmI()

	case "logout":
		_ = a.Logout(ctx)
	}
}
