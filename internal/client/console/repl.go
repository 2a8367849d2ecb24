package console

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
	isBusy() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Stats(ctx context.Context) error
	List(ctx context.Context) error
	GoToPage(ctx context.Context, args []string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Search(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	Contact(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the admin console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// While a request is outstanding, every command except help/exit is rejected
// so no duplicate concurrent requests hit the same resource.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("leaddesk> %s ", statusFn()))
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
				printlnFn("Available commands: stats, (l)ist, page <n>, next, prev, search, filter <new|contacted|closed|all>, status <id> <new|contacted|closed>, show <id>, export, contact, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if a.isBusy() {
			printlnFn("A request is already in progress, please wait")
			continue
		}

		switch cmd {
		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "page":
			_ = a.GoToPage(ctx, args)

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "search":
			_ = a.Search(ctx)

		case "filter":
			_ = a.Filter(ctx, args)

		case "status":
			_ = a.SetStatus(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "export":
			_ = a.Export(ctx)

		case "contact":
			_ = a.Contact(ctx)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
