package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Show(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	Save(ctx context.Context) error
	Login(ctx context.Context) error
	Senders(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Fetch(ctx context.Context) error
	List(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Hide(ctx context.Context, args []string) error
	Seed(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help             - show available commands
//	show             - print current settings, filter and result state
//	set <field> [v]  - update url, email, password or senders
//	save             - persist the settings
//	login            - exchange credentials for an access token
//	senders          - enumerate senders present in the inbox
//	search <q>       - filter the sender view
//	select <a,b,..>  - replace the selected-sender set
//	filter <name>    - choose the time window (today, yesterday, last7days,
//	                   thismonth, lastmonth)
//	fetch            - fetch messages for the current filters
//	list             - print the fetched messages
//	send <id>        - forward one message to the server
//	hide <id>        - dismiss one message without sending
//	seed <from> <body> [ts] - insert a message into a local inbox
//	exit | quit      - leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors before returning them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("smsrelay %s > ", statusFn()))
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
			printlnFn("Commands: show, set, save, login, senders, search, select, filter, fetch, list, send, hide, seed, exit")
		case "show":
			_ = a.Show(ctx)
		case "set":
			_ = a.Set(ctx, args)
		case "save":
			_ = a.Save(ctx)
		case "login":
			_ = a.Login(ctx)
		case "senders":
			_ = a.Senders(ctx)
		case "search":
			_ = a.Search(ctx, args)
		case "select":
			_ = a.Select(ctx, args)
		case "filter":
			_ = a.Filter(ctx, args)
		case "fetch":
			_ = a.Fetch(ctx)
		case "list":
			_ = a.List(ctx)
		case "send":
			_ = a.Send(ctx, args)
		case "hide":
			_ = a.Hide(ctx, args)
		case "seed":
			_ = a.Seed(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
