package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kc31/smsrelay/internal/models"
	"github.com/kc31/smsrelay/internal/services"
)

// Show prints the current settings, filter and result state.
func (a *App) Show(ctx context.Context) error {
	url, email, password, senderList := a.session.Settings()
	masked := ""
	if password != "" {
		masked = strings.Repeat("*", len(password))
	}

	printlnFn("Server URL: " + url)
	printlnFn("Email:      " + email)
	printlnFn("Password:   " + masked)
	printlnFn("Senders:    " + senderList)
	printlnFn("Filter:     " + string(a.session.TimeFilter()))

	res := a.session.Result()
	printlnFn(fmt.Sprintf("State:      %s %s", res.Kind, res.Message))
	return nil
}

// Set updates one settings field. The password is always prompted without
// echo; other fields take the value from the command line or, when none is
// given, prompt for it.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: set url|email|password|senders [value]")
		return nil
	}

	field := args[0]
	value := strings.Join(args[1:], " ")

	switch field {
	case "url":
		v, err := a.valueOrPrompt(value, "Enter server URL")
		if err != nil {
			printlnFn("error:", err.Error())
			return err
		}
		a.session.SetServerURL(v)
	case "email":
		v, err := a.valueOrPrompt(value, "Enter email")
		if err != nil {
			printlnFn("error:", err.Error())
			return err
		}
		a.session.SetEmail(v)
	case "password":
		pw, err := GetPassword(os.Stdout)
		if err != nil {
			printlnFn("error:", err.Error())
			return err
		}
		a.session.SetPassword(pw)
	case "senders":
		v, err := a.valueOrPrompt(value, "Enter comma-separated senders")
		if err != nil {
			printlnFn("error:", err.Error())
			return err
		}
		a.session.SetSenderList(v)
	default:
		printlnFn("Unknown field:", field)
	}
	return nil
}

// valueOrPrompt returns value when the user supplied one on the command line
// and prompts for it otherwise.
func (a *App) valueOrPrompt(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	return GetSimpleText(a.reader, prompt, os.Stdout)
}

// Save persists the current settings.
func (a *App) Save(ctx context.Context) error {
	res := a.session.SaveSettings(ctx)
	printlnFn(res.Message)
	return nil
}

// Login exchanges the configured credentials for an access token.
func (a *App) Login(ctx context.Context) error {
	res := a.session.FetchToken(ctx)
	printlnFn(res.Message)
	return nil
}

// Senders enumerates the distinct inbox senders and prints the current view.
func (a *App) Senders(ctx context.Context) error {
	res := a.session.FetchSenders(ctx)
	printlnFn(res.Message)
	if res.Kind == services.ResultSuccess {
		a.printSenderView()
	}
	return nil
}

// Search updates the sender search query and reprints the view.
func (a *App) Search(ctx context.Context, args []string) error {
	a.session.SetSearchQuery(strings.Join(args, " "))
	a.printSenderView()
	return nil
}

// Select replaces the selected-sender set from a comma-joined argument.
func (a *App) Select(ctx context.Context, args []string) error {
	selected := make(map[string]struct{})
	for _, token := range strings.Split(strings.Join(args, " "), ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			selected[token] = struct{}{}
		}
	}
	a.session.SetSelectedSenders(selected)
	a.printSenderView()
	return nil
}

func (a *App) printSenderView() {
	selected := a.session.SelectedSenders()
	for _, sender := range a.session.FilteredSenders() {
		mark := "[ ]"
		if _, ok := selected[sender]; ok {
			mark = "[x]"
		}
		printlnFn(mark + " " + sender)
	}
}

// Filter chooses the time window for the next fetch.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: filter today|yesterday|last7days|thismonth|lastmonth")
		return nil
	}
	filter, ok := models.ParseTimeFilter(args[0])
	if !ok {
		printlnFn("Unknown filter:", args[0])
		return nil
	}
	a.session.SetTimeFilter(filter)
	printlnFn("Filter set to " + args[0])
	return nil
}

// Fetch retrieves messages for the current sender and time filters.
func (a *App) Fetch(ctx context.Context) error {
	res := a.session.FetchMessages(ctx)
	printlnFn(res.Message)
	return nil
}

// List prints the fetched messages, most recent first.
func (a *App) List(ctx context.Context) error {
	messages := a.session.Messages()
	if len(messages) == 0 {
		printlnFn("No messages. Run 'fetch' first.")
		return nil
	}
	for _, m := range messages {
		printlnFn(fmt.Sprintf("%s  %s  %s", m.ID, services.FormatTimestamp(m.Timestamp), m.Sender))
		printlnFn("    " + m.Body)
	}
	return nil
}

// Send forwards one message to the server.
func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: send <id>")
		return nil
	}
	res := a.session.SendMessage(ctx, args[0])
	printlnFn(res.Message)
	return nil
}

// Hide dismisses one message without sending it anywhere.
func (a *App) Hide(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: hide <id>")
		return nil
	}
	res := a.session.HideMessage(ctx, args[0])
	printlnFn(res.Message)
	return nil
}

// Seed inserts a message into the inbox database. The timestamp argument is
// epoch milliseconds and defaults to now.
func (a *App) Seed(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: seed <from> <body> [epoch-ms]")
		return nil
	}

	ts := time.Now().UnixMilli()
	if len(args) >= 3 {
		parsed, err := strconv.ParseInt(args[len(args)-1], 10, 64)
		if err == nil {
			ts = parsed
			args = args[:len(args)-1]
		}
	}

	id, err := a.store.Insert(ctx, models.Message{
		Sender:    args[0],
		Body:      strings.Join(args[1:], " "),
		Timestamp: ts,
	})
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Inserted " + id)
	return nil
}
