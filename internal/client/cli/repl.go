package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Total(ctx context.Context) error
	Photo(ctx context.Context) error
	Record(ctx context.Context) error
	Stop(ctx context.Context) error
	Play(ctx context.Context, path string) error
	Speak(ctx context.Context) error
	Settings(ctx context.Context) error
	Goal(ctx context.Context, value string) error
	Notify(ctx context.Context, args []string) error
	DarkMode(ctx context.Context, value string) error
	Diet(ctx context.Context, value string) error
}

const (
	helpLoggedOut = "Available commands: register, login, photo, record, stop, play, settings, goal, notify, darkmode, diet, exit"
	helpLoggedIn  = "Available commands: (l)ist, show <id>, add, delete <id>, total, photo, record, stop, play [path], speak, settings, goal <n>, notify on|off [hh:mm], darkmode on|off, diet <type>, logout, exit"
)

// mealCommands need an authenticated session.
var mealCommands = map[string]bool{
	"l": true, "list": true, "show": true, "add": true, "delete": true, "total": true, "speak": true,
}

// runREPL reads commands line by line and dispatches them to a. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		fmt.Printf("eb %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if mealCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "add":
			_ = a.Add(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "total":
			_ = a.Total(ctx)

		case "photo":
			_ = a.Photo(ctx)

		case "record":
			_ = a.Record(ctx)

		case "stop":
			_ = a.Stop(ctx)

		case "play":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			_ = a.Play(ctx, path)

		case "speak":
			_ = a.Speak(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "goal":
			if len(args) == 0 {
				printlnFn("Usage: goal <kcal>")
				continue
			}
			_ = a.Goal(ctx, args[0])

		case "notify":
			if len(args) == 0 {
				printlnFn("Usage: notify on|off [hh:mm]")
				continue
			}
			_ = a.Notify(ctx, args)

		case "darkmode":
			if len(args) == 0 {
				printlnFn("Usage: darkmode on|off")
				continue
			}
			_ = a.DarkMode(ctx, args[0])

		case "diet":
			if len(args) == 0 {
				printlnFn("Usage: diet <type>")
				continue
			}
			_ = a.Diet(ctx, strings.Join(args, " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
