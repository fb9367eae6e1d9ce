package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	prompt(ctx context.Context) string
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a.
//
//	Anyone:
//	  - help           show available commands
//	  - login          open the admin session
//	  - status         show whether the admin session is open
//	  - list | l       list gallery images, newest first
//	  - exit | quit    leave the console
//
//	Admin only:
//	  - add            add an image from a file path or URL
//	  - delete <id>    delete an image and its stored file
//	  - passwd         change the admin password
//	  - logout         close the admin session (always allowed)
//
// Handler errors are printed and the loop continues. It returns on end of
// input or exit.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprint(w, a.prompt(ctx))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if adminOnly(cmd) && !a.isLoggedIn(ctx) {
			fmt.Fprintln(w, "Please login first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(w, "Available commands: (l)ist, add, delete <id>, passwd, status, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: (l)ist, login, status, exit")
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "add":
			cmdErr = a.Add(ctx)
		case "delete":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])
		case "passwd":
			cmdErr = a.ChangePassword(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}

		if err != nil {
			return
		}
	}
}

func adminOnly(cmd string) bool {
	switch cmd {
	case "add", "delete", "passwd":
		return true
	default:
		return false
	}
}
