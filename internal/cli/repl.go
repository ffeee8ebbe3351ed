package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam so REPL output can be silenced in tests.
var printlnFn = fmt.Println

// executor is the command surface the REPL dispatches to. The App satisfies
// it; tests substitute a stub.
type executor interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error

	List(ctx context.Context) error
	Mine(ctx context.Context) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
}

func printHelp(loggedIn bool) {
	printlnFn("Available commands:")
	printlnFn("  list    - browse the catalog")
	printlnFn("  show    - show one product by id")
	if loggedIn {
		printlnFn("  mine    - list products you sell")
		printlnFn("  add     - add a product")
		printlnFn("  update  - update a product")
		printlnFn("  delete  - delete a product")
		printlnFn("  profile - view or edit your profile")
		printlnFn("  logout  - sign out")
	} else {
		printlnFn("  login   - sign in")
		printlnFn("  signup  - create an account")
	}
	printlnFn("  help    - this message")
	printlnFn("  exit    - quit")
}

// runREPL reads commands line by line until exit or EOF. Command errors are
// reported and the loop continues; only context cancellation breaks it early.
func runREPL(ctx context.Context, exec executor, status func() string, scanner *bufio.Scanner) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Printf("%s> ", status())
		if !scanner.Scan() {
			return
		}

		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if cmd == "" {
			continue
		}

		var err error
		switch cmd {
		case "help":
			printHelp(exec.isLoggedIn())
		case "login":
			err = exec.Login(ctx)
		case "signup":
			err = exec.Signup(ctx)
		case "logout":
			err = requireLogin(exec, func() error { return exec.Logout(ctx) })
		case "profile":
			err = requireLogin(exec, func() error { return exec.Profile(ctx) })
		case "list":
			err = exec.List(ctx)
		case "mine":
			err = requireLogin(exec, func() error { return exec.Mine(ctx) })
		case "show":
			err = exec.Show(ctx)
		case "add":
			err = requireLogin(exec, func() error { return exec.Add(ctx) })
		case "update":
			err = requireLogin(exec, func() error { return exec.Update(ctx) })
		case "delete":
			err = requireLogin(exec, func() error { return exec.Delete(ctx) })
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func requireLogin(exec executor, fn func() error) error {
	if !exec.isLoggedIn() {
		printlnFn("Please login first.")
		return nil
	}
	return fn()
}
