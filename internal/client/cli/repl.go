package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// mapScreen is the command surface of the root REPL. The real App
// satisfies it; tests can provide a lightweight stub.
type mapScreen interface {
	ShowMap(ctx context.Context) error
	Locate(ctx context.Context) error
	Move(ctx context.Context, args []string) error
	Compose(ctx context.Context) error
	Profile(ctx context.Context) error
}

// readCommand prints the prompt when asked to and returns the next line
// split into fields. io.EOF is returned once input is exhausted.
func readCommand(in *bufio.Reader, out io.Writer, prompt string, show bool) ([]string, error) {
	if show {
		fmt.Fprint(out, prompt)
	}
	line, err := in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return nil, err
	}
	return strings.Fields(line), nil
}

// runREPL is the map screen loop.
//
//	help               show available commands
//	map                show the map viewport
//	locate             re-center on the current position
//	move <lat> <lon>   move the simulated device; "move off" drops the fix
//	new                compose a new post
//	profile            show the profile and saved posts
//	exit | quit        leave the program
//
// Errors returned by handlers are ignored here; handlers report their own
// errors. The loop ends on "exit", on input EOF (returned as io.EOF) or when
// ctx is done.
func runREPL(ctx context.Context, s mapScreen, statusFn func() string, in *bufio.Reader, out io.Writer, prompt bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		parts, err := readCommand(in, out, fmt.Sprintf("world %s> ", statusFn()), prompt)
		if err != nil {
			return err
		}
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			fmt.Fprintln(out, "Available commands: map, locate, move <lat> <lon>, new, profile, exit")
		case "map":
			_ = s.ShowMap(ctx)
		case "locate":
			_ = s.Locate(ctx)
		case "move":
			_ = s.Move(ctx, parts[1:])
		case "new":
			if err := s.Compose(ctx); errors.Is(err, io.EOF) {
				return err
			}
		case "profile":
			_ = s.Profile(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return nil
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
