package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/world/internal/client/compose"
)

// Compose runs the compose screen:
//
//	capture        add a photo
//	remove <n>     remove the n-th photo (1-based)
//	text [words]   set the text; without words, read lines until a blank one
//	status         show the draft and its location
//	save           save the post and return to the map
//	cancel         discard the draft and return to the map
//
// io.EOF is returned when input ends inside the screen.
func (a *App) Compose(ctx context.Context) error {
	flow := a.newFlow(ctx)
	defer flow.Close()

	a.println("New post (type 'help' for commands)")
	a.printDraft(flow)

	for {
		parts, err := readCommand(a.in, a.out, "new post> ", a.prompt)
		if err != nil {
			return err
		}
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			a.println("Available commands: capture, remove <n>, text [words], status, save, cancel")
		case "capture":
			if err := flow.Capture(ctx); err != nil {
				a.println("Capture failed:", err)
				continue
			}
			a.printf("Photos: %d\n", flow.Images())
		case "remove":
			a.removeImage(flow, parts[1:])
		case "text":
			if err := a.setText(flow, parts[1:]); err != nil {
				return err
			}
		case "status":
			a.printDraft(flow)
		case "save":
			record, err := flow.Save(ctx)
			if err != nil {
				a.println("Save failed:", compose.UserMessage(err))
				continue
			}
			a.printf("Saved post %s\n", record.ID)
			return nil
		case "cancel", "back":
			a.println("Draft discarded")
			return nil
		default:
			a.println("Unknown command:", cmd)
		}
	}
}

func (a *App) removeImage(flow *compose.Flow, args []string) {
	if len(args) != 1 {
		a.println("Usage: remove <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		a.println("Usage: remove <n>")
		return
	}
	if err := flow.RemoveImage(n - 1); err != nil {
		a.printf("No photo %d\n", n)
		return
	}
	a.printf("Photos: %d\n", flow.Images())
}

func (a *App) setText(flow *compose.Flow, words []string) error {
	var text string
	if len(words) > 0 {
		text = strings.Join(words, " ")
	} else {
		var err error
		text, err = GetMultiline(a.in, "Enter some text…", a.out)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return flow.SetText(text)
}

func (a *App) printDraft(flow *compose.Flow) {
	a.printf("Photos: %d\n", flow.Images())
	if text := flow.Text(); text != "" {
		a.printf("Text: %s\n", text)
	} else {
		a.println("Text: (empty)")
	}
	a.printf("Location: %s\n", flow.LocationLabel())
	if !flow.CanSave() {
		a.printf("(%s)\n", compose.MessageNothingToSave)
	}
}
