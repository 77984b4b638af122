package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"ticklist/internal/notify"
	"ticklist/internal/task"
)

var errAmbiguousID = errors.New("id prefix matches more than one task")

// notifier prints store events and command messages to the root command's
// error writer so stdout stays parseable.
func notifier(c *cli.Command) notify.Printer {
	return notify.Printer{W: c.Root().ErrWriter}
}

// resolveID accepts a full task id or a unique prefix of one.
func resolveID(store *task.Store, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%w: task id is required", task.ErrValidation)
	}
	if _, ok := store.Get(arg); ok {
		return arg, nil
	}

	var match string
	for _, t := range store.Tasks() {
		if !strings.HasPrefix(t.ID, arg) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%q: %w", arg, errAmbiguousID)
		}
		match = t.ID
	}
	if match == "" {
		return "", fmt.Errorf("task %q: %w", arg, task.ErrNotFound)
	}
	return match, nil
}

// requireArgs joins the positional arguments, failing when there are none.
func requireArgs(c *cli.Command, what string) (string, error) {
	text := joinArgs(c.Args().Slice())
	if text == "" {
		return "", fmt.Errorf("%w: %s is required", task.ErrValidation, what)
	}
	return text, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func notifyListener(c *cli.Command) task.Listener {
	return notify.Listener(notifier(c))
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
