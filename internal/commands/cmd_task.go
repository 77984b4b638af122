package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"ticklist/internal/notify"
)

// TaskCmd groups the commands that act on a single task by id.
type TaskCmd struct {
	flags *Flags
	app   *App
}

// NewTaskCmd creates the done, edit and rm commands
func NewTaskCmd(flags *Flags, app *App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds the single-task commands to the application
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "done",
			Aliases:   []string{"toggle"},
			Usage:     "Toggle a task between completed and active",
			UsageText: "ticklist done ID",
			Description: `Flips the completion flag of the task. Running it twice restores the task.

ID may be a unique prefix of the task id as shown by 'ticklist list'.`,
			Action: cmd.runToggle,
		},
		&cli.Command{
			Name:      "edit",
			Usage:     "Replace the text of a task",
			UsageText: "ticklist edit ID TEXT...",
			Description: `Replaces the text of the task. Text that is empty after trimming is
discarded and the task is left unchanged.`,
			Action: cmd.runEdit,
		},
		&cli.Command{
			Name:      "rm",
			Aliases:   []string{"delete"},
			Usage:     "Delete a task",
			UsageText: "ticklist rm ID",
			Action:    cmd.runDelete,
		},
	)

	return app
}

func (cmd *TaskCmd) runToggle(_ context.Context, c *cli.Command) error {
	id, err := resolveID(cmd.app.Tasks, c.Args().First())
	if err != nil {
		return err
	}
	cmd.app.Tasks.Subscribe(notifyListener(c))
	_, err = cmd.app.Tasks.Toggle(id)
	return err
}

func (cmd *TaskCmd) runEdit(_ context.Context, c *cli.Command) error {
	id, err := resolveID(cmd.app.Tasks, c.Args().First())
	if err != nil {
		return err
	}
	text := ""
	if c.Args().Len() > 1 {
		text = joinArgs(c.Args().Tail())
	}
	cmd.app.Tasks.Subscribe(notifyListener(c))
	changed, err := cmd.app.Tasks.UpdateText(id, text)
	if err != nil {
		return err
	}
	if !changed {
		notifier(c).Notify(notify.LevelInfo, "Empty text, task left unchanged")
	}
	return nil
}

func (cmd *TaskCmd) runDelete(_ context.Context, c *cli.Command) error {
	id, err := resolveID(cmd.app.Tasks, c.Args().First())
	if err != nil {
		return err
	}
	cmd.app.Tasks.Subscribe(notifyListener(c))
	return cmd.app.Tasks.Delete(id)
}
