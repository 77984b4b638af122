package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"ticklist/internal/commands"
	"ticklist/internal/logging"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &commands.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "ticklist",
		Usage:     "Keep a prioritised to-do list in the terminal",
		UsageText: "ticklist [global options] [command [command options]]",
		Description: `ticklist keeps an ordered list of tasks with priorities and due dates.

Run 'ticklist' with no arguments to open the interactive list.
Run 'ticklist add TEXT' to add a task from the shell.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TICKLIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/ticklist.log)",
				Sources:     cli.EnvVars("TICKLIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TICKLIST_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TICKLIST_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The TUI owns the terminal, so logs always go to a file.
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFilePath())
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			if err := app.Open(flags); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			return commands.Shutdown(app, logCloser)
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)
	root = commands.Register(root, flags, app)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'ticklist --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
