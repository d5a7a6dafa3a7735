package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/handiism/music-catalog/internal/config"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed loading .env file: %s\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Interrupted.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by every command.
type app struct {
	out      io.Writer
	settings *config.Settings
	logger   *slog.Logger
}

// newApp builds the command line application. Command output goes to out,
// logs go to errOut.
func newApp(out, errOut io.Writer) *cli.App {
	a := &app{out: out}

	cliApp := cli.NewApp()
	cliApp.Name = "catalog"
	cliApp.Usage = "Build and query a catalog of albums and songs."
	cliApp.Writer = out
	cliApp.ErrWriter = errOut
	cliApp.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Value:   config.DefaultPath(),
			Usage:   "path to the JSON settings file",
			EnvVars: []string{"CATALOG_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "db",
			Usage:   "snapshot database (overrides database_path from settings)",
			EnvVars: []string{"CATALOG_DB"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "show verbose output",
			EnvVars: []string{"CATALOG_VERBOSE"},
		},
	}
	cliApp.Before = func(cCtx *cli.Context) error {
		level := slog.LevelInfo
		if cCtx.Bool("verbose") {
			level = slog.LevelDebug
		}
		a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

		settings, err := config.Load(cCtx.String("config"))
		if err != nil {
			return fmt.Errorf("failed loading settings %s: %w", cCtx.String("config"), err)
		}
		if db := cCtx.String("db"); db != "" {
			settings.DatabasePath = db
		}
		a.settings = settings
		return nil
	}
	cliApp.Commands = a.commands()

	return cliApp
}
