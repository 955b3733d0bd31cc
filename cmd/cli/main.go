package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/genlogcfg/internal/app"
	"github.com/vk/genlogcfg/internal/cli"
	"github.com/vk/genlogcfg/internal/resolver"
)

// main is the entrypoint for the genlogcfg application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, inR io.Reader, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	genApp := app.NewApp(outW, errW, inR, appConfig, nil)
	if err := genApp.Run(context.Background()); err != nil {
		return exitError(err)
	}
	return nil
}

// exitError maps application failures to process exit codes.
func exitError(err error) error {
	switch {
	case errors.Is(err, resolver.ErrCyclicDependency):
		return &cli.ExitError{Code: cli.ExitCycle, Message: err.Error()}
	case errors.Is(err, app.ErrInvalidSettings):
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	default:
		return err
	}
}
