// Command amtc compiles a word list into array mapped tries and queries the
// resulting images.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/aglyzov/go-amt/internal/cmdlogger"
)

var version = "dev"

type commandBuilder = func(stdout io.Writer, handler *cmdlogger.Handler) *cli.Command

func run(args []string, stdout, stderr io.Writer) int {
	// urfave/cli keeps its help flag in a global, which races when tests run
	// the app in parallel, so help is hidden under test
	hideHelp := testing.Testing() && os.Getenv("TEST_SHOW_HELP") != "true"

	var (
		handler = cmdlogger.New(stdout, stderr)
		logger  = slog.New(handler)
		cmds    []*cli.Command
	)

	for _, build := range []commandBuilder{
		buildCommand,
		statsCommand,
		matchCommand,
		dumpCommand,
	} {
		cmd := build(stdout, handler)
		cmd.HideHelp = hideHelp

		cmds = append(cmds, cmd)
	}

	app := &cli.Command{
		Name:      "amtc",
		Version:   version,
		Usage:     "compiles a word list into array mapped tries",
		Suggest:   true,
		HideHelp:  hideHelp,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands:  cmds,
	}

	// errors are reported below, not by cli.HandleExitCoder
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, _ error) {}

	if err := app.Run(context.Background(), args); err != nil {
		logger.Error(err.Error())
	}

	if handler.HasErrored() {
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
