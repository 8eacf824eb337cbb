package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/aglyzov/go-amt/internal/cmdlogger"
	"github.com/aglyzov/go-amt/internal/config"
	"github.com/aglyzov/go-amt/strtab"
)

// stdoutPath makes an output go to stdout.
const stdoutPath = "-"

func buildCommand(stdout io.Writer, handler *cmdlogger.Handler) *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:      "flat",
			Usage:     "write the flat image to this file (- for stdout)",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "split",
			Usage:     "write the split image to this file (- for stdout)",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "image format, one of: " + strings.Join(config.Formats(), ", "),
		},
		&cli.StringFlag{
			Name:  "package",
			Usage: "package name of the generated Go source",
		},
	)

	return &cli.Command{
		Name:  "build",
		Usage: "builds the flat and split images of a dictionary",
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return buildAction(cmd, stdout, handler)
		},
	}
}

func buildAction(cmd *cli.Command, stdout io.Writer, handler *cmdlogger.Handler) error {
	cfg, err := loadConfig(cmd, handler)
	if err != nil {
		return err
	}

	if cfg.Output.Flat == stdoutPath && cfg.Output.Split == stdoutPath {
		return errors.New("only one of the images can go to stdout")
	}

	if cfg.Output.Flat == stdoutPath || cfg.Output.Split == stdoutPath {
		handler.SendEverythingToStderr()
	}

	logger := slog.New(handler)

	tables, err := buildTables(cfg)
	if err != nil {
		return err
	}

	st := tables.Stats()

	logger.Info("built tables",
		"words", st.Words,
		"flat_bytes", st.FlatBytes,
		"split_bytes", st.SplitBytes,
	)

	for _, out := range []struct {
		kind string
		path string
	}{
		{"flat", cfg.Output.Flat},
		{"split", cfg.Output.Split},
	} {
		if out.path == "" {
			continue
		}

		if err := writeOutput(out.path, stdout, func(w io.Writer) error {
			return writeImage(w, tables, out.kind, cfg.Output)
		}); err != nil {
			return fmt.Errorf("failed to write %s image: %w", out.kind, err)
		}

		logger.Debug("wrote " + out.kind + " image to " + out.path)
	}

	return nil
}

func writeImage(w io.Writer, tables *strtab.Tables, kind string, out config.Output) error {
	var img interface {
		io.WriterTo
		Dump(w io.Writer) error
	} = tables.Flat

	if kind == "split" {
		img = tables.Split
	}

	switch out.Format {
	case config.FormatBin:
		_, err := img.WriteTo(w)
		return err
	case config.FormatGo:
		return writeGoSource(w, out.Package, tables, kind)
	default:
		return img.Dump(w)
	}
}

func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == stdoutPath {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
