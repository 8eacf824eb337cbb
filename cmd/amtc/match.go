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

	"github.com/aglyzov/go-amt/amt"
	"github.com/aglyzov/go-amt/internal/cmdlogger"
	"github.com/aglyzov/go-amt/strtab"
)

var errNoImage = errors.New("give exactly one of --flat or --split")

func imageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "flat",
			Usage:     "path to a binary flat image",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "split",
			Usage:     "path to a binary split image",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level, one of: " + strings.Join(cmdlogger.Levels(), ", "),
		},
	}
}

type image interface {
	strtab.Matcher
	Dump(w io.Writer) error
	Stats() amt.Stats
}

// loadImage reads the binary image named by --flat or --split.
func loadImage(cmd *cli.Command, handler *cmdlogger.Handler) (image, error) {
	if _, err := loadConfig(cmd, handler); err != nil {
		return nil, err
	}

	var (
		flatPath  = cmd.String("flat")
		splitPath = cmd.String("split")
		path      = flatPath
	)

	if (flatPath == "") == (splitPath == "") {
		return nil, errNoImage
	}

	if splitPath != "" {
		path = splitPath
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	slog.New(handler).Debug("loading image " + path)

	if flatPath != "" {
		return amt.ReadFlat(file)
	}

	return amt.ReadSplit(file)
}

func matchCommand(stdout io.Writer, handler *cmdlogger.Handler) *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "looks words up in a binary image",
		ArgsUsage: "word...",
		Flags:     imageFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			img, err := loadImage(cmd, handler)
			if err != nil {
				return err
			}

			for _, word := range cmd.Args().Slice() {
				if _, err := fmt.Fprintf(stdout, "%s: %v\n", word, img.Contains(word)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func dumpCommand(stdout io.Writer, handler *cmdlogger.Handler) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "prints a binary image as hex words",
		Flags: imageFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			img, err := loadImage(cmd, handler)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(stdout, img.Stats()); err != nil {
				return err
			}

			return img.Dump(stdout)
		},
	}
}
