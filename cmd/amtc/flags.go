package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/aglyzov/go-amt/internal/cmdlogger"
	"github.com/aglyzov/go-amt/internal/config"
	"github.com/aglyzov/go-amt/strtab"
)

var errNoDictionary = errors.New("no dictionary given, use --dict or set dictionary in the config file")

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "config",
			Aliases:   []string{"c"},
			Usage:     "path to an " + config.FileName + " file",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "dict",
			Aliases:   []string{"d"},
			Usage:     "path to the dictionary, one word per line",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level, one of: " + strings.Join(cmdlogger.Levels(), ", "),
		},
	}
}

// loadConfig reads the config file if one was given and applies the flags
// set on the command line on top of it.
func loadConfig(cmd *cli.Command, handler *cmdlogger.Handler) (config.Config, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		var err error

		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	for _, override := range []struct {
		flag  string
		field *string
	}{
		{"dict", &cfg.Dictionary},
		{"flat", &cfg.Output.Flat},
		{"split", &cfg.Output.Split},
		{"format", &cfg.Output.Format},
		{"package", &cfg.Output.Package},
		{"log-level", &cfg.Log.Level},
	} {
		if cmd.IsSet(override.flag) {
			*override.field = cmd.String(override.flag)
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level, err := cmdlogger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, err
	}

	handler.SetLevel(level)

	return cfg, nil
}

func buildTables(cfg config.Config) (*strtab.Tables, error) {
	if cfg.Dictionary == "" {
		return nil, errNoDictionary
	}

	file, err := os.Open(cfg.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	words, err := strtab.ReadDictionary(file)
	if err != nil {
		return nil, err
	}

	tables, err := strtab.Build(words)
	if err != nil {
		return nil, err
	}

	if err := tables.Verify(nil); err != nil {
		return nil, err
	}

	return tables, nil
}
