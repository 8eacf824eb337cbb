// Package config loads the amtc configuration file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aglyzov/go-amt/internal/cmdlogger"
)

var FileName = "amtc.toml"

var ErrInvalidConfig = errors.New("invalid config")

// Output formats of the encoded images.
const (
	FormatHex = "hex"
	FormatGo  = "go"
	FormatBin = "bin"
)

var formats = []string{FormatHex, FormatGo, FormatBin}

func Formats() []string {
	return formats
}

type Config struct {
	Dictionary string `toml:"dictionary"`
	Output     Output `toml:"output"`
	Log        Log    `toml:"log"`

	// The path the config was loaded from, empty for the defaults
	LoadPath string `toml:"-"`
}

type Output struct {
	Flat    string `toml:"flat"`
	Split   string `toml:"split"`
	Format  string `toml:"format"`
	Package string `toml:"package"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output: Output{
			Format:  FormatHex,
			Package: "strtab",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load parses the TOML file at path on top of the defaults.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	if unknown := meta.Undecoded(); len(unknown) > 0 {
		keys := make([]string, 0, len(unknown))

		for _, key := range unknown {
			keys = append(keys, key.String())
		}

		return Config{}, fmt.Errorf("config: %w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	cfg.LoadPath = path

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Output.Format) {
		return fmt.Errorf("config: %w: output format %q - must be one of: %s",
			ErrInvalidConfig, c.Output.Format, strings.Join(formats, ", "))
	}

	if c.Output.Format == FormatGo && c.Output.Package == "" {
		return fmt.Errorf("config: %w: output package is required for the go format", ErrInvalidConfig)
	}

	if _, err := cmdlogger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w: %w", ErrInvalidConfig, err)
	}

	return nil
}
