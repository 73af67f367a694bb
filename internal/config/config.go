// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Dir is the managed directory (set from the positional arg).
	Dir string

	// Timezone is an IANA zone name used to localize resolved timestamps.
	// Empty means the system zone. Location is derived by [Config.Validate]
	// and threaded explicitly through construction; there is no
	// process-wide timezone state.
	Timezone string
	Location *time.Location

	// Behavior flags.
	DryRun         bool // Preview duplicates and targets; touch nothing.
	AssumeYes      bool // Skip the deletion prompt, answering yes.
	KeepDuplicates bool // Never delete duplicates; rename them like the rest.
	Workers        int  // Concurrent probe calls during load. Default: 4.

	// Display and logging.
	Verbose    bool
	ShowReport bool      // Default: true. Print the duplicate tree report.
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied, used as the
// base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Workers:    4,
		ShowReport: true,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and range fields, resolves the timezone into
// Location, and (outside CheckOnly mode) requires the directory argument.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 1 || c.Workers > 32 {
		return fmt.Errorf("workers must be between 1 and 32 (got %d)", c.Workers)
	}

	if c.Timezone == "" {
		c.Location = time.Local
	} else {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		c.Location = loc
	}

	if c.CheckOnly {
		return nil
	}
	if c.Dir == "" {
		return errors.New("need exactly one directory argument")
	}
	return nil
}
