package config

// This file implements CLI flag parsing and help text. Boolean overrides
// (e.g. --no-report) are applied after Parse so Config defaults hold
// unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X github.com/backmassage/restamp/internal/config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing arg).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("restamp", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var overrides boolOverrides

	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &overrides)
	defineUtilityFlags(fs, cfg, &overrides)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyOverrides(cfg, &overrides)

	if overrides.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if overrides.showVersion {
		fmt.Fprintln(os.Stdout, "restamp v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// boolOverrides holds flags applied after Parse. These either invert a
// default (noReport -> ShowReport=false) or trigger exit (help, version).
type boolOverrides struct {
	noReport    bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineBehaviorFlags registers dry-run, yes, keep-duplicates, workers,
// timezone.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; delete and rename nothing")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.AssumeYes, "yes", false, "Delete duplicates without prompting")
	fs.BoolVar(&cfg.AssumeYes, "y", false, "Same as --yes")
	fs.BoolVar(&cfg.KeepDuplicates, "keep-duplicates", false, "Never delete duplicates; rename them too")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent metadata probes during load")
	fs.StringVar(&cfg.Timezone, "timezone", "", "IANA zone for timestamps (default: system zone)")
}

// defineDisplayFlags registers report, color, verbose, log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, o *boolOverrides) {
	fs.BoolVar(&o.noReport, "no-report", false, "Do not print the duplicate tree report")
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, o *boolOverrides) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&o.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&o.showHelp, "h", false, "Same as --help")
}

// applyOverrides copies override flag values into cfg.
func applyOverrides(cfg *Config, o *boolOverrides) {
	if o.noReport {
		cfg.ShowReport = false
	}
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets Dir from the single positional arg when not in
// CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one directory argument")
	}
	cfg.Dir = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Restamp v" + version + " - timestamp-based media dedup and rename"},
		{"", ""},
		{"  restamp [OPTIONS] <dir>", ""},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; delete and rename nothing"},
		{"  -y, --yes", "Delete duplicates without prompting"},
		{"  --keep-duplicates", "Never delete duplicates; rename them too"},
		{"  --workers <n>", "Concurrent metadata probes (default: 4)"},
		{"  --timezone <zone>", "IANA zone for timestamps (default: system)"},
		{"", ""},
		{"Display", ""},
		{"  --no-report", "Hide the duplicate tree report"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (exiftool, timezone)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
