// Command restamp is the CLI entrypoint for the Restamp media organizer.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the dedup-and-rename pipeline over one
// directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/restamp/internal/check"
	"github.com/backmassage/restamp/internal/collection"
	"github.com/backmassage/restamp/internal/config"
	"github.com/backmassage/restamp/internal/display"
	"github.com/backmassage/restamp/internal/logging"
	"github.com/backmassage/restamp/internal/pipeline"
	"github.com/backmassage/restamp/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "restamp: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "restamp: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restamp: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	fi, err := os.Stat(cfg.Dir)
	if err != nil {
		log.Error("Directory not found: %s", cfg.Dir)
		return 1
	}
	if !fi.IsDir() {
		log.Error("Not a directory: %s", cfg.Dir)
		return 1
	}

	// Fail fast if exiftool is unavailable. Restamp never renames a file
	// it could not probe, so a missing probe tool aborts the whole run.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		log.Error("Install exiftool and try again (or run with --check)")
		return 1
	}

	if cfg.DryRun {
		log.Warn("DRY RUN, no files will be deleted or renamed")
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so
	// the pipeline stops before the rename pass instead of mid-way.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping")
		cancel()
	}()

	// Phase 4: Run the pipeline.
	stats, err := pipeline.Run(ctx, &cfg, log, term.ConfirmStdin)
	if err != nil {
		if errors.Is(err, collection.ErrEmptyDirectory) {
			log.Warn("Nothing to do: %s is empty", cfg.Dir)
			return 0
		}
		log.Error("%v", err)
		return 1
	}

	log.Info("Done: %d file%s, %d duplicate%s deleted, %d renamed",
		stats.Total, display.Plural(stats.Total),
		stats.Deleted, display.Plural(stats.Deleted),
		stats.Renamed)
	return 0
}
