// Package pipeline orchestrates one run over a directory: load records,
// handle duplicates, resolve targets, and perform the rename pass.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/restamp/internal/collection"
	"github.com/backmassage/restamp/internal/config"
	"github.com/backmassage/restamp/internal/display"
	"github.com/backmassage/restamp/internal/logging"
	"github.com/backmassage/restamp/internal/probe"
	"github.com/backmassage/restamp/internal/record"
)

// ConfirmFunc asks the user a yes/no question and reports consent. The
// command wires this to a terminal prompt; tests pass a stub.
type ConfirmFunc func(question string) bool

// Run is the top-level entry point. It builds the real metadata prober for
// cfg's timezone and processes cfg.Dir end to end.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, confirm ConfirmFunc) (RunStats, error) {
	return run(ctx, cfg, log, confirm, probe.New(cfg.Location))
}

// run is Run with the timestamp source injected, so tests can substitute a
// canned source and skip the exiftool dependency.
func run(ctx context.Context, cfg *config.Config, log *logging.Logger, confirm ConfirmFunc, src record.Source) (RunStats, error) {
	var stats RunStats

	log.Info("Scanning %s", cfg.Dir)
	mgr, err := collection.New(ctx, cfg.Dir, cfg.Location, src, cfg.Workers)
	if err != nil {
		return stats, err
	}
	stats.Total = mgr.Len()
	log.Info("Loaded %d file%s", stats.Total, display.Plural(stats.Total))

	if err := handleDuplicates(cfg, log, mgr, confirm, &stats); err != nil {
		return stats, err
	}

	mgr.ResolveTargets()

	if ctx.Err() != nil {
		log.Warn("Interrupted")
		return stats, ctx.Err()
	}

	if cfg.DryRun {
		previewRenames(cfg, log, mgr)
		return stats, nil
	}

	return stats, renameAll(cfg, log, mgr, &stats)
}

// handleDuplicates finds byte-identical copies and, depending on flags and
// user consent, removes and deletes them. Removal from the collection
// always precedes deletion from disk. With --keep-duplicates, on refused
// consent, or in dry-run mode, files stay on disk; dry-run still drops
// them from the collection so the rename preview matches a real run.
func handleDuplicates(cfg *config.Config, log *logging.Logger, mgr *collection.Manager, confirm ConfirmFunc, stats *RunStats) error {
	dups := mgr.FindDuplicates()
	stats.Duplicates = len(dups)
	if len(dups) == 0 {
		log.Info("No duplicates found")
		return nil
	}

	log.Warn("Found %d duplicate file%s", len(dups), display.Plural(len(dups)))
	if cfg.ShowReport {
		fmt.Print(display.DuplicateReport(mgr.Dir(), mgr.Records(), dups))
	}

	if cfg.KeepDuplicates {
		log.Info("Keeping duplicates; they will be renamed like everything else")
		return nil
	}

	var reclaimable int64
	for _, d := range dups {
		if fi, err := os.Stat(d.Path()); err == nil {
			reclaimable += fi.Size()
		}
	}

	if cfg.DryRun {
		log.Success("[DRY] Would delete %d duplicate%s (%s)",
			len(dups), display.Plural(len(dups)), display.FormatBytes(reclaimable))
		mgr.RemoveDuplicates(dups)
		return nil
	}

	if !cfg.AssumeYes {
		question := fmt.Sprintf("Delete %d duplicate file%s (%s)?",
			len(dups), display.Plural(len(dups)), display.FormatBytes(reclaimable))
		if !confirm(question) {
			log.Info("Keeping duplicates; they will be renamed like everything else")
			return nil
		}
	}

	mgr.RemoveDuplicates(dups)
	if err := mgr.DeleteDuplicates(dups); err != nil {
		return err
	}
	stats.Deleted = len(dups)
	stats.BytesReclaimed = reclaimable
	log.Success("Deleted %d duplicate%s (%s reclaimed)",
		len(dups), display.Plural(len(dups)), display.FormatBytes(reclaimable))
	return nil
}

// previewRenames logs the planned moves without touching disk.
func previewRenames(cfg *config.Config, log *logging.Logger, mgr *collection.Manager) {
	for _, r := range mgr.Records() {
		from := filepath.Base(r.Path())
		to := filepath.Base(r.Target())
		if from == to {
			log.Debug(cfg.Verbose, "[DRY] %s already named correctly", from)
			continue
		}
		log.Success("[DRY] Would rename %s -> %s", from, to)
	}
}

// renameAll logs each planned move, then runs the single rename pass.
// There is no rollback: on a mid-pass failure the files renamed so far
// keep their new names.
func renameAll(cfg *config.Config, log *logging.Logger, mgr *collection.Manager, stats *RunStats) error {
	planned := mgr.Len()
	for _, r := range mgr.Records() {
		from := filepath.Base(r.Path())
		to := filepath.Base(r.Target())
		if from == to {
			log.Debug(cfg.Verbose, "%s already named correctly", from)
			continue
		}
		log.Rename("%s -> %s", from, to)
	}

	err := mgr.RenameAll()
	stats.Renamed = planned - mgr.Len()
	if err != nil {
		log.Error("Rename pass stopped after %d of %d file%s: %v",
			stats.Renamed, planned, display.Plural(planned), err)
		return err
	}
	log.Success("Renamed %d file%s", stats.Renamed, display.Plural(stats.Renamed))
	return nil
}
