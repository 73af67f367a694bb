// Package collection manages the records of one flat directory through the
// full dedup-and-rename lifecycle: load, duplicate detection, duplicate
// removal and deletion, global target resolution, and the single allowed
// rename pass.
package collection

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/backmassage/restamp/internal/record"
)

// Sentinel errors. All of them are unrecoverable at the point raised.
var (
	// ErrEmptyDirectory means there were no plain files to manage.
	ErrEmptyDirectory = errors.New("directory contains no files to manage")

	// ErrDuplicateNotRemoved means DeleteDuplicates was called for a record
	// still present in the collection. Removal must come first so the
	// in-memory list never claims a file that is about to vanish from disk.
	ErrDuplicateNotRemoved = errors.New("duplicate still managed; remove it before deleting")

	// ErrDepleted means a second rename pass was attempted after a
	// successful one. A manager is good for exactly one pass.
	ErrDepleted = errors.New("collection already renamed")
)

// defaultWorkers bounds concurrent timestamp probing during load. Probing
// shells out once per file, so this is where all the latency lives.
const defaultWorkers = 4

// Manager owns the records of a single directory. It is not safe for
// concurrent use; the whole pipeline is sequential by design.
type Manager struct {
	dir      string
	records  []*record.Record
	depleted bool
}

// New lists the plain files of dir (non-recursive, subdirectories are
// skipped), loads one record per file, and sorts them by (timestamp,
// original basename). Probing runs on a small worker pool; every result is
// attached to its slot before the sort, so ordering stays deterministic.
func New(ctx context.Context, dir string, loc *time.Location, src record.Source, workers int) (*Manager, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, dir)
	}

	records, err := loadAll(ctx, paths, loc, src, workers)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Less(records[j]) })
	return &Manager{dir: dir, records: records}, nil
}

// loadAll constructs records with up to workers concurrent probes. Results
// land in the slot of their input path; the first error in path order wins.
func loadAll(ctx context.Context, paths []string, loc *time.Location, src record.Source, workers int) ([]*record.Record, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	records := make([]*record.Record, len(paths))
	errs := make([]error, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i], errs[i] = record.New(ctx, paths[i], loc, src)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Dir returns the managed directory.
func (m *Manager) Dir() string { return m.dir }

// Len returns the number of records currently under management.
func (m *Manager) Len() int { return len(m.records) }

// Records returns the managed records in their total order. The returned
// slice is a copy; the records themselves are shared.
func (m *Manager) Records() []*record.Record {
	out := make([]*record.Record, len(m.records))
	copy(out, m.records)
	return out
}

// FindDuplicates scans records in order and returns every record whose
// fingerprint was already seen. The first-seen record of each fingerprint
// is canonical and never listed. Scan order is the sort order fixed at
// construction, so the result is deterministic.
func (m *Manager) FindDuplicates() []*record.Record {
	seen := make(map[[sha1.Size]byte]bool, len(m.records))
	var duplicates []*record.Record
	for _, r := range m.records {
		if seen[r.Fingerprint()] {
			duplicates = append(duplicates, r)
			continue
		}
		seen[r.Fingerprint()] = true
	}
	return duplicates
}

// RemoveDuplicates drops the given records from the collection by identity.
// Pure in-memory operation; the files stay on disk until DeleteDuplicates.
func (m *Manager) RemoveDuplicates(duplicates []*record.Record) {
	drop := make(map[*record.Record]bool, len(duplicates))
	for _, d := range duplicates {
		drop[d] = true
	}
	kept := m.records[:0]
	for _, r := range m.records {
		if !drop[r] {
			kept = append(kept, r)
		}
	}
	m.records = kept
}

// DeleteDuplicates physically deletes the given records' files. Every
// record must have been removed from the collection first; finding one
// still managed is a sequencing bug in the caller and aborts immediately.
func (m *Manager) DeleteDuplicates(duplicates []*record.Record) error {
	for _, d := range duplicates {
		if m.contains(d) {
			return fmt.Errorf("%w: %s", ErrDuplicateNotRemoved, d.Path())
		}
		if err := os.Remove(d.Path()); err != nil {
			return fmt.Errorf("delete duplicate: %w", err)
		}
	}
	return nil
}

func (m *Manager) contains(target *record.Record) bool {
	for _, r := range m.records {
		if r == target {
			return true
		}
	}
	return false
}

// ResolveTargets assigns a collision-free target to every record, in two
// phases over the total order:
//
//  1. Greedy assignment: while a record's target is already claimed, bump
//     its sequence. Records sharing a timestamp receive " 1", " 2", …
//     suffixes in order.
//  2. Singleton unsuffixing: a record that kept sequence 1 and whose
//     hypothetical slot-2 sibling is unclaimed is the sole owner of its
//     timestamp, so its target is rewritten to the suffix-free form.
//
// Afterwards all targets are pairwise distinct and every record is
// Resolved. Calling this again without intervening renames reproduces the
// same assignment.
func (m *Manager) ResolveTargets() {
	assigned := make(map[string]bool, len(m.records))
	for _, r := range m.records {
		for assigned[r.Target()] {
			r.IncrementTarget()
		}
		assigned[r.Target()] = true
	}

	for _, r := range m.records {
		if r.Sequence() != 1 {
			continue
		}
		if assigned[r.SequenceTarget(2)] {
			continue
		}
		delete(assigned, r.Target())
		r.MakeUnique()
		assigned[r.Target()] = true
	}

	for _, r := range m.records {
		r.MarkResolved()
	}
}

// RenameAll renames every remaining record in order, emptying the
// collection, then marks the manager depleted. A depleted manager refuses
// further passes. There is no rollback: if the k-th rename fails, earlier
// records keep their new names and the rest stay untouched.
func (m *Manager) RenameAll() error {
	if m.depleted {
		return fmt.Errorf("%w: %s", ErrDepleted, m.dir)
	}
	for len(m.records) > 0 {
		if err := m.records[0].Rename(); err != nil {
			return err
		}
		m.records = m.records[1:]
	}
	m.depleted = true
	return nil
}

// Depleted reports whether the one allowed rename pass has completed.
func (m *Manager) Depleted() bool { return m.depleted }
