// Package record represents one managed media file: its content
// fingerprint, its earliest known timestamp, and the target name computed
// from that timestamp. Records move through a small state machine
// (Loaded → Resolved → Renamed); the rename is refused until the owning
// collection has finished global target resolution.
package record

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Sentinel errors for contract violations and stat failures.
var (
	// ErrNotResolved means Rename was called before target resolution.
	// This is a caller bug, checked before any I/O happens.
	ErrNotResolved = errors.New("record renamed before target resolution")

	// ErrMetadataUnavailable means the file could not be stat'ed, so not
	// even the filesystem fallback timestamp exists.
	ErrMetadataUnavailable = errors.New("cannot read file status")
)

// State tracks a record through its lifecycle. Transitions only move
// forward: Loaded → Resolved (by the collection) → Renamed (by Rename).
type State int

const (
	StateLoaded State = iota
	StateResolved
	StateRenamed
)

// Source yields naive timestamp candidates for a file. The probe package
// provides the production implementation; tests substitute fakes.
type Source interface {
	Candidates(ctx context.Context, path string) ([]time.Time, error)
}

// Record is one file under management.
type Record struct {
	path        string
	fingerprint [sha1.Size]byte
	taken       time.Time // earliest candidate, localized once at load
	seq         int
	target      string
	state       State
}

// New loads the file at path: fingerprints its full content, resolves its
// timestamp from src plus the filesystem status-change fallback, and
// computes the initial target (sequence 1, suffixed form).
func New(ctx context.Context, path string, loc *time.Location, src Source) (*Record, error) {
	sum, err := fingerprintFile(path)
	if err != nil {
		return nil, fmt.Errorf("fingerprint %q: %w", path, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}

	candidates, err := src.Candidates(ctx, path)
	if err != nil {
		return nil, err
	}
	// The status-change time always participates, so every record obtains
	// a timestamp even when no structured metadata exists at all.
	candidates = append(candidates, wallClock(changeTime(fi).In(loc)))

	r := &Record{
		path:        path,
		fingerprint: sum,
		taken:       localize(earliest(candidates), loc),
		seq:         1,
		state:       StateLoaded,
	}
	r.target = r.targetFor(r.seq, false)
	return r, nil
}

// Path returns the current on-disk location. It changes exactly once, when
// Rename succeeds.
func (r *Record) Path() string { return r.path }

// Fingerprint returns the SHA-1 digest of the file content at load time.
func (r *Record) Fingerprint() [sha1.Size]byte { return r.fingerprint }

// Taken returns the resolved timestamp, localized with the configured zone.
func (r *Record) Taken() time.Time { return r.taken }

// Sequence returns the current disambiguation counter (starts at 1).
func (r *Record) Sequence() int { return r.seq }

// Target returns the candidate destination path.
func (r *Record) Target() string { return r.target }

// State returns the lifecycle state.
func (r *Record) State() State { return r.state }

// IncrementTarget bumps the sequence counter and recomputes the suffixed
// target. No I/O happens here.
func (r *Record) IncrementTarget() {
	r.seq++
	r.target = r.targetFor(r.seq, false)
}

// SequenceTarget returns the target this record would have at the given
// sequence, without changing any state. The collection uses it to test
// hypothetical sibling slots during resolution.
func (r *Record) SequenceTarget(seq int) string {
	return r.targetFor(seq, false)
}

// MakeUnique rewrites the target to the suffix-free form. Called by the
// collection for records that turned out to be the sole owner of their
// timestamp.
func (r *Record) MakeUnique() {
	r.target = r.targetFor(r.seq, true)
}

// MarkResolved transitions the record to Resolved, unlocking Rename.
// Only the owning collection calls this, after global resolution.
func (r *Record) MarkResolved() {
	r.state = StateResolved
}

// Rename moves the file from its current path to the resolved target and
// updates the path in place. Renaming an unresolved record is a contract
// violation and fails before touching the disk.
func (r *Record) Rename() error {
	if r.state != StateResolved {
		return fmt.Errorf("%w: %s", ErrNotResolved, r.path)
	}
	if err := os.Rename(r.path, r.target); err != nil {
		return fmt.Errorf("rename %q: %w", r.path, err)
	}
	r.path = r.target
	r.state = StateRenamed
	return nil
}

// Less orders records by (timestamp, original basename). The basename
// tie-break makes processing order deterministic across platforms whose
// directory listings differ.
func (r *Record) Less(other *Record) bool {
	if !r.taken.Equal(other.taken) {
		return r.taken.Before(other.taken)
	}
	return filepath.Base(r.path) < filepath.Base(other.path)
}

// stampLayout renders "YYYYMMDD HHMMSS ±HHMM" (24-hour, zero-padded,
// colon-free UTC offset).
const stampLayout = "20060102 150405 -0700"

// targetFor is the pure naming function: parent directory joined with the
// formatted timestamp, an optional " N" sequence suffix, and the source
// file's extension.
func (r *Record) targetFor(seq int, unique bool) string {
	stamp := r.taken.Format(stampLayout)
	ext := filepath.Ext(r.path)
	name := stamp + ext
	if !unique {
		name = fmt.Sprintf("%s %d%s", stamp, seq, ext)
	}
	return filepath.Join(filepath.Dir(r.path), name)
}

// fingerprintFile digests the full file content.
func fingerprintFile(path string) ([sha1.Size]byte, error) {
	var sum [sha1.Size]byte
	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// earliest returns the minimum of candidates. The oldest known timestamp
// best approximates true creation and is robust to later edits.
func earliest(candidates []time.Time) time.Time {
	oldest := candidates[0]
	for _, c := range candidates[1:] {
		if c.Before(oldest) {
			oldest = c
		}
	}
	return oldest
}

// wallClock strips the zone from a localized instant, keeping its reading,
// so absolute times compare consistently with naive parsed candidates.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// localize rebinds a naive candidate to the configured zone.
func localize(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
