package record

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// staticSource returns the same candidates for every file.
type staticSource struct {
	times []time.Time
	err   error
}

func (s staticSource) Candidates(context.Context, string) ([]time.Time, error) {
	return s.times, s.err
}

var saoPaulo = time.FixedZone("-03", -3*60*60)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func mustNew(t *testing.T, path string, src Source) *Record {
	t.Helper()
	r, err := New(context.Background(), path, saoPaulo, src)
	if err != nil {
		t.Fatalf("New(%s): %v", path, err)
	}
	return r
}

func TestNew_PicksEarliestCandidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", "x")

	src := staticSource{times: []time.Time{
		time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC),
		time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC),
	}}
	r := mustNew(t, path, src)

	want := time.Date(2008, 5, 30, 15, 56, 1, 0, saoPaulo)
	if !r.Taken().Equal(want) {
		t.Errorf("Taken = %v, want %v", r.Taken(), want)
	}
}

func TestNew_FallsBackToFileStatus(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "raw.bin", "x")

	before := time.Now().Add(-time.Minute)
	r := mustNew(t, path, staticSource{})
	after := time.Now().Add(time.Minute)

	// No structured candidates at all: the status-change time must win.
	if r.Taken().Before(before) || r.Taken().After(after) {
		t.Errorf("Taken = %v, want within [%v, %v]", r.Taken(), before, after)
	}
	if r.Taken().Location() != saoPaulo {
		t.Errorf("Taken location = %v, want %v", r.Taken().Location(), saoPaulo)
	}
}

func TestNew_PropagatesSourceError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", "x")

	sourceDown := errors.New("metadata source unavailable")
	_, err := New(context.Background(), path, saoPaulo, staticSource{err: sourceDown})
	if !errors.Is(err, sourceDown) {
		t.Errorf("err = %v, want %v", err, sourceDown)
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"), saoPaulo, staticSource{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFingerprint_IdenticalContent(t *testing.T) {
	dir := t.TempDir()
	a := mustNew(t, writeFile(t, dir, "a.jpg", "same bytes"), staticSource{})
	b := mustNew(t, writeFile(t, dir, "b.jpg", "same bytes"), staticSource{})
	c := mustNew(t, writeFile(t, dir, "c.jpg", "other bytes"), staticSource{})

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical content produced different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different content produced equal fingerprints")
	}
}

func TestTarget_SuffixedAndUniqueForms(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", "x")
	src := staticSource{times: []time.Time{time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC)}}
	r := mustNew(t, path, src)

	if want := filepath.Join(dir, "20080530 155601 -0300 1.jpg"); r.Target() != want {
		t.Errorf("initial target = %q, want %q", r.Target(), want)
	}

	r.IncrementTarget()
	if want := filepath.Join(dir, "20080530 155601 -0300 2.jpg"); r.Target() != want {
		t.Errorf("incremented target = %q, want %q", r.Target(), want)
	}
	if r.Sequence() != 2 {
		t.Errorf("Sequence = %d, want 2", r.Sequence())
	}

	r.MakeUnique()
	if want := filepath.Join(dir, "20080530 155601 -0300.jpg"); r.Target() != want {
		t.Errorf("unique target = %q, want %q", r.Target(), want)
	}
}

func TestSequenceTarget_NoStateChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", "x")
	src := staticSource{times: []time.Time{time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC)}}
	r := mustNew(t, path, src)

	before := r.Target()
	if want := filepath.Join(dir, "20080530 155601 -0300 2.jpg"); r.SequenceTarget(2) != want {
		t.Errorf("SequenceTarget(2) = %q, want %q", r.SequenceTarget(2), want)
	}
	if r.Target() != before || r.Sequence() != 1 {
		t.Error("SequenceTarget mutated the record")
	}
}

func TestRename_RequiresResolution(t *testing.T) {
	dir := t.TempDir()
	r := mustNew(t, writeFile(t, dir, "photo.jpg", "x"), staticSource{})

	if err := r.Rename(); !errors.Is(err, ErrNotResolved) {
		t.Fatalf("err = %v, want ErrNotResolved", err)
	}
	if r.State() != StateLoaded {
		t.Errorf("state = %v, want StateLoaded", r.State())
	}
}

func TestRename_MovesFileAndUpdatesPath(t *testing.T) {
	dir := t.TempDir()
	src := staticSource{times: []time.Time{time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC)}}
	r := mustNew(t, writeFile(t, dir, "photo.jpg", "x"), src)
	r.MakeUnique()
	r.MarkResolved()

	if err := r.Rename(); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	want := filepath.Join(dir, "20080530 155601 -0300.jpg")
	if r.Path() != want {
		t.Errorf("Path = %q, want %q", r.Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if r.State() != StateRenamed {
		t.Errorf("state = %v, want StateRenamed", r.State())
	}
}

func TestLess_TimestampThenBasename(t *testing.T) {
	dir := t.TempDir()
	early := staticSource{times: []time.Time{time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)}}
	late := staticSource{times: []time.Time{time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)}}

	a := mustNew(t, writeFile(t, dir, "b.jpg", "1"), early)
	b := mustNew(t, writeFile(t, dir, "a.jpg", "2"), late)
	c := mustNew(t, writeFile(t, dir, "c.jpg", "3"), early)

	if !a.Less(b) {
		t.Error("earlier timestamp should sort first regardless of name")
	}
	if !a.Less(c) || c.Less(a) {
		t.Error("equal timestamps should tie-break on basename")
	}
}
