package display

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backmassage/restamp/internal/record"
)

type staticSource struct{ at time.Time }

func (s staticSource) Candidates(context.Context, string) ([]time.Time, error) {
	return []time.Time{s.at}, nil
}

func mustRecord(t *testing.T, dir, name, content string) *record.Record {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	src := staticSource{at: time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC)}
	r, err := record.New(context.Background(), path, time.UTC, src)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestDuplicateReport_Empty(t *testing.T) {
	if got := DuplicateReport("/photos", nil, nil); got != "" {
		t.Errorf("report for no duplicates = %q, want empty", got)
	}
}

func TestDuplicateReport_GroupsUnderCanonical(t *testing.T) {
	dir := t.TempDir()
	a := mustRecord(t, dir, "a.jpg", "same bytes")
	b := mustRecord(t, dir, "b.jpg", "same bytes")
	c := mustRecord(t, dir, "c.jpg", "same bytes")
	lone := mustRecord(t, dir, "lone.jpg", "different bytes")

	records := []*record.Record{a, b, c, lone}
	dups := []*record.Record{b, c}

	out := DuplicateReport(dir, records, dups)
	if !strings.Contains(out, "a.jpg (kept)") {
		t.Errorf("canonical a.jpg not marked kept:\n%s", out)
	}
	if !strings.Contains(out, "b.jpg") || !strings.Contains(out, "c.jpg") {
		t.Errorf("duplicates missing from report:\n%s", out)
	}
	if strings.Contains(out, "lone.jpg") {
		t.Errorf("unique file should not appear in report:\n%s", out)
	}
}
