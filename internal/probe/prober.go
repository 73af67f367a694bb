// Package probe gathers timestamp candidates for media files. The primary
// source is a single exiftool subprocess call per file; embedded EXIF data
// and MP4 container metadata contribute additional candidates in-process.
// All candidates are naive wall-clock readings; the record layer localizes
// the winning one with the configured zone.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrExiftoolNotFound is returned when the exiftool executable cannot be
// invoked at all. A file that exiftool merely cannot read is not an error;
// it just contributes no candidates.
var ErrExiftoolNotFound = errors.New("exiftool not found on PATH")

// Timestamp tags requested from exiftool, creation hints first.
var exiftoolTags = []string{
	"-CreateDate",
	"-DateTimeOriginal",
	"-MediaCreateDate",
	"-TrackCreateDate",
	"-ModifyDate",
}

// Prober collects candidates from every available source for one file.
type Prober struct {
	loc *time.Location
}

// New returns a Prober that converts absolute sources (container metadata)
// into wall-clock readings of loc.
func New(loc *time.Location) *Prober {
	return &Prober{loc: loc}
}

// Candidates returns every timestamp candidate known for path. Failure to
// launch exiftool is fatal and reported; absence of metadata in the file
// is the normal fallback path and yields fewer (possibly zero) candidates.
func (p *Prober) Candidates(ctx context.Context, path string) ([]time.Time, error) {
	times, err := Exiftool(ctx, path)
	if err != nil {
		return nil, err
	}

	times = append(times, EmbeddedTimes(path)...)

	if t, ok := VideoTime(path); ok {
		times = append(times, naive(t.In(p.loc)))
	}
	return times, nil
}

// Exiftool runs a single exiftool call against path, requesting the fixed
// tag set with bare -s -s -s line output, and parses one candidate per line.
func Exiftool(ctx context.Context, path string) ([]time.Time, error) {
	args := make([]string, 0, len(exiftoolTags)+4)
	args = append(args, exiftoolTags...)
	args = append(args, "-s", "-s", "-s", path)

	cmd := exec.CommandContext(ctx, "exiftool", args...)
	out, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, fmt.Errorf("%w: %v", ErrExiftoolNotFound, err)
		}
		// Non-zero exit means exiftool could not read the file format.
		// Treat it the same as a file with no timestamp tags.
		return nil, nil
	}
	return ParseOutput(out), nil
}
