package probe

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"plain", "2008:05:30 15:56:01", time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC), true},
		{"offset suffix stripped", "2008:05:30 15:56:01+02:00", time.Date(2008, 5, 30, 15, 56, 1, 0, time.UTC), true},
		{"zulu suffix stripped", "2021:01:02 03:04:05Z", time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC), true},
		{"dst suffix stripped", "1999:12:31 23:59:59 DST", time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), true},
		{"surrounding whitespace", "  2010:06:01 10:00:00\r", time.Date(2010, 6, 1, 10, 0, 0, 0, time.UTC), true},
		{"empty line", "", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
		{"zero date", "0000:00:00 00:00:00", time.Time{}, false},
		{"prehistoric year", "1503:01:01 12:00:00", time.Time{}, false},
		{"far future year", "2222:01:01 12:00:00", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseField(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseField(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseField(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseOutput_SkipsAbsentFields(t *testing.T) {
	out := []byte("2008:05:30 15:56:01\n\n2010:01:01 00:00:00+01:00\n\nbogus\n")
	times := ParseOutput(out)
	if len(times) != 2 {
		t.Fatalf("got %d candidates, want 2: %v", len(times), times)
	}
	if times[0].Year() != 2008 || times[1].Year() != 2010 {
		t.Errorf("unexpected candidates: %v", times)
	}
}

func TestSaneYear(t *testing.T) {
	if saneYear(1825) {
		t.Error("1825 accepted")
	}
	if !saneYear(1826) {
		t.Error("1826 rejected")
	}
	if !saneYear(time.Now().Year()) {
		t.Error("current year rejected")
	}
	if saneYear(time.Now().Year() + 2) {
		t.Error("clock two years fast accepted")
	}
}

func TestNaive(t *testing.T) {
	zone := time.FixedZone("UTC-3", -3*60*60)
	abs := time.Date(2015, 7, 1, 12, 30, 0, 0, time.UTC)
	got := naive(abs.In(zone))
	want := time.Date(2015, 7, 1, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("naive = %v, want %v", got, want)
	}
}

func TestEmbeddedTimes_NonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if times := EmbeddedTimes(path); times != nil {
		t.Errorf("got %v, want nil for non-image file", times)
	}
}

func TestEmbeddedTimes_ImageWithoutExif(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blank.jpg")
	if err := os.WriteFile(path, []byte("not a real jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if times := EmbeddedTimes(path); times != nil {
		t.Errorf("got %v, want nil for undecodable image", times)
	}
}

func TestVideoTime_NonVideo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.avi")
	if err := os.WriteFile(path, []byte("riff?"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := VideoTime(path); ok {
		t.Error("got ok for non-BMFF container")
	}
}

func TestVideoTime_CorruptContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("not an mp4"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := VideoTime(path); ok {
		t.Error("got ok for corrupt container")
	}
}

func TestExiftool_NoMetadata(t *testing.T) {
	if _, err := exec.LookPath("exiftool"); err != nil {
		t.Skip("exiftool not available")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}
	times, err := Exiftool(context.Background(), path)
	if err != nil {
		t.Fatalf("Exiftool: %v", err)
	}
	// A bare binary blob has no creation tags; the fallback path applies.
	for _, c := range times {
		t.Logf("candidate: %v", c)
	}
}
