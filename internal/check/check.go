// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for exiftool and timezone data.
package check

import (
	"os/exec"
	"strings"
	"time"

	"github.com/backmassage/restamp/internal/config"
	"github.com/backmassage/restamp/internal/probe"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints exiftool availability
// and version, the resolved timezone, and the current stamp a file renamed
// right now would carry. This is informational only and does not stop on
// failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkExiftool(log)
	checkTimezone(cfg, log)
}

// checkExiftool verifies exiftool is on PATH and logs its version string.
func checkExiftool(log Logger) {
	path, err := exec.LookPath("exiftool")
	if err != nil {
		log.Error("exiftool not found on PATH")
		return
	}
	out, err := exec.Command(path, "-ver").Output()
	if err != nil {
		log.Warn("exiftool found but -ver failed: %v", err)
		return
	}
	log.Success("exiftool %s (%s)", strings.TrimSpace(string(out)), path)
}

// checkTimezone reports the zone timestamps will be rendered in and a
// sample stamp so the user can sanity-check the offset.
func checkTimezone(cfg *config.Config, log Logger) {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	log.Info("Timezone: %s (offset %s)", loc.String(), now.Format("-0700"))
	log.Info("A file taken now would be named %q", now.Format("20060102 150405 -0700")+".jpg")
}

// CheckDeps is the pre-run validation: it verifies that exiftool is on
// PATH. Returns probe.ErrExiftoolNotFound on failure so callers can match
// it with errors.Is.
func CheckDeps() error {
	if _, err := exec.LookPath("exiftool"); err != nil {
		return probe.ErrExiftoolNotFound
	}
	return nil
}
