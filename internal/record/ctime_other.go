//go:build !linux

package record

import (
	"os"
	"time"
)

// changeTime falls back to the modification time where the status-change
// field is not portably available.
func changeTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
