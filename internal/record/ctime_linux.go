//go:build linux

package record

import (
	"os"
	"syscall"
	"time"
)

// changeTime returns the inode status-change time, the closest thing Unix
// keeps to a guaranteed-set timestamp for every file.
func changeTime(fi os.FileInfo) time.Time {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return fi.ModTime()
}
