package probe

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	mp4 "github.com/abema/go-mp4"
)

// appleEpochOffset is the number of seconds between the QuickTime epoch
// (1904-01-01 UTC) and the Unix epoch.
const appleEpochOffset = 2082844800

// Video container extensions using the ISO Base Media File Format.
var isoBMFFExtensions = map[string]bool{
	".mp4": true,
	".m4v": true,
	".mov": true,
	".3gp": true,
	".3g2": true,
}

// VideoTime reads the moov>mvhd creation time from an ISO BMFF container.
// The returned instant is absolute (UTC). ok is false for non-video files,
// unreadable containers, and zero or insane creation times.
func VideoTime(path string) (time.Time, bool) {
	if !isoBMFFExtensions[strings.ToLower(filepath.Ext(path))] {
		return time.Time{}, false
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	boxes, err := mp4.ExtractBoxesWithPayload(f, nil, []mp4.BoxPath{
		{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()},
	})
	if err != nil {
		return time.Time{}, false
	}

	for _, box := range boxes {
		mvhd, ok := box.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		created := mvhd.GetCreationTime()
		if created == 0 {
			continue
		}
		t := time.Unix(int64(created)-appleEpochOffset, 0).UTC()
		if !saneYear(t.Year()) {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
