package probe

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Extensions goexif can decode (JPEG and TIFF containers).
var exifExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// Tags read from embedded EXIF blocks, mirroring the exiftool tag set.
var embeddedTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// EmbeddedTimes decodes EXIF data in-process and returns any timestamp
// candidates found. It never fails: files without EXIF contribute nothing,
// and the exiftool pass already covers exotic formats.
func EmbeddedTimes(path string) []time.Time {
	if !exifExtensions[strings.ToLower(filepath.Ext(path))] {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil
	}

	var times []time.Time
	for _, tag := range embeddedTags {
		field, err := x.Get(tag)
		if err != nil {
			continue
		}
		s, err := field.StringVal()
		if err != nil {
			continue
		}
		if t, ok := ParseField(s); ok {
			times = append(times, t)
		}
	}
	return times
}
