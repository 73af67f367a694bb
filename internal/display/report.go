package display

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"

	gotree "github.com/disiqueira/gotree/v3"

	"github.com/backmassage/restamp/internal/record"
)

// DuplicateReport renders the duplicate groups as a tree: one branch per
// kept file, with its duplicates as children. records must be the full
// collection (duplicates still present) and dups the subset flagged for
// removal, so the canonical of each group is the member not in dups.
func DuplicateReport(dir string, records, dups []*record.Record) string {
	if len(dups) == 0 {
		return ""
	}

	dupSet := make(map[*record.Record]bool, len(dups))
	for _, d := range dups {
		dupSet[d] = true
	}

	// Group duplicates under the canonical record of their fingerprint.
	canonical := make(map[[sha1.Size]byte]*record.Record)
	for _, r := range records {
		if !dupSet[r] {
			canonical[r.Fingerprint()] = r
		}
	}

	groups := make(map[*record.Record][]*record.Record)
	var order []*record.Record
	for _, d := range dups {
		keep := canonical[d.Fingerprint()]
		if keep == nil {
			continue
		}
		if len(groups[keep]) == 0 {
			order = append(order, keep)
		}
		groups[keep] = append(groups[keep], d)
	}

	root := gotree.New(dir)
	for _, keep := range order {
		branch := root.Add(fmt.Sprintf("%s (kept)", filepath.Base(keep.Path())))
		for _, d := range groups[keep] {
			branch.Add(fmt.Sprintf("%s (%s)", filepath.Base(d.Path()), FormatBytes(fileSize(d.Path()))))
		}
	}
	return root.Print()
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
