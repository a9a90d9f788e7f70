package mailclean

import (
	"fmt"
	"time"

	"github.com/infodancer/mailclean/errors"
)

// ArchiveFolderName returns the archive folder for a message dated t:
// base.YYYY, base.YYYY.MM-Mon or base.YYYY.MM-Mon.DD-Wkd for depth 1, 2
// or 3, with sep between segments.
func ArchiveFolderName(base, sep string, t time.Time, depth int) (string, error) {
	if depth < 1 || depth > 3 {
		return "", fmt.Errorf("%w: %d", errors.ErrInvalidDepth, depth)
	}
	name := base + sep + t.Format("2006")
	if depth >= 2 {
		name += sep + t.Format("01-Jan")
	}
	if depth == 3 {
		name += sep + t.Format("02-Mon")
	}
	return name, nil
}
