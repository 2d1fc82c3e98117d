package backup

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
)

// FuzzySelect presents backup candidates in an interactive fuzzy finder
// and returns the index of the chosen one. Aborting the finder is an error;
// restore must not silently fall back to a backup the user did not pick.
func FuzzySelect(names []string) (int, error) {
	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			name := names[i]
			made := lastStamp(name)
			if t, err := time.ParseInLocation(StampLayout, made, time.Local); err == nil {
				made = t.Format("2006-01-02 15:04:05")
			}
			return fmt.Sprintf("Original: %s\nMade:     %s", OriginalPath(name), made)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, errors.New("selection aborted")
		}
		return 0, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}
