package backup

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	bakerrors "github.com/thoreinstein/bak/internal/errors"
)

// Candidates filters a directory listing down to backup entries.
//
// With an original name, a candidate must be exactly that name followed by
// one or more suffix blocks. With original == "", any entry ending in a
// suffix chain matches; list mode uses this to enumerate every backup in a
// directory.
func Candidates(names []string, original string) []string {
	var out []string
	for _, name := range names {
		if original == "" {
			if HasBackupSuffix(name) {
				out = append(out, name)
			}
			continue
		}
		rest, ok := strings.CutPrefix(name, original)
		if ok && isSuffixChain(rest) {
			out = append(out, name)
		}
	}
	sortNewestFirst(out)
	return out
}

// sortNewestFirst orders backup names most-recent first: primary key is the
// trailing timestamp, compared as a string; ties go to the longer name,
// since a repeated backup of the same second chains another block and is by
// construction the later one.
func sortNewestFirst(names []string) {
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(lastStamp(b), lastStamp(a)); c != 0 {
			return c
		}
		return len(b) - len(a)
	})
}

// candidatesFor lists the directory containing originalPath and returns the
// backup candidates for its base name, newest first.
func candidatesFor(originalPath string) (dir string, names []string, err error) {
	dir, base := filepath.Split(trimTrailingSep(originalPath))
	listDir := dir
	if listDir == "" {
		listDir = "."
	}

	entries, err := os.ReadDir(listDir)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listing %s", listDir)
	}

	all := make([]string, 0, len(entries))
	for _, e := range entries {
		all = append(all, e.Name())
	}
	return dir, Candidates(all, base), nil
}

// MostRecent resolves the most recent backup of originalPath, joined back
// onto its directory. Returns ErrNoBackupFound when no candidate exists.
func MostRecent(originalPath string) (string, error) {
	dir, cands, err := candidatesFor(originalPath)
	if err != nil {
		return "", err
	}
	if len(cands) == 0 {
		return "", errors.Wrapf(bakerrors.ErrNoBackupFound, "for '%s'", originalPath)
	}
	return filepath.Join(dir, cands[0]), nil
}
