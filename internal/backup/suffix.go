package backup

import (
	"os"
	"strings"
	"time"
)

// The backup suffix grammar. A backup name is an original name followed by
// one or more suffix blocks anchored at the end of the string:
//
//	block = "." "bak" "." YYYYMMDD "T" HHMMSS
//
// Blocks chain when a generated name collides with an existing entry, or
// when a backup file is itself backed up again. The filename is the sole
// record of both the original identity and the backup recency; there is no
// sidecar metadata.
const (
	// Tag is the literal marker identifying a path as a backup.
	Tag = "bak"

	// StampLayout is the timestamp layout used in backup suffixes.
	// It is fixed-width and lexicographic order equals chronological order.
	StampLayout = "20060102T150405"
)

const (
	separator = "."
	stampLen  = len(StampLayout)
	blockLen  = len(separator) + len(Tag) + len(separator) + stampLen
)

// now is replaced in tests to pin timestamps.
var now = time.Now

// Stamp returns the current local time formatted as a backup timestamp.
func Stamp() string {
	return now().Format(StampLayout)
}

// validStamp reports whether s is exactly an 8-digit date, a literal 'T',
// and a 6-digit time.
func validStamp(s string) bool {
	if len(s) != stampLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 8 {
			if s[i] != 'T' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// trimBlock strips one suffix block from the end of name.
// It returns the remaining prefix and whether a block was present.
func trimBlock(name string) (string, bool) {
	if len(name) <= blockLen {
		return name, false
	}
	rest := name[:len(name)-blockLen]
	block := name[len(name)-blockLen:]
	if !strings.HasPrefix(block, separator+Tag+separator) {
		return name, false
	}
	if !validStamp(block[len(separator)+len(Tag)+len(separator):]) {
		return name, false
	}
	return rest, true
}

// HasBackupSuffix reports whether name ends with at least one suffix block.
func HasBackupSuffix(name string) bool {
	_, ok := trimBlock(name)
	return ok
}

// isSuffixChain reports whether s consists entirely of one or more
// suffix blocks. Blocks are fixed width, so a valid chain is an exact
// multiple of the block length.
func isSuffixChain(s string) bool {
	if s == "" || len(s)%blockLen != 0 {
		return false
	}
	for s != "" {
		if !strings.HasPrefix(s, separator+Tag+separator) {
			return false
		}
		if !validStamp(s[len(separator)+len(Tag)+len(separator) : blockLen]) {
			return false
		}
		s = s[blockLen:]
	}
	return true
}

// lastStamp returns the trailing timestamp substring of a backup name.
// Callers must ensure name ends with a suffix block.
func lastStamp(name string) string {
	return name[len(name)-stampLen:]
}

// trimTrailingSep strips trailing path separators so that directory
// arguments like "dir/" produce "dir.bak.<stamp>" rather than a name with
// an embedded separator.
func trimTrailingSep(path string) string {
	for len(path) > 1 && os.IsPathSeparator(path[len(path)-1]) {
		path = path[:len(path)-1]
	}
	return path
}
