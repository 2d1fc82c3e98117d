package backup

// BackupName returns path with a single suffix block appended.
// Trailing path separators are stripped first so directory arguments
// produce a sibling name, not a child entry.
func BackupName(path, stamp string) string {
	return trimTrailingSep(path) + separator + Tag + separator + stamp
}

// FreeBackupName derives a backup name for path that does not collide with
// any existing entry, per the exists predicate. When the natural
// single-suffix name is taken, further blocks with the same stamp are
// appended until a free name is found; names are unbounded in length, so
// this terminates.
//
// There is a window between the exists check and the caller's later
// filesystem write in which another process could claim the name. This race
// is accepted: stamps have second resolution, bak never deletes entries,
// and a true collision only chains one more block instead of losing data.
func FreeBackupName(path, stamp string, exists func(string) bool) string {
	name := BackupName(path, stamp)
	for exists(name) {
		name = BackupName(name, stamp)
	}
	return name
}

// OriginalPath strips the maximal chain of trailing suffix blocks from
// path, recovering the name the backup was made from. It is the identity
// on paths that carry no backup suffix, which makes it safe to apply to
// user input of either kind.
func OriginalPath(path string) string {
	for {
		rest, ok := trimBlock(path)
		if !ok {
			return path
		}
		path = rest
	}
}

// IsBackupPath reports whether path names a backup entry, i.e. decoding it
// yields a different, shorter path.
func IsBackupPath(path string) bool {
	return HasBackupSuffix(trimTrailingSep(path))
}
