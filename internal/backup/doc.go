// Package backup implements the core of the bak CLI: the backup-name
// codec, the most-recent-backup locator, and the batch orchestrator.
//
// # Naming
//
// A backup of "notes.txt" made at 2020-03-14 15:12:34 local time is named
//
//	notes.txt.bak.20200314T151234
//
// The filename is the sole source of truth: decoding it recovers the
// original path, and its trailing timestamp orders it against competing
// backups. No metadata is stored anywhere else.
//
// When a generated name already exists, another tag+timestamp block is
// chained onto it until a free name is found. Backing up a file that is
// itself a backup chains the same way. Decoding strips the whole chain.
//
// # Most-recent resolution
//
// Among the backup candidates for an original name, the most recent is the
// one with the lexicographically greatest trailing timestamp; equal
// timestamps are broken by total name length, longer first, because a
// chained name was necessarily created after the name it chained onto.
//
// # Safety
//
// The orchestrator never deletes a backup and never overwrites an existing
// destination on restore. Flip mode is the only path that frees an occupied
// destination, and it does so by backing the destination up first.
//
// The name generator checks for collisions before the filesystem write
// that claims the name. The window between the two is an accepted race:
// with second-resolution stamps and no deletion, a lost race chains one
// more suffix block rather than destroying anything.
package backup
