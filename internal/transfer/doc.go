// Package transfer moves and copies filesystem entries for the bak CLI.
//
// It is the single capability the backup orchestrator delegates to for the
// actual filesystem work: a move (rename, with a cross-device copy+remove
// fallback) and a copy that handles plain files, directory trees, and
// symlinks, with a policy choice of preserving or following links.
package transfer
