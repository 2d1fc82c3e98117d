// Package paths resolves filesystem locations used by the bak CLI.
//
// It wraps XDG base-directory resolution for the configuration directory
// and provides small helpers for home expansion and directory creation.
package paths
