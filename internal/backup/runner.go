package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cockroachdb/errors"

	bakerrors "github.com/thoreinstein/bak/internal/errors"
	"github.com/thoreinstein/bak/internal/logging"
	"github.com/thoreinstein/bak/internal/transfer"
)

// Modes configures a Runner's behavior for one invocation.
type Modes struct {
	// Keep copies instead of moving, leaving the source in place.
	Keep bool

	// Flip allows restore to proceed over an existing destination by
	// backing the destination up first.
	Flip bool

	// PreserveSymlinks copies symlinks verbatim when copying trees.
	PreserveSymlinks bool

	// Choose selects the backup to restore or diff interactively instead
	// of taking the most recent one.
	Choose bool

	// DiffTool is the external tool invoked in diff mode.
	DiffTool string
}

// Selector picks one entry from a list of backup candidates, newest first.
// It returns the index of the chosen entry.
type Selector func(names []string) (int, error)

// Runner sequences backup, restore, diff, and list operations over a batch
// of target paths. Targets are processed strictly in the order given; a
// failure on one target is recorded and the batch continues.
type Runner struct {
	modes  Modes
	out    io.Writer
	log    *slog.Logger
	stamp  func() string
	choose Selector
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the writer for per-file operation lines.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger used for per-target failures.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithClock sets the timestamp provider. Tests use this to pin stamps.
func WithClock(stamp func() string) Option {
	return func(r *Runner) {
		r.stamp = stamp
	}
}

// WithSelector sets the interactive candidate selector used by Choose mode.
func WithSelector(s Selector) Option {
	return func(r *Runner) {
		r.choose = s
	}
}

// NewRunner creates a Runner with the given modes.
func NewRunner(modes Modes, opts ...Option) *Runner {
	r := &Runner{
		modes:  modes,
		out:    os.Stdout,
		log:    logging.Default(),
		stamp:  Stamp,
		choose: FuzzySelect,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Failure records one target that could not be processed.
type Failure struct {
	Target string
	Err    error
}

// Result aggregates the outcome of a batch. Partial success is expected:
// targets that failed are listed here while the rest were still processed.
type Result struct {
	Processed int
	Failures  []Failure
}

// Ok reports whether every target in the batch succeeded.
func (r Result) Ok() bool {
	return len(r.Failures) == 0
}

// Backup backs up each target in order. Missing targets are recorded as
// failures and the batch continues.
func (r *Runner) Backup(targets []string) Result {
	return r.each(targets, r.backupOne)
}

// Restore restores each target in order. A target may be either a backup
// path (restored to its decoded original location) or an original path
// (restored from its most recent backup).
func (r *Runner) Restore(targets []string) Result {
	return r.each(targets, r.restoreOne)
}

// List enumerates all backup entries in each given directory.
func (r *Runner) List(dirs []string) Result {
	return r.each(dirs, r.listOne)
}

func (r *Runner) each(targets []string, op func(string) error) Result {
	var res Result
	for _, target := range targets {
		res.Processed++
		if err := op(target); err != nil {
			r.log.Error(err.Error(), "path", target)
			res.Failures = append(res.Failures, Failure{Target: target, Err: err})
		}
	}
	return res
}

// exists tests whether a path names any filesystem entry, without
// following symlinks: a dangling symlink still occupies its name.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (r *Runner) backupOne(target string) error {
	target = trimTrailingSep(target)
	if !exists(target) {
		return errors.Wrapf(bakerrors.ErrTargetMissing, "'%s'", target)
	}

	name := FreeBackupName(target, r.stamp(), exists)
	return r.transfer(target, name)
}

func (r *Runner) restoreOne(target string) error {
	target = trimTrailingSep(target)

	// Resolving: a target that decodes to a shorter path is itself the
	// backup; otherwise it is the original location and the locator must
	// find the backup to restore from.
	src := target
	dst := OriginalPath(target)
	if dst == target {
		var err error
		src, err = r.pickBackup(target)
		if err != nil {
			return err
		}
	}

	// Validating
	if !exists(src) {
		return errors.Wrapf(bakerrors.ErrSourceMissing, "'%s'", src)
	}
	if exists(dst) {
		if !r.modes.Flip {
			return errors.Wrapf(bakerrors.ErrDestinationExists, "'%s'", dst)
		}
		// Flip: move the current destination out of the way as a fresh
		// backup, then restore over the now-free name. Nothing is ever
		// overwritten or deleted.
		if err := r.moveAside(dst); err != nil {
			return err
		}
	}

	return r.transfer(src, dst)
}

// moveAside backs up an existing restore destination. This is always a
// move, regardless of keep mode: the point is to free the name.
func (r *Runner) moveAside(path string) error {
	name := FreeBackupName(path, r.stamp(), exists)
	fmt.Fprintf(r.out, "Moving '%s' to '%s'\n", path, name)
	return transfer.Move(path, name)
}

// transfer performs the move-or-copy for one resolved source/destination
// pair, honoring keep mode and the symlink policy.
func (r *Runner) transfer(src, dst string) error {
	if r.modes.Keep {
		fmt.Fprintf(r.out, "Copying '%s' to '%s'\n", src, dst)
		return transfer.Copy(src, dst, transfer.Options{PreserveSymlinks: r.modes.PreserveSymlinks})
	}
	fmt.Fprintf(r.out, "Moving '%s' to '%s'\n", src, dst)
	return transfer.Move(src, dst)
}

// pickBackup resolves which backup of originalPath to use: the most recent
// by default, or an interactive choice in Choose mode.
func (r *Runner) pickBackup(originalPath string) (string, error) {
	dir, cands, err := candidatesFor(originalPath)
	if err != nil {
		return "", err
	}
	if len(cands) == 0 {
		return "", errors.Wrapf(bakerrors.ErrNoBackupFound, "for '%s'", originalPath)
	}

	idx := 0
	if r.modes.Choose && len(cands) > 1 {
		idx, err = r.choose(cands)
		if err != nil {
			return "", errors.Wrap(err, "selecting backup")
		}
	}
	return filepath.Join(dir, cands[idx]), nil
}

func (r *Runner) listOne(dir string) error {
	entries, err := os.ReadDir(trimTrailingSep(dir))
	if err != nil {
		return errors.Wrapf(err, "listing %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	for _, name := range Candidates(names, "") {
		fmt.Fprintln(r.out, filepath.Join(dir, name))
	}
	return nil
}

// Diff compares a target against one of its backups using the configured
// external tool. The pair is resolved exactly as restore resolves it. The
// tool's own exit status is not treated as a failure; reporting differences
// is its job, not an error.
func (r *Runner) Diff(target string) error {
	target = trimTrailingSep(target)

	original := OriginalPath(target)
	backupPath := target
	if original == target {
		var err error
		backupPath, err = r.pickBackup(target)
		if err != nil {
			if errors.Is(err, bakerrors.ErrNoBackupFound) {
				return bakerrors.NewDiffMissingError(err)
			}
			return err
		}
	}

	if !exists(original) {
		return bakerrors.NewDiffMissingError(
			errors.Wrapf(bakerrors.ErrSourceMissing, "original '%s'", original))
	}
	if !exists(backupPath) {
		return bakerrors.NewDiffMissingError(
			errors.Wrapf(bakerrors.ErrSourceMissing, "backup '%s'", backupPath))
	}

	cmd := exec.Command(r.modes.DiffTool, original, backupPath)
	cmd.Stdout = r.out
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return errors.Wrapf(err, "running %s", r.modes.DiffTool)
}
