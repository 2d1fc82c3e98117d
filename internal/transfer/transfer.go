package transfer

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
)

// Options control how filesystem entries are transferred.
type Options struct {
	// PreserveSymlinks copies symlinks as links instead of following them
	// to their targets.
	PreserveSymlinks bool
}

// Move renames src to dst. When the rename fails because src and dst live
// on different filesystems, it falls back to a copy followed by removing
// the source, which is the same observable result. Symlinks are always
// preserved on the fallback path; a move must not change what an entry is.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !errors.Is(err, syscall.EXDEV) {
		return errors.Wrapf(err, "renaming %s", src)
	}

	if err := Copy(src, dst, Options{PreserveSymlinks: true}); err != nil {
		return err
	}
	return errors.Wrapf(os.RemoveAll(src), "removing %s after copy", src)
}

// Copy copies src to dst. Files, directory trees, and symlinks are all
// supported; file modes are preserved. Directory trees are copied
// recursively, with symlinks inside the tree handled per opts.
func Copy(src, dst string, opts Options) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	return copyEntry(src, dst, info, opts)
}

func copyEntry(src, dst string, info fs.FileInfo, opts Options) error {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		if opts.PreserveSymlinks {
			return copyLink(src, dst)
		}
		// Follow the link and copy whatever it points at.
		resolved, err := os.Stat(src)
		if err != nil {
			return errors.Wrapf(err, "following symlink %s", src)
		}
		return copyEntry(src, dst, resolved, opts)
	case info.IsDir():
		return copyTree(src, dst, info.Mode().Perm(), opts)
	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

func copyTree(src, dst string, perm fs.FileMode, opts Options) error {
	if err := os.MkdirAll(dst, perm); err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading %s", src)
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return errors.Wrapf(err, "stat %s", filepath.Join(src, entry.Name()))
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if err := copyEntry(srcPath, dstPath, info, opts); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying %s", src)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}

	// O_CREATE honors the umask; make the mode match the source exactly.
	return errors.Wrapf(os.Chmod(dst, perm), "setting permissions on %s", dst)
}

func copyLink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, "reading symlink %s", src)
	}
	return errors.Wrapf(os.Symlink(target, dst), "creating symlink %s", dst)
}
