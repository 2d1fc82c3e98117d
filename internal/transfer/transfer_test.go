package transfer

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestMove_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	write(t, src, "content", 0o644)

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if _, err := os.Lstat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
	if read(t, dst) != "content" {
		t.Error("destination content mismatch")
	}
}

func TestMove_Directory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	dst := filepath.Join(dir, "tree.moved")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write(t, filepath.Join(src, "sub", "f.txt"), "deep", 0o644)

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if read(t, filepath.Join(dst, "sub", "f.txt")) != "deep" {
		t.Error("tree content mismatch after move")
	}
}

func TestCopy_File_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	dst := filepath.Join(dir, "script.sh.copy")
	write(t, src, "#!/bin/sh\n", 0o755)

	if err := Copy(src, dst, Options{}); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if read(t, src) != "#!/bin/sh\n" {
		t.Error("copy must not disturb the source")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestCopy_Tree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	dst := filepath.Join(dir, "tree.copy")
	if err := os.MkdirAll(filepath.Join(src, "a", "b"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write(t, filepath.Join(src, "top.txt"), "top", 0o644)
	write(t, filepath.Join(src, "a", "b", "deep.txt"), "deep", 0o600)

	if err := Copy(src, dst, Options{}); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if read(t, filepath.Join(dst, "top.txt")) != "top" {
		t.Error("top-level file missing")
	}
	if read(t, filepath.Join(dst, "a", "b", "deep.txt")) != "deep" {
		t.Error("nested file missing")
	}
	info, err := os.Stat(filepath.Join(dst, "a", "b", "deep.txt"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("nested mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopy_Tree_PreserveSymlinks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	dst := filepath.Join(dir, "tree.copy")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write(t, filepath.Join(src, "target.txt"), "target", 0o644)
	if err := os.Symlink("target.txt", filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if err := Copy(src, dst, Options{PreserveSymlinks: true}); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	linkDst := filepath.Join(dst, "link")
	info, err := os.Lstat(linkDst)
	if err != nil {
		t.Fatalf("lstat: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatal("link should still be a symlink")
	}
	target, err := os.Readlink(linkDst)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != "target.txt" {
		t.Errorf("link target = %q, want %q", target, "target.txt")
	}
}

func TestCopy_Tree_FollowSymlinks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	dst := filepath.Join(dir, "tree.copy")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write(t, filepath.Join(src, "target.txt"), "target", 0o644)
	if err := os.Symlink("target.txt", filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if err := Copy(src, dst, Options{}); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	linkDst := filepath.Join(dst, "link")
	info, err := os.Lstat(linkDst)
	if err != nil {
		t.Fatalf("lstat: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Fatal("link should have been dereferenced")
	}
	if read(t, linkDst) != "target" {
		t.Error("dereferenced content mismatch")
	}
}

func TestCopy_Symlink_Directly(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "target.txt"), "target", 0o644)
	link := filepath.Join(dir, "link")
	if err := os.Symlink("target.txt", link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	preserved := filepath.Join(dir, "link.preserved")
	if err := Copy(link, preserved, Options{PreserveSymlinks: true}); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if info, _ := os.Lstat(preserved); info == nil || info.Mode()&os.ModeSymlink == 0 {
		t.Error("preserved copy should be a symlink")
	}

	followed := filepath.Join(dir, "link.followed")
	if err := Copy(link, followed, Options{}); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if read(t, followed) != "target" {
		t.Error("followed copy should contain the target content")
	}
}

func TestCopy_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := Copy(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"), Options{}); err == nil {
		t.Error("Copy() of missing source should fail")
	}
}
