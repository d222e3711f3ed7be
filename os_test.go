package longpath

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOsFsBasicOps(t *testing.T) {
	fsys := NewOsFs()
	dir := t.TempDir()

	name := filepath.Join(dir, "file.txt")
	f, err := fsys.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("content"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	fi, err := fsys.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != int64(len("content")) {
		t.Errorf("size = %d", fi.Size())
	}

	renamed := filepath.Join(dir, "renamed.txt")
	if err := fsys.Rename(name, renamed); err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.Stat(name); !os.IsNotExist(err) {
		t.Errorf("old name still there after rename: %v", err)
	}
	if err := fsys.Remove(renamed); err != nil {
		t.Fatal(err)
	}
}

func TestOsFsLstatIfPossible(t *testing.T) {
	fsys := NewOsFs().(*OsFs)
	dir := t.TempDir()

	name := filepath.Join(dir, "file.txt")
	if err := WriteFile(fsys, name, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, lstatCalled, err := fsys.LstatIfPossible(name)
	if err != nil {
		t.Fatal(err)
	}
	if !lstatCalled {
		t.Error("OsFs must use a real Lstat")
	}
}

func TestOsFsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevation on windows")
	}
	fsys := NewOsFs().(*OsFs)
	dir := t.TempDir()

	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	if err := WriteFile(fsys, target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fsys.SymlinkIfPossible(target, link); err != nil {
		t.Fatal(err)
	}
	got, err := fsys.ReadlinkIfPossible(link)
	if err != nil {
		t.Fatal(err)
	}
	if got != target {
		t.Errorf("readlink = %q, want %q", got, target)
	}
}

func TestLongPathsEnabledOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("registry-dependent on windows")
	}
	if !LongPathsEnabled() {
		t.Error("platforms without MAX_PATH always handle long paths")
	}
}
