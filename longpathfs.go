package longpath

import (
	"os"
	"runtime"
	"time"
)

var (
	_ Fs         = (*LongPathFs)(nil)
	_ Lstater    = (*LongPathFs)(nil)
	_ Linker     = (*LongPathFs)(nil)
	_ LinkReader = (*LongPathFs)(nil)
)

// LongPathFs rewrites overlong paths into \\?\ extended form before handing
// them to the source Fs, and shortens every path that travels back out —
// file names, readlink targets, the path text inside errors — so the
// extended form never becomes visible to the caller.
//
// It is a pure transform-and-delegate layer: no retries, no swallowed
// errors, no state beyond the immutable Mapper. Operations that take two
// paths (Rename, Symlink) rewrite both endpoints independently and stay a
// single delegated call.
type LongPathFs struct {
	source Fs
	mapper *Mapper
}

// NewLongPathFs wraps source with the long-path rewrite described by
// mapper. The source keeps its own semantics for everything else.
func NewLongPathFs(source Fs, mapper *Mapper) Fs {
	return &LongPathFs{source: source, mapper: mapper}
}

// NewOsLongPathFs returns the filesystem a host should use for working
// copies that may contain overlong paths: on Windows an OsFs behind the
// rewriting gateway, elsewhere a plain OsFs, behind the same interface.
func NewOsLongPathFs() Fs {
	if runtime.GOOS != "windows" {
		return NewOsFs()
	}
	return NewLongPathFs(NewOsFs(), NewMapper())
}

func (l *LongPathFs) Name() string { return "LongPathFs" }

// rewrite maps name for the source call. A mapper failure (getwd gone) is
// reported as a PathError on the caller's own spelling of the path.
func (l *LongPathFs) rewrite(op, name string) (string, error) {
	extended, err := l.mapper.Rewrite(name)
	if err != nil {
		return "", &os.PathError{Op: op, Path: name, Err: err}
	}
	return extended, nil
}

// shortenError strips the extended prefix out of any path text embedded in
// err. The error keeps its kind and cause so errors.Is and os.IsNotExist
// answers are unchanged.
func (l *LongPathFs) shortenError(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *os.PathError:
		return &os.PathError{Op: e.Op, Path: l.mapper.Shorten(e.Path), Err: e.Err}
	case *os.LinkError:
		return &os.LinkError{Op: e.Op, Old: l.mapper.Shorten(e.Old), New: l.mapper.Shorten(e.New), Err: e.Err}
	}
	return err
}

func (l *LongPathFs) Create(name string) (File, error) {
	extended, err := l.rewrite("create", name)
	if err != nil {
		return nil, err
	}
	f, err := l.source.Create(extended)
	if err != nil {
		return nil, l.shortenError(err)
	}
	return &LongPathFile{File: f, mapper: l.mapper}, nil
}

func (l *LongPathFs) Mkdir(name string, perm os.FileMode) error {
	extended, err := l.rewrite("mkdir", name)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.Mkdir(extended, perm))
}

func (l *LongPathFs) MkdirAll(path string, perm os.FileMode) error {
	extended, err := l.rewrite("mkdir", path)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.MkdirAll(extended, perm))
}

func (l *LongPathFs) Open(name string) (File, error) {
	extended, err := l.rewrite("open", name)
	if err != nil {
		return nil, err
	}
	f, err := l.source.Open(extended)
	if err != nil {
		return nil, l.shortenError(err)
	}
	return &LongPathFile{File: f, mapper: l.mapper}, nil
}

func (l *LongPathFs) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	extended, err := l.rewrite("open", name)
	if err != nil {
		return nil, err
	}
	f, err := l.source.OpenFile(extended, flag, perm)
	if err != nil {
		return nil, l.shortenError(err)
	}
	return &LongPathFile{File: f, mapper: l.mapper}, nil
}

func (l *LongPathFs) Remove(name string) error {
	extended, err := l.rewrite("remove", name)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.Remove(extended))
}

func (l *LongPathFs) RemoveAll(path string) error {
	extended, err := l.rewrite("remove_all", path)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.RemoveAll(extended))
}

func (l *LongPathFs) Rename(oldname, newname string) error {
	oldext, err := l.rewrite("rename", oldname)
	if err != nil {
		return err
	}
	newext, err := l.rewrite("rename", newname)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.Rename(oldext, newext))
}

func (l *LongPathFs) Stat(name string) (os.FileInfo, error) {
	extended, err := l.rewrite("stat", name)
	if err != nil {
		return nil, err
	}
	fi, err := l.source.Stat(extended)
	return fi, l.shortenError(err)
}

func (l *LongPathFs) Chmod(name string, mode os.FileMode) error {
	extended, err := l.rewrite("chmod", name)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.Chmod(extended, mode))
}

func (l *LongPathFs) Chown(name string, uid, gid int) error {
	extended, err := l.rewrite("chown", name)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.Chown(extended, uid, gid))
}

func (l *LongPathFs) Chtimes(name string, atime, mtime time.Time) error {
	extended, err := l.rewrite("chtimes", name)
	if err != nil {
		return err
	}
	return l.shortenError(l.source.Chtimes(extended, atime, mtime))
}

func (l *LongPathFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	extended, err := l.rewrite("lstat", name)
	if err != nil {
		return nil, false, err
	}
	if lstater, ok := l.source.(Lstater); ok {
		fi, b, err := lstater.LstatIfPossible(extended)
		return fi, b, l.shortenError(err)
	}
	fi, err := l.source.Stat(extended)
	return fi, false, l.shortenError(err)
}

func (l *LongPathFs) SymlinkIfPossible(oldname, newname string) error {
	oldext, err := l.rewrite("symlink", oldname)
	if err != nil {
		return err
	}
	newext, err := l.rewrite("symlink", newname)
	if err != nil {
		return err
	}
	if linker, ok := l.source.(Linker); ok {
		return l.shortenError(linker.SymlinkIfPossible(oldext, newext))
	}
	return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: ErrNoSymlink}
}

func (l *LongPathFs) ReadlinkIfPossible(name string) (string, error) {
	extended, err := l.rewrite("readlink", name)
	if err != nil {
		return "", err
	}
	reader, ok := l.source.(LinkReader)
	if !ok {
		return "", &os.PathError{Op: "readlink", Path: name, Err: ErrNoReadlink}
	}
	target, err := reader.ReadlinkIfPossible(extended)
	if err != nil {
		return "", l.shortenError(err)
	}
	// the OS reports targets of absolute links in the form they were
	// created with; an extended-form target must not escape
	return l.mapper.Shorten(target), nil
}

// LongPathFile hands a file opened under an extended path back to the
// caller with its short name. Directory entries from Readdir and
// Readdirnames are bare names, never full paths, and need no rewrite.
type LongPathFile struct {
	File

	mapper *Mapper
}

func (f *LongPathFile) Name() string {
	return f.mapper.Shorten(f.File.Name())
}
