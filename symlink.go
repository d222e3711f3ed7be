package longpath

import (
	"errors"
	"os"
)

// Lstater is an optional interface. It is only implemented by the
// filesystems saying so. It will call Lstat if the filesystem itself is, or
// it delegates to, the os filesystem. Else it will call Stat.
// In addition to the FileInfo, it will return a boolean telling whether
// Lstat was called or not.
type Lstater interface {
	LstatIfPossible(name string) (os.FileInfo, bool, error)
}

// Linker is an optional interface. It is only implemented by the
// filesystems saying so. It will call Symlink if the filesystem itself is,
// or it delegates to, the os filesystem.
type Linker interface {
	SymlinkIfPossible(oldname, newname string) error
}

// ErrNoSymlink is the error that will be wrapped in an os.LinkError if a
// file system does not support Symlink's either directly or through its
// delegated filesystem.
// As expressed by support for the Linker interface.
var ErrNoSymlink = errors.New("symlink not supported")

// LinkReader is an optional interface. It is only implemented by the
// filesystems saying so.
type LinkReader interface {
	ReadlinkIfPossible(name string) (string, error)
}

// ErrNoReadlink is the error that will be wrapped in an os.PathError if a
// file system does not support the readlink operation either directly or
// through its delegated filesystem.
// As expressed by support for the LinkReader interface.
var ErrNoReadlink = errors.New("readlink not supported")
