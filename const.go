package longpath

import (
	"io/fs"
	"os"
	"syscall"
)

// FilePathSeparator as defined by os.Separator.
const FilePathSeparator = string(os.PathSeparator)

// Errors returned by this package. The file errors alias the io/fs
// sentinels so errors.Is and os.IsNotExist keep matching after the gateway
// rewrites the path text inside an error.
var (
	ErrFileClosed        = fs.ErrClosed
	ErrFileNotFound      = fs.ErrNotExist
	ErrFileExists        = fs.ErrExist
	ErrDestinationExists = fs.ErrExist
	ErrPermission        = fs.ErrPermission

	// ErrNameTooLong after a rewrite indicates a gateway bug, not a caller
	// error: the extended form is exactly what lifts the limit.
	ErrNameTooLong error = syscall.ENAMETOOLONG
)
