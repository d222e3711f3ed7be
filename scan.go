package longpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ListLongPaths walks the tree rooted at root and returns every file or
// directory whose absolute path length meets or exceeds limit, deepest
// entries first so the result can be deleted in order. Such entries work
// through the gateway but trip up Explorer, cmd.exe and plenty of legacy
// tools, which is why operators want to find them.
//
// root is resolved to absolute form before the walk: the limit is a
// property of the full path the OS sees, not of the caller's spelling of
// it. Directories are measured against limit minus the room the OS
// reserves for an 8.3 file name component, mirroring MaxDirPath versus
// MaxPath. The returned paths are absolute.
func ListLongPaths(fsys Fs, root string, limit int) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	dirLimit := limit - (MaxPath - MaxDirPath)
	var long []string
	err = Walk(fsys, absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		threshold := limit
		if info.IsDir() {
			threshold = dirLimit
		}
		if len(path) >= threshold {
			long = append(long, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Walk is top-down; reverse so children precede their directories.
	for i, j := 0, len(long)-1; i < j; i, j = i+1, j-1 {
		long[i], long[j] = long[j], long[i]
	}
	return long, nil
}

// CleanLongPaths removes the entries ListLongPaths would report. confirm is
// consulted per entry and may be nil to delete everything (the --force
// behavior). It returns the paths actually removed.
//
// Files are removed before the directories that contain them; a directory
// is only ever removed with Remove, never recursively, so a declined file
// keeps its parents in place.
func CleanLongPaths(fsys Fs, root string, limit int, confirm func(path string) bool) ([]string, error) {
	long, err := ListLongPaths(fsys, root, limit)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, path := range long {
		if confirm != nil && !confirm(path) {
			continue
		}
		if err := fsys.Remove(path); err != nil {
			// a declined child leaves its directory non-empty; report
			// anything else
			if isDirNotEmpty(err) {
				continue
			}
			return removed, err
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func isDirNotEmpty(err error) bool {
	if errors.Is(err, syscall.ENOTEMPTY) {
		return true
	}
	var pe *os.PathError
	// ERROR_DIR_NOT_EMPTY does not unwrap to ENOTEMPTY on Windows
	return errors.As(err, &pe) && strings.Contains(pe.Err.Error(), "not empty")
}

// Overlong reports whether path would exceed the platform limit as a file
// (or, with dir set, as a directory, which hits the limit sooner).
func Overlong(path string, dir bool) bool {
	limit := MaxPath
	if dir {
		limit = MaxDirPath
	}
	return len(filepath.Clean(path)) >= limit
}
