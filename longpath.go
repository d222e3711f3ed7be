package longpath

import (
	"os"
	"strings"
)

const (
	// ExtendedPrefix marks a path as exempt from MAX_PATH and from the
	// Win32 normalization pass. It is only valid in front of an absolute
	// path with backslash separators.
	ExtendedPrefix = `\\?\`

	// ExtendedUNCPrefix is the variant for network paths:
	// \\server\share\dir becomes \\?\UNC\server\share\dir.
	ExtendedUNCPrefix = `\\?\UNC\`

	// DevicePrefix addresses the NT device namespace. Such paths are
	// already outside MAX_PATH rules and pass through untouched.
	DevicePrefix = `\\.\`

	// MaxPath is the historical Windows limit on a full file path,
	// terminating NUL included.
	MaxPath = 260

	// MaxDirPath is the limit for directories: MAX_PATH minus the room the
	// OS reserves for an 8.3 file name component.
	MaxDirPath = 248
)

// Reserved DOS device names. Opening one of these addresses the device no
// matter what directory the path points into, so they are never prefixed.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Mapper converts between the short form of a Windows path (what the host
// and its users see) and the \\?\ extended-length form the OS needs once a
// path outgrows MAX_PATH.
//
// The prefix disables the OS's own relative-path and "."/".." resolution,
// so Extend resolves paths to cleaned absolute form itself before
// prefixing. Extend and Shorten are inverses on such paths, and Extend is
// idempotent. A Mapper holds no mutable state and is safe for concurrent
// use.
type Mapper struct {
	limit    int
	dirLimit int
	getwd    func() (string, error)
}

// NewMapper returns a Mapper with the platform limits (MaxPath, MaxDirPath)
// and the process working directory as the base for relative paths.
func NewMapper() *Mapper {
	return NewMapperLimits(MaxPath, MaxDirPath)
}

// NewMapperLimits is NewMapper with caller-chosen thresholds, for hosts
// that want the defensive rewrite earlier (or, in tests, a reachable
// limit). The limits are fixed for the life of the Mapper.
func NewMapperLimits(limit, dirLimit int) *Mapper {
	return &Mapper{limit: limit, dirLimit: dirLimit, getwd: os.Getwd}
}

// Extended reports whether path is already in extended form.
func (m *Mapper) Extended(path string) bool {
	return strings.HasPrefix(path, ExtendedPrefix)
}

// exempt paths are never rewritten: already-extended paths (idempotence),
// device-namespace paths, and reserved device names.
func (m *Mapper) exempt(path string) bool {
	if m.Extended(path) || strings.HasPrefix(path, DevicePrefix) {
		return true
	}
	_, ok := reservedNames[strings.ToUpper(path)]
	return ok
}

// Extend rewrites path into extended form unconditionally. Callers that
// only want the rewrite once a path is long enough to need it should use
// Rewrite instead.
//
// Already-extended paths, device paths, reserved device names and
// drive-relative paths (C:foo — their per-drive working directory is not
// observable from a process) are returned unchanged.
func (m *Mapper) Extend(path string) (string, error) {
	if path == "" || m.exempt(path) {
		return path, nil
	}
	abs, err := m.abs(path)
	if err != nil {
		return "", err
	}
	if !isAbs(abs) {
		return path, nil
	}
	return extendAbs(abs), nil
}

// Rewrite is the form the gateway uses: it extends path only when its
// absolute form is long enough to run into the platform limit, so short
// paths reach the OS byte-for-byte as the caller spelled them.
func (m *Mapper) Rewrite(path string) (string, error) {
	if path == "" || m.exempt(path) {
		return path, nil
	}
	abs, err := m.abs(path)
	if err != nil {
		return "", err
	}
	if !isAbs(abs) || len(abs) < m.dirLimit {
		return path, nil
	}
	return extendAbs(abs), nil
}

func extendAbs(abs string) string {
	if strings.HasPrefix(abs, `\\`) {
		return ExtendedUNCPrefix + abs[2:]
	}
	return ExtendedPrefix + abs
}

// Shorten undoes Extend. Paths not in extended form are returned unchanged,
// so it is safe to apply to every outbound path.
func (m *Mapper) Shorten(path string) string {
	switch {
	case strings.HasPrefix(path, ExtendedUNCPrefix):
		return `\\` + path[len(ExtendedUNCPrefix):]
	case strings.HasPrefix(path, ExtendedPrefix):
		return path[len(ExtendedPrefix):]
	}
	return path
}

// Exceeds reports whether a full file path is at or over the platform
// limit.
func (m *Mapper) Exceeds(path string) bool {
	return len(m.Shorten(path)) >= m.limit
}

// ExceedsDir is Exceeds for directory paths, which hit the limit earlier.
func (m *Mapper) ExceedsDir(path string) bool {
	return len(m.Shorten(path)) >= m.dirLimit
}

// abs resolves path to cleaned absolute form using Windows path syntax.
// filepath.Abs is not used because its syntax follows the build platform,
// and the mapper's math must hold everywhere it is compiled and tested.
func (m *Mapper) abs(path string) (string, error) {
	p := strings.ReplaceAll(path, "/", `\`)
	if isAbs(p) {
		return clean(p), nil
	}
	if vol := volumeName(p); vol != "" {
		// drive-relative, see Extend
		return clean(p), nil
	}
	wd, err := m.getwd()
	if err != nil {
		return "", err
	}
	wd = strings.ReplaceAll(wd, "/", `\`)
	if strings.HasPrefix(p, `\`) {
		// rooted on the current drive
		return clean(volumeName(wd) + p), nil
	}
	return clean(wd + `\` + p), nil
}

// isAbs reports whether path is absolute in Windows terms: a UNC path, or
// a drive letter followed by a rooted path.
func isAbs(path string) bool {
	if strings.HasPrefix(path, `\\`) {
		return true
	}
	vol := volumeName(path)
	return len(vol) == 2 && strings.HasPrefix(path[2:], `\`)
}

// volumeName returns the leading volume of path: "C:" for drive paths,
// `\\server\share` for UNC paths, "" otherwise.
func volumeName(path string) string {
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		return path[:2]
	}
	if strings.HasPrefix(path, `\\`) && !strings.HasPrefix(path, ExtendedPrefix) && !strings.HasPrefix(path, DevicePrefix) {
		rest := path[2:]
		i := strings.IndexByte(rest, '\\')
		if i <= 0 {
			return path
		}
		j := strings.IndexByte(rest[i+1:], '\\')
		if j < 0 {
			return path
		}
		return path[:2+i+1+j]
	}
	return ""
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// clean is a lexical cleanup in Windows syntax: collapse separators and
// resolve "." and ".." without consulting the filesystem. The extended
// prefix turns off exactly this processing in the OS, so it has to happen
// here before the prefix goes on.
func clean(path string) string {
	vol := volumeName(path)
	rest := path[len(vol):]
	rooted := strings.HasPrefix(rest, `\`)

	var out []string
	for _, seg := range strings.Split(rest, `\`) {
		switch seg {
		case "", ".":
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
			} else if !rooted {
				out = append(out, "..")
			}
		default:
			out = append(out, seg)
		}
	}

	p := strings.Join(out, `\`)
	switch {
	case rooted:
		return vol + `\` + p
	case p == "" && vol == "":
		return "."
	default:
		return vol + p
	}
}
