//go:build !windows

package longpath

// LongPathsEnabled reports true on platforms without a MAX_PATH limit.
func LongPathsEnabled() bool {
	return true
}
