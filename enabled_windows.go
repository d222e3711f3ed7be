//go:build windows

package longpath

import "golang.org/x/sys/windows/registry"

// LongPathsEnabled reports whether the OS is configured to honor long paths
// without the extended-length prefix (Windows 10 1607+, with the
// LongPathsEnabled policy set and a longPathAware application manifest).
//
// The gateway rewrites either way; this check exists so operators can tell
// whether the rewrite is load-bearing on a given machine.
func LongPathsEnabled() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SYSTEM\CurrentControlSet\Control\FileSystem`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()
	v, _, err := k.GetIntegerValue("LongPathsEnabled")
	return err == nil && v == 1
}
