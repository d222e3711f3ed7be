//go:build windows

package longpath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end on a real Windows filesystem: every operation on a path past
// MAX_PATH must work through the gateway, and nothing visible to the caller
// may carry the extended prefix.
func TestGatewayLongPathsOnDisk(t *testing.T) {
	fsys := NewOsLongPathFs()

	base := t.TempDir()
	deep := base
	for len(deep) < MaxPath+40 {
		deep = filepath.Join(deep, "really-long-component")
	}
	require.NoError(t, fsys.MkdirAll(deep, 0o755))

	name := filepath.Join(deep, "file.txt")
	require.Greater(t, len(name), MaxPath)

	require.NoError(t, WriteFile(fsys, name, []byte("content"), 0o644))

	f, err := fsys.Open(name)
	require.NoError(t, err)
	assert.NotContains(t, f.Name(), ExtendedPrefix)
	require.NoError(t, f.Close())

	data, err := ReadFile(fsys, name)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	names, err := ReadDirNames(fsys, deep)
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, names, "listing entries are bare names")

	renamed := filepath.Join(deep, "renamed.txt")
	require.NoError(t, fsys.Rename(name, renamed))
	_, err = fsys.Stat(name)
	assert.True(t, os.IsNotExist(err))

	_, err = fsys.Stat(filepath.Join(deep, "absent.txt"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, strings.Contains(err.Error(), ExtendedPrefix),
		"error text must show the short form")

	require.NoError(t, fsys.Remove(renamed))
}
