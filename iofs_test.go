package longpath

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIOFS(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, testFS.MkdirAll("docs", 0o755))
	require.NoError(t, WriteFile(testFS, "docs/readme.txt", []byte("hello"), 0o644))

	iofs := NewIOFS(NewOsLongPathFs())

	data, err := iofs.ReadFile("docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := iofs.ReadDir("docs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "readme.txt", entries[0].Name())
	assert.False(t, entries[0].IsDir())

	f, err := iofs.Open("docs/readme.txt")
	require.NoError(t, err)
	defer f.Close()
	fi, err := f.Stat()
	require.NoError(t, err)
	assert.EqualValues(t, 5, fi.Size())
}

func TestIOFSInvalidPath(t *testing.T) {
	iofs := NewIOFS(NewOsFs())

	_, err := iofs.Open("../outside")
	require.Error(t, err)

	var pe *fs.PathError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, fs.ErrInvalid)
}
