package longpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the duration of a test, restoring
// the previous one on cleanup (stand-in for t.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

// buildTree creates base/deep/deeper/{leaf.txt}, base/short.txt and returns
// a limit that classifies everything under deep as overlong.
func buildScanTree(t *testing.T, fsys Fs) (base string, limit int) {
	t.Helper()
	base = t.TempDir()

	deep := filepath.Join(base, "deep", "deeper")
	require.NoError(t, fsys.MkdirAll(deep, 0o755))
	require.NoError(t, WriteFile(fsys, filepath.Join(deep, "leaf.txt"), []byte("x"), 0o644))
	require.NoError(t, WriteFile(fsys, filepath.Join(base, "short.txt"), []byte("x"), 0o644))

	// only leaf.txt reaches the file limit, and only the deeper directory
	// reaches the directory limit twelve characters below it
	return base, len(filepath.Join(base, "deep", "deeper", "leaf.txt"))
}

func TestListLongPaths(t *testing.T) {
	fsys := NewOsFs()
	base, limit := buildScanTree(t, fsys)

	long, err := ListLongPaths(fsys, base, limit)
	require.NoError(t, err)

	want := []string{
		filepath.Join(base, "deep", "deeper", "leaf.txt"),
		filepath.Join(base, "deep", "deeper"),
	}
	assert.Equal(t, want, long, "deepest entries first, short entries absent")
}

func TestListLongPathsRelativeRoot(t *testing.T) {
	fsys := NewOsFs()
	base, _ := buildScanTree(t, fsys)
	chdir(t, base)

	// measure from the working directory, not the tree we built: on some
	// platforms the temp dir is reached through a symlink and the two
	// spellings differ in length
	wd, err := os.Getwd()
	require.NoError(t, err)
	limit := len(filepath.Join(wd, "deep", "deeper", "leaf.txt"))

	long, err := ListLongPaths(fsys, ".", limit)
	require.NoError(t, err)

	want := []string{
		filepath.Join(wd, "deep", "deeper", "leaf.txt"),
		filepath.Join(wd, "deep", "deeper"),
	}
	assert.Equal(t, want, long, "entries are measured and reported by absolute path")
}

func TestListLongPathsDirectoryLimit(t *testing.T) {
	fsys := NewOsFs()
	base := t.TempDir()
	require.NoError(t, fsys.Mkdir(filepath.Join(base, "dddddddddd"), 0o755))
	require.NoError(t, WriteFile(fsys, filepath.Join(base, "ffffffffff"), nil, 0o644))

	// same length, but a directory hits its limit twelve characters
	// before a file does
	limit := len(filepath.Join(base, "dddddddddd")) + 4
	long, err := ListLongPaths(fsys, base, limit)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(base, "dddddddddd")}, long)
}

func TestCleanLongPaths(t *testing.T) {
	fsys := NewOsFs()
	base, limit := buildScanTree(t, fsys)

	removed, err := CleanLongPaths(fsys, base, limit, nil)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	// the short entries survive
	exists, err := Exists(fsys, filepath.Join(base, "short.txt"))
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = Exists(fsys, filepath.Join(base, "deep"))
	require.NoError(t, err)
	assert.True(t, exists, "a directory under the limit is not cleaned")
	exists, err = Exists(fsys, filepath.Join(base, "deep", "deeper"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCleanLongPathsDeclined(t *testing.T) {
	fsys := NewOsFs()
	base, limit := buildScanTree(t, fsys)

	leaf := filepath.Join(base, "deep", "deeper", "leaf.txt")
	removed, err := CleanLongPaths(fsys, base, limit, func(path string) bool {
		return path != leaf
	})
	require.NoError(t, err)
	assert.Empty(t, removed, "directories above a kept file must stay")

	exists, err := Exists(fsys, leaf)
	require.NoError(t, err)
	assert.True(t, exists, "declined file must not be removed")
}

func TestOverlong(t *testing.T) {
	if Overlong(`C:\short`, false) {
		t.Error("short path reported overlong")
	}
	p := `C:\`
	for len(p) < MaxPath {
		p += `a`
	}
	if !Overlong(p, false) {
		t.Error("overlong file path not reported")
	}
	if !Overlong(p[:MaxDirPath], true) {
		t.Error("overlong directory path not reported")
	}
	if Overlong(p[:MaxDirPath], false) {
		t.Error("directory limit applied to a file path")
	}
}

func TestListLongPathsMissingRoot(t *testing.T) {
	fsys := NewOsFs()
	_, err := ListLongPaths(fsys, filepath.Join(t.TempDir(), "nope"), 10)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
