package walk

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkReturnsSortedRegularFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "y"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "x"), []byte("2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "z"), []byte("3"), 0o644))

	res, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x", "a/y", "z"}, res.Files)
	assert.Empty(t, res.Errors)
}

func TestWalkSkipsSymlinksByDefault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevated privileges on windows")
	}
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "real"), []byte("1"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	res, err := Walk(root, Options{FollowSymlinks: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, res.Files)
}

func TestWalkFollowsSymlinksWhenAsked(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevated privileges on windows")
	}
	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "file"), []byte("1"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link")))

	res, err := Walk(root, Options{FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"link/file"}, res.Files)
}

func TestWalkDetectsSymlinkCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevated privileges on windows")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	res, err := Walk(root, Options{FollowSymlinks: true})
	require.NoError(t, err) // cycle is skipped silently, not an error
	assert.Empty(t, res.Files)
}
