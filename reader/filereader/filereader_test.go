package filereader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReadSeek(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	size, ok := r.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(11), size)

	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	require.NoError(t, r.Seek(6))
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf[:n]))

	n, err = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	size, ok := r.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(0), size)

	buf := make([]byte, 1)
	n, err := r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestOpenRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir)
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSeekOutOfRangeRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Error(t, r.Seek(-1))
	assert.Error(t, r.Seek(100))
}
