package export

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Source Cache:
// - Lines() splits a file into lines with terminators stripped
// - CRLF and lone CR terminators are normalized
// - A missing file reports fs.ErrNotExist
// - Repeated reads return identical content

func TestSourceCache_Lines(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("x=1\nabcdef\ny=2"), 0644))

	cache, err := NewSourceCache(root)
	require.NoError(t, err)
	defer cache.Close()

	lines, err := cache.Lines("a.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"x=1", "abcdef", "y=2"}, lines)
}

func TestSourceCache_NormalizesLineEndings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "dos.txt"), []byte("a\r\nb\rc\n"), 0644))

	cache, err := NewSourceCache(root)
	require.NoError(t, err)
	defer cache.Close()

	lines, err := cache.Lines("dos.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", ""}, lines)
}

func TestSourceCache_MissingFile(t *testing.T) {
	t.Parallel()

	cache, err := NewSourceCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Lines("gone.py")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSourceCache_RepeatedReads(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("stable"), 0644))

	cache, err := NewSourceCache(root)
	require.NoError(t, err)
	defer cache.Close()

	first, err := cache.Lines("a.py")
	require.NoError(t, err)
	second, err := cache.Lines("a.py")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
