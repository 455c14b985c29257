package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesIntermediateDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := NewStore(root)

	require.NoError(t, s.Write("build/tools/editor.md", []byte("# Editor\n")))

	data, err := os.ReadFile(filepath.Join(root, "build", "tools", "editor.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Editor\n", string(data))
}

func TestWriteOverwritesExisting(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))

	require.NoError(t, s.Write("intro.md", []byte("old")))
	require.NoError(t, s.Write("intro.md", []byte("new")))

	data, err := os.ReadFile(filepath.Join(s.Root(), "intro.md"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := NewStore(root)

	require.NoError(t, s.Write("a/b.md", []byte("content")))

	entries, err := os.ReadDir(filepath.Join(root, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.md", entries[0].Name())
}

func TestWriteRejectsEscapingPaths(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))

	assert.Error(t, s.Write("../outside.md", []byte("x")))
	assert.Error(t, s.Write("a/../../outside.md", []byte("x")))
	assert.Error(t, s.Write("", []byte("x")))
}

func TestWriteBinaryContent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))
	payload := []byte{0xff, 0xfe, 0x00, 0x01}

	require.NoError(t, s.Write("asset.md", payload))

	data, err := os.ReadFile(filepath.Join(s.Root(), "asset.md"))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestAge(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := NewStore(root)

	_, ok := s.Age("missing.md")
	assert.False(t, ok)

	require.NoError(t, s.Write("intro.md", []byte("x")))

	age, ok := s.Age("intro.md")
	require.True(t, ok)
	assert.Less(t, age, time.Minute)

	// Backdated file reports its real age.
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "intro.md"), past, past))

	age, ok = s.Age("intro.md")
	require.True(t, ok)
	assert.Greater(t, age, time.Hour)
}

func TestAgeIgnoresDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := NewStore(root)
	require.NoError(t, s.Write("sub/page.md", []byte("x")))

	_, ok := s.Age("sub")
	assert.False(t, ok)
}

func TestExistsAndClear(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := NewStore(root)

	assert.False(t, s.Exists())

	require.NoError(t, s.Write("intro.md", []byte("x")))
	assert.True(t, s.Exists())

	require.NoError(t, s.Clear())
	assert.False(t, s.Exists())
}
