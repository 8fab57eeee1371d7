package imagestore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveWritesFileAndReturnsPublicPath(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(strings.NewReader("image-bytes"), "front.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, PublicPrefix))
	assert.True(t, strings.HasSuffix(path, "_front.png"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), strings.TrimPrefix(path, PublicPrefix)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(strings.NewReader("one"), "photo.png")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("two"), "photo.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveStripsPathComponents(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, "_passwd"))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}

func TestSaveEmptyStream(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(strings.NewReader(""), "empty.png")
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = store.Save(nil, "nil.png")
	assert.ErrorIs(t, err, ErrNoImage)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "empty uploads must not leave files behind")
}

func TestSaveFailedWriteLeavesNoPartialFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(iotest.ErrReader(errors.New("disk failure")), "broken.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoImage)
	assert.Contains(t, err.Error(), "disk failure")

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed write must not leave a partial file behind")
}

func TestSaveFailsWhenDirectoryMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = store.Save(strings.NewReader("x"), "photo.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoImage)
}

func TestSaveBlankFilenameFallsBack(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(strings.NewReader("x"), "   ")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_upload"))
}
