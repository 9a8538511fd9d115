package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, zerolog.Nop())
	require.NoError(t, err)
	return store, dir
}

func TestLocalStoragePutGetDelete(t *testing.T) {
	store, dir := newLocal(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "logo/acme.txt", strings.NewReader("hello"), 5, "text/plain"))
	_, err := os.Stat(filepath.Join(dir, "logo", "acme.txt"))
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "logo/acme.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, contentType, err := store.Get(ctx, "logo/acme.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Contains(t, contentType, "text/plain")

	require.NoError(t, store.Delete(ctx, "logo/acme.txt"))
	err = store.Delete(ctx, "logo/acme.txt")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, _, err = store.Get(ctx, "logo/acme.txt")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocalStorageKeysStayInsideBase(t *testing.T) {
	store, dir := newLocal(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "../../escape.txt", strings.NewReader("x"), 1, ""))
	_, err := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)

	_, err = cleanKey("..")
	assert.Error(t, err)
}

func TestLocalStoragePurgeOlderThan(t *testing.T) {
	store, dir := newLocal(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "old/qrcode.png", strings.NewReader("a"), 1, ""))
	require.NoError(t, store.Put(ctx, "new/qrcode.png", strings.NewReader("b"), 1, ""))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old"), past, past))

	removed, err := store.PurgeOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dir, "old"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "new", "qrcode.png"))
	assert.NoError(t, err)
}

func TestLocalStorageHealth(t *testing.T) {
	store, _ := newLocal(t)
	assert.NoError(t, store.Health(context.Background()))
}
