package storage

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, written, err := store.SaveStream("files/000001/quote.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	require.Equal(t, "files/000001/quote.pdf", name)
	require.Equal(t, int64(len("pdf-bytes")), written)

	file, err := store.Open(name)
	require.NoError(t, err)
	payload, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	require.Equal(t, "pdf-bytes", string(payload))

	require.NoError(t, store.Delete(name))
	_, err = store.Open(name)
	require.Error(t, err)
}

func TestLocalStorageDeleteMissingFile(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Delete("files/absent.pdf"))
}

func TestLocalStorageResolveKeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	abs := dir + string(os.PathSeparator) + "direct.bin"
	require.Equal(t, abs, store.Path(abs))
}
