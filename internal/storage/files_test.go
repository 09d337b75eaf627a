package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/legalfox/legalfox-backend/internal/entity"
)

func TestSaveAndResolve(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("contract", ".pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "contract_"))
	require.True(t, strings.HasSuffix(name, ".pdf"))

	path, err := store.Resolve(name)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 test", string(data))
}

func TestResolveUnknownName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Resolve("contract_never-rendered.pdf")
	require.ErrorIs(t, err, entity.ErrFileNotFound)
}

func TestResolveRejectsPathTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../secret.txt", "a/b.pdf", `..\b.pdf`} {
		_, err := store.Resolve(name)
		require.ErrorIs(t, err, entity.ErrInvalidFileName, "name=%q", name)
	}
}

func TestSaveNamesAreUnique(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save("contract", ".pdf", []byte("a"))
	require.NoError(t, err)
	b, err := store.Save("contract", ".pdf", []byte("b"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
