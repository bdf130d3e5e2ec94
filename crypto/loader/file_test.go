package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestFileLoader_LoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.key")

	loader := NewFileLoader(path)

	data, err := loader.LoadOrCreate(fakeGenerator{data: []byte("a key")})
	require.NoError(t, err)
	require.Equal(t, []byte("a key"), data)

	// The second call must load the stored key, not generate a new one.
	data, err = loader.LoadOrCreate(fakeGenerator{data: []byte("another key")})
	require.NoError(t, err)
	require.Equal(t, []byte("a key"), data)
}

func TestFileLoader_LoadOrCreate_GeneratorFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.key")

	loader := NewFileLoader(path)

	_, err := loader.LoadOrCreate(fakeGenerator{err: xerrors.New("oops")})
	require.EqualError(t, err, "generator failed: oops")

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileLoader_Load(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "private.key"))

	_, err := loader.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "while opening file")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeGenerator struct {
	data []byte
	err  error
}

func (g fakeGenerator) Generate() ([]byte, error) {
	return g.data, g.err
}
