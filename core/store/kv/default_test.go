package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestBoltDB_UpdateAndView(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	defer db.Close()

	bucket := []byte("bucket")

	err = db.Update(bucket, func(b Bucket) error {
		return b.Set([]byte("ping"), []byte("pong"))
	})
	require.NoError(t, err)

	err = db.View(bucket, func(b Bucket) error {
		require.Equal(t, []byte("pong"), b.Get([]byte("ping")))

		return nil
	})
	require.NoError(t, err)

	err = db.View([]byte("unknown"), func(Bucket) error {
		return nil
	})
	require.EqualError(t, err, "bucket '756e6b6e6f776e' not found")
}

func TestBoltDB_Abort(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	defer db.Close()

	bucket := []byte("bucket")

	err = db.Update(bucket, func(b Bucket) error {
		require.NoError(t, b.Set([]byte("ping"), []byte("pong")))

		return xerrors.New("oops")
	})
	require.EqualError(t, err, "oops")

	err = db.Update(bucket, func(b Bucket) error {
		require.Nil(t, b.Get([]byte("ping")))

		return nil
	})
	require.NoError(t, err)
}

func TestBoltDB_Scan(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	defer db.Close()

	bucket := []byte("bucket")

	err = db.Update(bucket, func(b Bucket) error {
		require.NoError(t, b.Set([]byte("task:1"), []byte("a")))
		require.NoError(t, b.Set([]byte("task:2"), []byte("b")))
		require.NoError(t, b.Set([]byte("other"), []byte("c")))

		return nil
	})
	require.NoError(t, err)

	keys := [][]byte{}

	err = db.View(bucket, func(b Bucket) error {
		return b.Scan([]byte("task:"), func(k, v []byte) error {
			keys = append(keys, append([]byte{}, k...))

			return nil
		})
	})
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("task:1"), []byte("task:2")}, keys)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	defer db.Close()

	err = db.Update([]byte("bucket"), func(b Bucket) error {
		snap := NewSnapshot(b)

		err := snap.Set([]byte("ping"), []byte("pong"))
		require.NoError(t, err)

		value, err := snap.Get([]byte("ping"))
		require.NoError(t, err)
		require.Equal(t, []byte("pong"), value)

		err = snap.Delete([]byte("ping"))
		require.NoError(t, err)

		value, err = snap.Get([]byte("ping"))
		require.NoError(t, err)
		require.Nil(t, value)

		return nil
	})
	require.NoError(t, err)
}
