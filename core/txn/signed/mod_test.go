package signed

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/core/txn"
	"github.com/todoledger/todoledger/crypto/ed25519"
	"github.com/todoledger/todoledger/internal/testing/fake"
	"golang.org/x/xerrors"
)

func TestTransaction_New(t *testing.T) {
	tx, err := NewTransaction(0, fake.PublicKey{}, WithArg("ping", []byte("pong")))
	require.NoError(t, err)
	require.Equal(t, []byte("pong"), tx.GetArg("ping"))
	require.Nil(t, tx.GetArg("unknown"))
	require.Equal(t, uint64(0), tx.GetNonce())
	require.Len(t, tx.GetID(), 32)

	_, err = NewTransaction(0, fake.NewBadPublicKey())
	require.EqualError(t, err,
		"couldn't fingerprint tx: couldn't marshal public key: fake error")
}

func TestTransaction_Signed(t *testing.T) {
	signer := ed25519.NewSigner()

	tx, err := NewTransaction(5, signer.GetPublicKey())
	require.NoError(t, err)

	sig, err := signer.Sign(tx.GetID())
	require.NoError(t, err)

	tx, err = NewTransaction(5, signer.GetPublicKey(), WithSignature(sig))
	require.NoError(t, err)
	require.True(t, sig.Equal(tx.GetSignature()))

	// A signature over a different digest must be refused.
	other, err := signer.Sign([]byte("deadbeef"))
	require.NoError(t, err)

	_, err = NewTransaction(5, signer.GetPublicKey(), WithSignature(other))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid signature")
}

func TestTransaction_Fingerprint_Deterministic(t *testing.T) {
	a, err := NewTransaction(1, fake.PublicKey{},
		WithArg("a", []byte{1}), WithArg("b", []byte{2}))
	require.NoError(t, err)

	b, err := NewTransaction(1, fake.PublicKey{},
		WithArg("b", []byte{2}), WithArg("a", []byte{1}))
	require.NoError(t, err)

	require.Equal(t, a.GetID(), b.GetID())

	c, err := NewTransaction(2, fake.PublicKey{},
		WithArg("a", []byte{1}), WithArg("b", []byte{2}))
	require.NoError(t, err)

	require.NotEqual(t, a.GetID(), c.GetID())
}

func TestManager_Make(t *testing.T) {
	signer := ed25519.NewSigner()

	mgr := NewManager(signer, fakeClient{nonce: 42})

	tx, err := mgr.Make(txn.Arg{Key: "ping", Value: []byte("pong")})
	require.NoError(t, err)
	require.Equal(t, uint64(0), tx.GetNonce())
	require.Equal(t, []byte("pong"), tx.GetArg("ping"))

	tx, err = mgr.Make()
	require.NoError(t, err)
	require.Equal(t, uint64(1), tx.GetNonce())

	mgr = NewManager(fake.NewBadSigner(), fakeClient{})

	_, err = mgr.Make()
	require.EqualError(t, err, fake.Err("failed to sign"))
}

func TestManager_Sync(t *testing.T) {
	mgr := NewManager(ed25519.NewSigner(), fakeClient{nonce: 42})

	err := mgr.Sync()
	require.NoError(t, err)

	tx, err := mgr.Make()
	require.NoError(t, err)
	require.Equal(t, uint64(42), tx.GetNonce())

	mgr = NewManager(ed25519.NewSigner(), fakeClient{err: xerrors.New("oops")})

	err = mgr.Sync()
	require.EqualError(t, err, "failed to fetch the nonce: oops")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeClient struct {
	nonce uint64
	err   error
}

func (c fakeClient) GetNonce(access.Identity) (uint64, error) {
	return c.nonce, c.err
}
