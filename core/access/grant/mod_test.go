package grant

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/internal/testing/fake"
)

func TestService_Match(t *testing.T) {
	srvc := NewService()

	creds := access.NewContractCreds([]byte{1}, "Todo", "all")

	snap := fake.NewSnapshot()

	err := srvc.Match(snap, creds, fake.PublicKey{})
	require.EqualError(t, err, "access 'Todo:all' not found")

	err = srvc.Grant(snap, creds, fake.PublicKey{})
	require.NoError(t, err)

	err = srvc.Match(snap, creds, fake.PublicKey{})
	require.NoError(t, err)

	err = srvc.Match(fake.NewBadSnapshot(), creds, fake.PublicKey{})
	require.EqualError(t, err, fake.Err("couldn't read access: store failed"))
}

func TestService_Match_UnknownIdentity(t *testing.T) {
	srvc := NewService()

	creds := access.NewContractCreds([]byte{1}, "Todo", "all")

	snap := fake.NewSnapshot()

	err := srvc.Grant(snap, creds, fake.PublicKey{})
	require.NoError(t, err)

	err = srvc.Match(snap, creds, otherIdentity{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not granted for 'Todo:all'")
}

func TestService_Grant(t *testing.T) {
	srvc := NewService()

	creds := access.NewContractCreds([]byte{1}, "Todo", "all")

	err := srvc.Grant(fake.NewBadSnapshot(), creds, fake.PublicKey{})
	require.EqualError(t, err, fake.Err("couldn't read access: store failed"))

	err = srvc.Grant(fake.NewSnapshot(), creds, fake.NewBadPublicKey())
	require.EqualError(t, err, fake.Err("couldn't encode identity: marshal failed"))

	// Granting twice the same identity must be idempotent.
	snap := fake.NewSnapshot()

	err = srvc.Grant(snap, creds, fake.PublicKey{})
	require.NoError(t, err)
	err = srvc.Grant(snap, creds, fake.PublicKey{})
	require.NoError(t, err)

	err = srvc.Match(snap, creds, fake.PublicKey{})
	require.NoError(t, err)
}

// -----------------------------------------------------------------------------
// Utility functions

type otherIdentity struct{}

func (otherIdentity) MarshalText() ([]byte, error) {
	return []byte("other"), nil
}

func (otherIdentity) Equal(other interface{}) bool {
	_, ok := other.(otherIdentity)

	return ok
}
