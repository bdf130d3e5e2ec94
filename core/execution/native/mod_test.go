package native

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todoledger/todoledger/core/execution"
	"github.com/todoledger/todoledger/core/store"
	"github.com/todoledger/todoledger/core/txn/signed"
	"github.com/todoledger/todoledger/internal/testing/fake"
)

func TestService_Execute(t *testing.T) {
	srvc := NewExecution()
	srvc.Set("abc", fakeContract{})

	res, err := srvc.Execute(fake.NewSnapshot(), makeStep(t, "abc"))
	require.NoError(t, err)
	require.True(t, res.Accepted)

	srvc.Set("bad", fakeContract{err: fake.GetError()})

	res, err = srvc.Execute(fake.NewSnapshot(), makeStep(t, "bad"))
	require.NoError(t, err)
	require.False(t, res.Accepted)
	require.Equal(t, fake.GetError().Error(), res.Message)

	_, err = srvc.Execute(fake.NewSnapshot(), makeStep(t, "unknown"))
	require.EqualError(t, err, "unknown contract 'unknown'")
}

// -----------------------------------------------------------------------------
// Utility functions

func makeStep(t *testing.T, contract string) execution.Step {
	tx, err := signed.NewTransaction(0, fake.PublicKey{},
		signed.WithArg(ContractArg, []byte(contract)))
	require.NoError(t, err)

	return execution.Step{Current: tx}
}

type fakeContract struct {
	err error
}

func (c fakeContract) Execute(store.Snapshot, execution.Step) error {
	return c.err
}
