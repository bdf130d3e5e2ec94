package controller

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todoledger/todoledger/contracts/todo"
	"github.com/todoledger/todoledger/core/access/grant"
	"github.com/todoledger/todoledger/core/execution/native"
	"github.com/todoledger/todoledger/internal/testing/fake"
)

func TestController_OnStart(t *testing.T) {
	ctrl := NewController()

	exec := native.NewExecution()
	srvc := grant.NewService()

	snap := fake.NewSnapshot()

	_, err := ctrl.OnStart(exec, srvc, snap, fake.PublicKey{})
	require.NoError(t, err)

	// The owner must now be authorized to use the contract.
	err = srvc.Match(snap, todo.NewCreds(aKey[:]), fake.PublicKey{})
	require.NoError(t, err)

	_, err = ctrl.OnStart(native.NewExecution(), srvc, fake.NewBadSnapshot(), fake.PublicKey{})
	require.EqualError(t, err,
		fake.Err("failed to grant owner: couldn't read access: store failed"))
}
