// Package controller implements a controller for the todo contract.
package controller

import (
	"github.com/todoledger/todoledger/contracts/todo"
	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/core/execution/native"
	"github.com/todoledger/todoledger/core/store"
	"golang.org/x/xerrors"
)

// aKey is the access key used for the todo contract.
var aKey = [32]byte{2}

// Controller initializes the todo contract when the node starts.
type Controller struct{}

// NewController creates a new minimal controller for the todo contract.
func NewController() Controller {
	return Controller{}
}

// OnStart registers the todo contract to the execution service and grants the
// owner identity the access to it. It returns the registered contract.
func (ctrl Controller) OnStart(exec *native.Service, srvc access.Service,
	snap store.Snapshot, owner access.Identity) (todo.Contract, error) {

	contract := todo.NewContract(aKey[:], srvc)

	todo.RegisterContract(exec, contract)

	err := srvc.Grant(snap, todo.NewCreds(aKey[:]), owner)
	if err != nil {
		return todo.Contract{}, xerrors.Errorf("failed to grant owner: %v", err)
	}

	return contract, nil
}
