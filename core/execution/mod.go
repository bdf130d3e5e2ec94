// Package execution defines the service to execute the smart contracts.
package execution

import (
	"github.com/todoledger/todoledger/core/store"
	"github.com/todoledger/todoledger/core/txn"
)

// Step is the input of a smart contract execution. It gives the transaction to
// execute and the previous transactions of the same batch that have already
// been accepted.
type Step struct {
	Previous []txn.Transaction

	Current txn.Transaction
}

// Result is the result of a transaction execution.
type Result struct {
	// Accepted is the success state of the transaction.
	Accepted bool

	// Message gives a chance to the execution to explain why a transaction has
	// failed.
	Message string
}

// Service is the execution service that defines the primitives to execute a
// transaction.
type Service interface {
	// Execute must apply the transaction to the snapshot and return the result
	// of it.
	Execute(snap store.Snapshot, step Step) (Result, error)
}
