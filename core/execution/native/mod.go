// Package native implements an execution service to run native smart
// contracts.
//
// A native smart contract is written in Go and packaged with the application.
package native

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/todoledger/todoledger/core/execution"
	"github.com/todoledger/todoledger/core/store"
	"golang.org/x/xerrors"
)

const (
	// ContractArg is the argument key in the transaction to look up a
	// contract.
	ContractArg = "github.com/todoledger/todoledger.ContractArg"
)

var txCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "todoledger",
	Name:      "executed_transactions_total",
	Help:      "number of executed transactions by result",
}, []string{"result"})

// Contract is the interface to implement to register a smart contract that
// will be executed natively.
type Contract interface {
	Execute(store.Snapshot, execution.Step) error
}

// Service is an execution service for packaged applications. Those
// applications have complete access to the snapshot and can directly update
// it.
//
// - implements execution.Service
type Service struct {
	contracts map[string]Contract
}

// NewExecution returns a new native execution. The contracts registered to the
// service can be triggered by the incoming transactions.
func NewExecution() *Service {
	return &Service{
		contracts: map[string]Contract{},
	}
}

// Set stores the contract using the name as the key. A transaction can trigger
// this contract by using the same name as the contract argument.
func (ns *Service) Set(name string, contract Contract) {
	ns.contracts[name] = contract
}

// Execute implements execution.Service. It looks up the contract targeted by
// the transaction, runs it and returns the result. A contract error rejects
// the transaction but is not an execution error, so that the caller can roll
// back the snapshot and report the abort reason to the submitter.
func (ns *Service) Execute(snap store.Snapshot, step execution.Step) (execution.Result, error) {
	name := string(step.Current.GetArg(ContractArg))

	contract := ns.contracts[name]
	if contract == nil {
		return execution.Result{}, xerrors.Errorf("unknown contract '%s'", name)
	}

	res := execution.Result{
		Accepted: true,
	}

	err := contract.Execute(snap, step)
	if err != nil {
		res.Accepted = false
		res.Message = err.Error()

		txCounter.WithLabelValues("rejected").Inc()

		return res, nil
	}

	txCounter.WithLabelValues("accepted").Inc()

	return res, nil
}
