// Package todo implements a native contract that stores a todo list per
// identity.
//
// An identity first initializes its list, then appends tasks to it and marks
// them as completed. The list of an identity is stored in its own storage
// slot, so a transaction can only ever address the tasks of its signer.
package todo

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/todoledger/todoledger"
	"github.com/todoledger/todoledger/core"
	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/core/execution"
	"github.com/todoledger/todoledger/core/execution/native"
	"github.com/todoledger/todoledger/core/store"
	"golang.org/x/xerrors"
)

// commands defines the commands of the todo contract. This interface helps in
// testing the contract.
type commands interface {
	initList(snap store.Snapshot, step execution.Step) error
	createTask(snap store.Snapshot, step execution.Step) error
	completeTask(snap store.Snapshot, step execution.Step) error
	read(snap store.Snapshot, step execution.Step) error
	list(snap store.Snapshot, step execution.Step) error
}

const (
	// ContractName is the name of the contract.
	ContractName = "github.com/todoledger/todoledger.Todo"

	// ContentArg is the argument's name in the transaction that contains the
	// content of the task to create.
	ContentArg = "todo:content"

	// TaskIDArg is the argument's name in the transaction that contains the
	// identifier of the task to complete or to read.
	TaskIDArg = "todo:task_id"

	// CmdArg is the argument's name to indicate the kind of command we want to
	// run on the contract. Should be one of the Command type.
	CmdArg = "todo:command"

	// credentialAllCommand defines the credential command that is allowed to
	// perform all commands.
	credentialAllCommand = "all"
)

// Command defines a type of command for the todo contract.
type Command string

const (
	// CmdInit defines the command to initialize a todo list.
	CmdInit Command = "INIT"

	// CmdCreate defines the command to append a task to the list.
	CmdCreate Command = "CREATE"

	// CmdComplete defines the command to mark a task as completed.
	CmdComplete Command = "COMPLETE"

	// CmdRead defines a command to display a single task.
	CmdRead Command = "READ"

	// CmdList defines a command to display the whole list.
	CmdList Command = "LIST"
)

// The abort reasons of the contract. A rejected transaction carries one of
// them in its result message and leaves the storage untouched.
var (
	// ErrAlreadyInitialized is returned when the identity already has a list.
	ErrAlreadyInitialized = xerrors.New("todo list already initialized")

	// ErrNotInitialized is returned when the identity has no list yet.
	ErrNotInitialized = xerrors.New("todo list not initialized")

	// ErrTaskNotFound is returned when the task identifier is not in the list
	// of the identity.
	ErrTaskNotFound = xerrors.New("task not found")

	// ErrAlreadyCompleted is returned when the task is already completed.
	ErrAlreadyCompleted = xerrors.New("task already completed")
)

// NewCreds creates new credentials for a todo contract execution. We might
// want to use in the future a separate credential for each command.
func NewCreds(id []byte) access.Credential {
	return access.NewContractCreds(id, ContractName, credentialAllCommand)
}

// RegisterContract registers the todo contract to the given execution service.
func RegisterContract(exec *native.Service, c Contract) {
	exec.Set(ContractName, c)
}

// Contract is a smart contract that stores one todo list per identity.
//
// - implements native.Contract
type Contract struct {
	// access is the access control service managing this smart contract
	access access.Service

	// accessKey is the access identifier allowed to use this smart contract
	accessKey []byte

	// cmd provides the commands that can be executed by this smart contract
	cmd commands

	// printer is the output used by the READ and LIST commands
	printer io.Writer

	// events notifies the live observers of the task events
	events *core.Watcher
}

// NewContract creates a new todo contract.
func NewContract(aKey []byte, srvc access.Service) Contract {
	contract := Contract{
		access:    srvc,
		accessKey: aKey,
		printer:   infoLog{},
		events:    core.NewWatcher(),
	}

	contract.cmd = todoCommand{Contract: &contract}

	return contract
}

// Execute implements native.Contract. It runs the appropriate command.
func (c Contract) Execute(snap store.Snapshot, step execution.Step) error {
	creds := NewCreds(c.accessKey)

	err := c.access.Match(snap, creds, step.Current.GetIdentity())
	if err != nil {
		return xerrors.Errorf("identity not authorized: %v (%v)",
			step.Current.GetIdentity(), err)
	}

	cmd := step.Current.GetArg(CmdArg)
	if len(cmd) == 0 {
		return xerrors.Errorf("'%s' not found in tx arg", CmdArg)
	}

	switch Command(cmd) {
	case CmdInit:
		err := c.cmd.initList(snap, step)
		if err != nil {
			return xerrors.Errorf("failed to INIT: %w", err)
		}
	case CmdCreate:
		err := c.cmd.createTask(snap, step)
		if err != nil {
			return xerrors.Errorf("failed to CREATE: %w", err)
		}
	case CmdComplete:
		err := c.cmd.completeTask(snap, step)
		if err != nil {
			return xerrors.Errorf("failed to COMPLETE: %w", err)
		}
	case CmdRead:
		err := c.cmd.read(snap, step)
		if err != nil {
			return xerrors.Errorf("failed to READ: %w", err)
		}
	case CmdList:
		err := c.cmd.list(snap, step)
		if err != nil {
			return xerrors.Errorf("failed to LIST: %w", err)
		}
	default:
		return xerrors.Errorf("unknown command: %s", cmd)
	}

	return nil
}

// todoCommand implements the commands of the todo contract.
//
// - implements commands
type todoCommand struct {
	*Contract
}

// initList implements commands. It performs the INIT command. It attaches an
// empty list to the identity of the transaction, unless one already exists.
func (c todoCommand) initList(snap store.Snapshot, step execution.Step) error {
	ident, err := identText(step.Current.GetIdentity())
	if err != nil {
		return err
	}

	_, found, err := getList(snap, ident)
	if err != nil {
		return err
	}

	if found {
		return ErrAlreadyInitialized
	}

	err = setList(snap, ident, listRecord{TaskCounter: 0})
	if err != nil {
		return err
	}

	todoledger.Logger.Info().Str("contract", ContractName).
		Msgf("initialized todo list of %s", ident)

	return nil
}

// createTask implements commands. It performs the CREATE command. The new task
// takes the next counter value as its identifier and a creation event is
// appended to the event log of the list.
func (c todoCommand) createTask(snap store.Snapshot, step execution.Step) error {
	ident, err := identText(step.Current.GetIdentity())
	if err != nil {
		return err
	}

	record, found, err := getList(snap, ident)
	if err != nil {
		return err
	}

	if !found {
		return ErrNotInitialized
	}

	content := step.Current.GetArg(ContentArg)
	if len(content) == 0 {
		return xerrors.Errorf("'%s' not found in tx arg", ContentArg)
	}

	task := Task{
		TaskID:  record.TaskCounter + 1,
		Owner:   string(ident),
		Content: string(content),
	}

	err = setTask(snap, ident, task)
	if err != nil {
		return err
	}

	record.TaskCounter = task.TaskID

	err = setList(snap, ident, record)
	if err != nil {
		return err
	}

	event, err := appendEvent(snap, ident, task)
	if err != nil {
		return err
	}

	c.events.Notify(event)

	todoledger.Logger.Info().Str("contract", ContractName).
		Msgf("created task %d of %s", task.TaskID, ident)

	return nil
}

// completeTask implements commands. It performs the COMPLETE command. The
// completed flag of a task only ever goes from false to true.
func (c todoCommand) completeTask(snap store.Snapshot, step execution.Step) error {
	ident, err := identText(step.Current.GetIdentity())
	if err != nil {
		return err
	}

	_, found, err := getList(snap, ident)
	if err != nil {
		return err
	}

	if !found {
		return ErrNotInitialized
	}

	id, err := parseTaskID(step)
	if err != nil {
		return err
	}

	task, found, err := getTask(snap, ident, id)
	if err != nil {
		return err
	}

	if !found {
		return ErrTaskNotFound
	}

	if task.Completed {
		return ErrAlreadyCompleted
	}

	task.Completed = true

	err = setTask(snap, ident, task)
	if err != nil {
		return err
	}

	todoledger.Logger.Info().Str("contract", ContractName).
		Msgf("completed task %d of %s", task.TaskID, ident)

	return nil
}

// read implements commands. It performs the READ command.
func (c todoCommand) read(snap store.Snapshot, step execution.Step) error {
	ident, err := identText(step.Current.GetIdentity())
	if err != nil {
		return err
	}

	id, err := parseTaskID(step)
	if err != nil {
		return err
	}

	task, found, err := getTask(snap, ident, id)
	if err != nil {
		return err
	}

	if !found {
		return ErrTaskNotFound
	}

	fmt.Fprint(c.printer, formatTask(task))

	return nil
}

// list implements commands. It performs the LIST command.
func (c todoCommand) list(snap store.Snapshot, step execution.Step) error {
	ident, err := identText(step.Current.GetIdentity())
	if err != nil {
		return err
	}

	record, found, err := getList(snap, ident)
	if err != nil {
		return err
	}

	if !found {
		return ErrNotInitialized
	}

	res := make([]string, 0, record.TaskCounter)

	for id := uint64(1); id <= record.TaskCounter; id++ {
		task, found, err := getTask(snap, ident, id)
		if err != nil {
			return err
		}

		if !found {
			return ErrTaskNotFound
		}

		res = append(res, formatTask(task))
	}

	fmt.Fprint(c.printer, strings.Join(res, ","))

	return nil
}

func parseTaskID(step execution.Step) (uint64, error) {
	arg := step.Current.GetArg(TaskIDArg)
	if len(arg) == 0 {
		return 0, xerrors.Errorf("'%s' not found in tx arg", TaskIDArg)
	}

	id, err := strconv.ParseUint(string(arg), 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("failed to parse task id: %v", err)
	}

	return id, nil
}

func formatTask(task Task) string {
	return fmt.Sprintf("%d=%s[completed=%t]", task.TaskID, task.Content, task.Completed)
}

// infoLog defines an output using zerolog
//
// - implements io.Writer
type infoLog struct{}

func (h infoLog) Write(p []byte) (int, error) {
	todoledger.Logger.Info().Msg(string(p))

	return len(p), nil
}
