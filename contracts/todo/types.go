// This file contains the records stored by the todo contract and the layout of
// their storage keys.
//
// Every record of a list is kept under a key derived from the text of the
// owner identity, so that the lists of two identities live in disjoint slots.

package todo

import (
	"encoding/binary"
	"encoding/json"

	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/core/store"
	"golang.org/x/xerrors"
)

// Task is a single entry of a todo list. The task identifier is the value of
// the list counter at creation time and is never reused.
type Task struct {
	TaskID    uint64 `json:"task_id"`
	Owner     string `json:"owner"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// TaskEvent is the event appended to the list event log when a task is
// created.
type TaskEvent struct {
	ID   string `json:"id"`
	Task Task   `json:"task"`
}

// listRecord is the root record of a todo list. Its presence marks the list as
// initialized. The counter equals the number of tasks ever created and doubles
// as the identifier of the most recent task.
type listRecord struct {
	TaskCounter uint64 `json:"task_counter"`
}

const (
	listPrefix       = "todo:list:"
	taskPrefix       = "todo:task:"
	eventPrefix      = "todo:event:"
	eventCountSuffix = ":count"
)

func identText(ident access.Identity) ([]byte, error) {
	text, err := ident.MarshalText()
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal identity: %v", err)
	}

	return text, nil
}

func listKey(ident []byte) []byte {
	return append([]byte(listPrefix), ident...)
}

func taskKey(ident []byte, id uint64) []byte {
	key := append([]byte(taskPrefix), ident...)
	key = append(key, ':')

	return append(key, encodeID(id)...)
}

func eventKey(ident []byte, seq uint64) []byte {
	key := append([]byte(eventPrefix), ident...)
	key = append(key, ':')

	return append(key, encodeID(seq)...)
}

func eventCountKey(ident []byte) []byte {
	key := append([]byte(eventPrefix), ident...)

	return append(key, []byte(eventCountSuffix)...)
}

// encodeID returns the big endian representation of the identifier so that a
// cursor scan of the keys follows the identifier order.
func encodeID(id uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, id)

	return buffer
}

func getList(snap store.Readable, ident []byte) (listRecord, bool, error) {
	data, err := snap.Get(listKey(ident))
	if err != nil {
		return listRecord{}, false, xerrors.Errorf("failed to get list: %v", err)
	}

	if len(data) == 0 {
		return listRecord{}, false, nil
	}

	record := listRecord{}

	err = json.Unmarshal(data, &record)
	if err != nil {
		return listRecord{}, false, xerrors.Errorf("failed to deserialize list: %v", err)
	}

	return record, true, nil
}

func setList(snap store.Snapshot, ident []byte, record listRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return xerrors.Errorf("failed to serialize list: %v", err)
	}

	err = snap.Set(listKey(ident), data)
	if err != nil {
		return xerrors.Errorf("failed to set list: %v", err)
	}

	return nil
}

func getTask(snap store.Readable, ident []byte, id uint64) (Task, bool, error) {
	data, err := snap.Get(taskKey(ident, id))
	if err != nil {
		return Task{}, false, xerrors.Errorf("failed to get task: %v", err)
	}

	if len(data) == 0 {
		return Task{}, false, nil
	}

	task := Task{}

	err = json.Unmarshal(data, &task)
	if err != nil {
		return Task{}, false, xerrors.Errorf("failed to deserialize task: %v", err)
	}

	return task, true, nil
}

func setTask(snap store.Snapshot, ident []byte, task Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return xerrors.Errorf("failed to serialize task: %v", err)
	}

	// An upsert on purpose: identifiers are never reused today, but the write
	// must stay valid if the identifier policy ever changes.
	err = snap.Set(taskKey(ident, task.TaskID), data)
	if err != nil {
		return xerrors.Errorf("failed to set task: %v", err)
	}

	return nil
}
