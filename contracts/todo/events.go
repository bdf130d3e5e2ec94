// This file contains the append-only event log of a todo list.
//
// The log entries and their count are stored next to the list so that they are
// committed, or rolled back, together with the task records of the same
// transaction. Live observers are notified through the contract watcher once
// the entry is written.

package todo

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/rs/xid"
	"github.com/todoledger/todoledger/core/store"
	"golang.org/x/xerrors"
)

const watchBufferSize = 100

// EventCount returns the number of events appended to the event log of the
// identity so far.
func EventCount(snap store.Readable, ident []byte) (uint64, error) {
	data, err := snap.Get(eventCountKey(ident))
	if err != nil {
		return 0, xerrors.Errorf("failed to get event count: %v", err)
	}

	if len(data) == 0 {
		return 0, nil
	}

	return binary.BigEndian.Uint64(data), nil
}

// GetEvent returns the event at the given sequence number, starting at 1.
func GetEvent(snap store.Readable, ident []byte, seq uint64) (TaskEvent, error) {
	data, err := snap.Get(eventKey(ident, seq))
	if err != nil {
		return TaskEvent{}, xerrors.Errorf("failed to get event: %v", err)
	}

	if len(data) == 0 {
		return TaskEvent{}, xerrors.Errorf("no event at sequence %d", seq)
	}

	event := TaskEvent{}

	err = json.Unmarshal(data, &event)
	if err != nil {
		return TaskEvent{}, xerrors.Errorf("failed to deserialize event: %v", err)
	}

	return event, nil
}

// appendEvent writes the task to the event log of the identity and returns the
// event. The sequence number of the log entry is the task identifier, which
// keeps the count of entries equal to the counter of the list.
func appendEvent(snap store.Snapshot, ident []byte, task Task) (TaskEvent, error) {
	count, err := EventCount(snap, ident)
	if err != nil {
		return TaskEvent{}, err
	}

	event := TaskEvent{
		ID:   xid.New().String(),
		Task: task,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return TaskEvent{}, xerrors.Errorf("failed to serialize event: %v", err)
	}

	err = snap.Set(eventKey(ident, count+1), data)
	if err != nil {
		return TaskEvent{}, xerrors.Errorf("failed to set event: %v", err)
	}

	err = snap.Set(eventCountKey(ident), encodeID(count+1))
	if err != nil {
		return TaskEvent{}, xerrors.Errorf("failed to set event count: %v", err)
	}

	return event, nil
}

// observer catches the events of the watcher and pushes them to the channel.
//
// - implements core.Observer
type observer struct {
	ch chan TaskEvent
}

// NotifyCallback implements core.Observer. It pushes the event to the channel,
// or drops it if the channel is full.
func (o observer) NotifyCallback(event interface{}) {
	taskEvent, ok := event.(TaskEvent)
	if !ok {
		return
	}

	select {
	case o.ch <- taskEvent:
	default:
	}
}

// Watch returns a channel populated with the task events of the contract. The
// channel is closed when the context is done.
func (c Contract) Watch(ctx context.Context) <-chan TaskEvent {
	obs := observer{ch: make(chan TaskEvent, watchBufferSize)}

	c.events.Add(obs)

	go func() {
		<-ctx.Done()

		c.events.Remove(obs)
		close(obs.ch)
	}()

	return obs.ch
}
