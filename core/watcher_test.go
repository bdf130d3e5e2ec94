package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWatcher_Notify(t *testing.T) {
	watcher := NewWatcher()

	obs := &fakeObserver{}
	watcher.Add(obs)

	watcher.Notify("ping")
	require.Equal(t, []interface{}{"ping"}, obs.events)

	watcher.Remove(obs)

	watcher.Notify("pong")
	require.Equal(t, []interface{}{"ping"}, obs.events)
}

type fakeObserver struct {
	events []interface{}
}

func (o *fakeObserver) NotifyCallback(event interface{}) {
	o.events = append(o.events, event)
}
