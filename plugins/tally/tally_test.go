package tally

import (
	"errors"
	"testing"

	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/plugin"
	"github.com/bethropolis/med/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyCountsEvents(t *testing.T) {
	api := plugintest.New()
	p := New().(*Tally)
	require.NoError(t, p.Initialize(api))

	api.DispatchEvent(event.TypeEditRecorded, event.EditRecordedData{Node: 0, Parent: -1, Nodes: 1})
	api.DispatchEvent(event.TypeEditRecorded, event.EditRecordedData{Node: 1, Parent: 0, Nodes: 2})
	api.DispatchEvent(event.TypeUndo, event.HistoryMovedData{From: 1, To: 0})
	api.DispatchEvent(event.TypeRedo, event.HistoryMovedData{From: 0, To: 1})
	api.DispatchEvent(event.TypeOperationRejected, event.OperationRejectedData{Err: errors.New("no")})
	api.DispatchEvent(event.TypeOperationApplied, event.OperationData{})

	assert.Equal(t, Counts{Edits: 2, Undos: 1, Redos: 1, Rejected: 1}, p.Counts())

	api.Stats = plugin.HistoryStats{Nodes: 2, Cursor: 1, Depth: 2}
	require.NoError(t, api.Commands.Execute("tally"))
	assert.Equal(t, "Edits: 2, Undos: 1, Redos: 1, Rejected: 1 | History: 2 nodes, depth 2", api.LastMessage())
}

func TestTallyReset(t *testing.T) {
	api := plugintest.New()
	p := New().(*Tally)
	require.NoError(t, p.Initialize(api))

	api.DispatchEvent(event.TypeEditRecorded, event.EditRecordedData{})
	require.NoError(t, api.Commands.Execute("tally reset"))
	assert.Equal(t, Counts{}, p.Counts())
	assert.Equal(t, "Tally reset", api.LastMessage())

	assert.Error(t, api.Commands.Execute("tally everything"))
}

func TestTallyDoesNotConsumeEvents(t *testing.T) {
	api := plugintest.New()
	require.NoError(t, New().Initialize(api))

	seen := false
	api.SubscribeEvent(event.TypeUndo, func(event.Event) bool {
		seen = true
		return false
	})
	api.DispatchEvent(event.TypeUndo, event.HistoryMovedData{})
	assert.True(t, seen)
}
