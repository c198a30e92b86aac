// internal/core/editor.go
// Package core drives a document plug-in from raw input tokens. The Editor
// owns the document, the current mode and the branching undo history; every
// token produces one complete state transition.
package core

import (
	"fmt"

	"github.com/bethropolis/med/internal/core/history"
	"github.com/bethropolis/med/internal/document"
	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/modehandler"
)

// Status line texts for undo and redo.
const (
	StatusNothingToUndo = "Nothing to undo"
	StatusNothingToRedo = "Nothing to redo"
	StatusUndone        = "Undo completed"
	StatusRedone        = "Redo completed"
)

// HistoryView is the read-only side of the history tree.
type HistoryView[D any] interface {
	Cursor() history.NodeID
	Parent(id history.NodeID) history.NodeID
	Children(id history.NodeID) []history.NodeID
	Diff(id history.NodeID) (D, bool)
	Len() int
	Depth(id history.NodeID) int
	CanUndo() bool
	CanRedo() bool
	Walk(fn func(id, parent history.NodeID, diff D) bool)
}

// Config holds the factories and collaborators of an Editor.
type Config[M comparable, O document.Operation[O], D document.Diff[D], R any] struct {
	NewDocument  document.Factory[document.Document[O, D, R]]
	NewModeGraph document.Factory[modehandler.ModeGraph[M, O]]
	EventManager *event.Manager // Optional
}

// Editor is the engine. M is the mode, O the operation, D the diff and R the
// rendered representation of the document. It is not safe for concurrent use;
// callers serialise access.
type Editor[M comparable, O document.Operation[O], D document.Diff[D], R any] struct {
	doc          document.Document[O, D, R]
	modes        modehandler.ModeGraph[M, O]
	mode         M
	history      *history.Tree[D]
	status       string
	eventManager *event.Manager
}

// NewEditor creates an editor with a fresh document in the graph's initial mode.
func NewEditor[M comparable, O document.Operation[O], D document.Diff[D], R any](cfg Config[M, O, D, R]) *Editor[M, O, D, R] {
	if cfg.NewDocument == nil || cfg.NewModeGraph == nil {
		panic("NewEditor requires NewDocument and NewModeGraph")
	}
	modes := cfg.NewModeGraph()
	e := &Editor[M, O, D, R]{
		doc:          cfg.NewDocument(),
		modes:        modes,
		mode:         modes.Initial(),
		history:      history.NewTree[D](),
		eventManager: cfg.EventManager,
	}
	logger.Debugf("Editor: created in mode %v", e.mode)
	return e
}

// ProcessInput feeds one token through the mode graph and carries out the
// resulting transition. The mode always advances, even when the operation is
// rejected.
func (e *Editor[M, O, D, R]) ProcessInput(token rune) {
	e.dispatch(event.TypeInputReceived, event.InputReceivedData{Token: token})

	tr := e.modes.Interpret(e.mode, token)
	switch tr.Kind {
	case modehandler.TransitionModeChange:
		e.setStatus(tr.Message)
	case modehandler.TransitionApply:
		e.handleOperation(tr.Operation)
	default:
		logger.Warnf("Editor: unknown transition kind %v", tr.Kind)
	}
	e.setMode(tr.Next)
}

func (e *Editor[M, O, D, R]) handleOperation(op O) {
	switch {
	case document.IsUndo(op):
		e.undo()
	case document.IsRedo(op):
		e.redo()
	default:
		e.applyOperation(op)
	}
}

func (e *Editor[M, O, D, R]) applyOperation(op O) {
	diff, err := e.doc.Interpret(op)
	if err != nil {
		logger.DebugTagf("editor", "Editor: %v rejected: %v", op, err)
		e.dispatch(event.TypeOperationRejected, event.OperationRejectedData{Operation: op, Err: err})
		e.setStatus(err.Error())
		return
	}

	e.doc.Apply(diff)
	if op.IsEdit() {
		parent := e.history.Cursor()
		id := e.history.Commit(diff)
		e.dispatch(event.TypeEditRecorded, event.EditRecordedData{
			Node:   int(id),
			Parent: int(parent),
			Nodes:  e.history.Len(),
		})
	}
	e.dispatch(event.TypeOperationApplied, event.OperationData{Operation: op, IsEdit: op.IsEdit()})
	e.setStatus("")
}

func (e *Editor[M, O, D, R]) undo() {
	from := e.history.Cursor()
	diff, ok := e.history.Undo()
	if !ok {
		e.setStatus(StatusNothingToUndo)
		return
	}
	e.doc.Apply(diff)
	e.dispatch(event.TypeUndo, event.HistoryMovedData{From: int(from), To: int(e.history.Cursor())})
	e.setStatus(StatusUndone)
}

func (e *Editor[M, O, D, R]) redo() {
	from := e.history.Cursor()
	diff, ok := e.history.Redo()
	if !ok {
		e.setStatus(StatusNothingToRedo)
		return
	}
	e.doc.Apply(diff)
	e.dispatch(event.TypeRedo, event.HistoryMovedData{From: int(from), To: int(e.history.Cursor())})
	e.setStatus(StatusRedone)
}

func (e *Editor[M, O, D, R]) setMode(next M) {
	if next == e.mode {
		return
	}
	prev := e.mode
	e.mode = next
	logger.DebugTagf("editor", "Editor: mode %v -> %v", prev, next)
	e.dispatch(event.TypeModeChanged, event.ModeChangedData{From: fmt.Sprint(prev), To: fmt.Sprint(next)})
}

func (e *Editor[M, O, D, R]) setStatus(msg string) {
	if msg == e.status {
		return
	}
	e.status = msg
	e.dispatch(event.TypeStatusChanged, event.StatusChangedData{Message: msg})
}

func (e *Editor[M, O, D, R]) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// Render returns the document's current representation.
func (e *Editor[M, O, D, R]) Render() R {
	return e.doc.Render()
}

// Status returns the last status message; empty after a successful operation.
func (e *Editor[M, O, D, R]) Status() string {
	return e.status
}

// Mode returns the current mode.
func (e *Editor[M, O, D, R]) Mode() M {
	return e.mode
}

// History exposes the undo tree read-only.
func (e *Editor[M, O, D, R]) History() HistoryView[D] {
	return e.history
}
