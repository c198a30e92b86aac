package app

import (
	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/logger"
)

// subscribeEvents wires app-level reactions to editor events. Handlers run
// synchronously inside Editor.ProcessInput, with editorMu held.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeStatusChanged, a.handleStatusChanged)
	a.eventManager.Subscribe(event.TypeOperationRejected, a.handleOperationRejected)
	a.eventManager.Subscribe(event.TypeEditRecorded, a.handleEditRecorded)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

// handleStatusChanged drops a temporary message so a new editor status is
// not hidden behind it.
func (a *App) handleStatusChanged(e event.Event) bool {
	if data, ok := e.Data.(event.StatusChangedData); ok && data.Message != "" {
		a.statusBar.ResetTemporaryMessage()
	}
	return false // Not consumed
}

func (a *App) handleOperationRejected(e event.Event) bool {
	if data, ok := e.Data.(event.OperationRejectedData); ok {
		logger.DebugTagf("app", "App: %v rejected: %v", data.Operation, data.Err)
	}
	return false
}

func (a *App) handleEditRecorded(e event.Event) bool {
	if data, ok := e.Data.(event.EditRecordedData); ok {
		logger.DebugTagf("app", "App: recorded node %d under %d (%d total)", data.Node, data.Parent, data.Nodes)
	}
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ThemeChangedData); ok {
		logger.Infof("App: theme is now '%s'", data.Name)
	}
	return false
}
