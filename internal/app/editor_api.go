// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/med/internal/commands"
	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/plugin"
	"github.com/bethropolis/med/internal/theme"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.commands == nil {
		logger.Errorf("appEditorAPI cannot register command '%s', app or command registry is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.commands.Register(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Editor State ---

// HistoryStats locks the editor; it must not be called from an event
// handler, which already runs under that lock.
func (api *appEditorAPI) HistoryStats() plugin.HistoryStats {
	api.app.editorMu.Lock()
	defer api.app.editorMu.Unlock()

	h := api.app.editor.History()
	cursor := h.Cursor()
	return plugin.HistoryStats{
		Nodes:   h.Len(),
		Cursor:  int(cursor),
		Depth:   h.Depth(cursor),
		CanUndo: h.CanUndo(),
		CanRedo: h.CanRedo(),
	}
}

// DocumentSummary has the same locking rule as HistoryStats.
func (api *appEditorAPI) DocumentSummary() string {
	api.app.editorMu.Lock()
	defer api.app.editorMu.Unlock()
	return summarize(api.app.editor.Render())
}

// --- Theme Access ---

// SetTheme sets the active theme by name
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	api.app.applyTheme(api.app.themeManager.Current())
	return nil
}

// GetTheme returns the current active theme
func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

// ListThemes returns a list of all available theme names
func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}
