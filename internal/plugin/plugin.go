// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/theme"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the words following the command name.
type CommandFunc func(args []string) error

// HistoryStats is a snapshot of the editor's history tree.
type HistoryStats struct {
	Nodes   int // recorded edits, the root excluded
	Cursor  int // -1 at the root
	Depth   int
	CanUndo bool
	CanRedo bool
}

// EditorAPI defines the methods plugins can use to interact with the editor.
// Plugins observe editing through events; they never drive the Editor.
type EditorAPI interface {
	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{}) // Show temporary messages

	// --- Editor State (read-only) ---
	HistoryStats() HistoryStats
	DocumentSummary() string

	// --- Theme Access ---
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
