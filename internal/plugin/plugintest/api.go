// Package plugintest provides an in-memory EditorAPI for plugin tests.
package plugintest

import (
	"fmt"

	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/plugin"
	"github.com/bethropolis/med/internal/theme"
)

// API records status messages and routes events through a real event.Manager.
type API struct {
	Events   *event.Manager
	Commands *plugin.Commands
	Themes   *theme.Manager
	Messages []string
	Stats    plugin.HistoryStats
	Summary  string
}

var _ plugin.EditorAPI = (*API)(nil)

// New returns an API with builtin themes and no recorded state.
func New() *API {
	return &API{
		Events:   event.NewManager(),
		Commands: plugin.NewCommands(),
		Themes:   theme.NewManager(""),
		Stats:    plugin.HistoryStats{Cursor: -1},
	}
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return a.Commands.Register(name, cmdFunc)
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

// LastMessage returns the most recent status message, or "".
func (a *API) LastMessage() string {
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}

func (a *API) HistoryStats() plugin.HistoryStats { return a.Stats }

func (a *API) DocumentSummary() string { return a.Summary }

func (a *API) SetTheme(name string) error { return a.Themes.SetTheme(name) }

func (a *API) GetTheme() *theme.Theme { return a.Themes.Current() }

func (a *API) ListThemes() []string { return a.Themes.ListThemes() }
