package app

import (
	"fmt"

	"github.com/bethropolis/med/internal/config"
	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/statusbar"
	"github.com/bethropolis/med/internal/theme"
	"github.com/bethropolis/med/internal/tui"
	"github.com/bethropolis/med/plugins/ned"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.editorMu.Lock()
	view := a.editor.Render()
	a.updateStatusBarContent()
	a.editorMu.Unlock()

	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	statusBarHeight := a.cfg.Editor.StatusBarHeight

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), StatusBarHeight: %d, Values: %d",
		width, height, statusBarHeight, len(view.Values))

	a.tuiManager.Clear()
	tui.DrawView(a.tuiManager, view, currentTheme, statusBarHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar
// component. The caller holds editorMu.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetDocumentInfo(summarize(a.editor.Render()))
	a.statusBar.SetEditorMode(a.editor.Mode().String())
	a.statusBar.SetEditorStatus(a.editor.Status())

	h := a.editor.History()
	cursor := h.Cursor()
	a.statusBar.SetHistoryInfo(int(cursor), h.Depth(cursor), h.Len())
}

// summarize describes the list for the status line, e.g. "3 values, sum 12".
func summarize(view ned.View) string {
	noun := "values"
	if len(view.Values) == 1 {
		noun = "value"
	}
	return fmt.Sprintf("%d %s, sum %d", len(view.Values), noun, view.Sum())
}

// statusBarConfig derives the status bar styles from a theme.
func statusBarConfig(t *theme.Theme, cfg *config.Config) statusbar.Config {
	return statusbar.Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleMessage:   t.GetStyle(theme.StyleStatusBarMessage),
		StyleStatus:    t.GetStyle(theme.StyleStatusBarStatus),
		MessageTimeout: cfg.Editor.MessageTimeoutDuration(),
	}
}

// applyTheme restyles the screen and the status bar. It runs on the theme
// watcher's goroutine after a reload.
func (a *App) applyTheme(t *theme.Theme) {
	if t == nil {
		return
	}
	a.statusBar.SetConfig(statusBarConfig(t, a.cfg))
	a.tuiManager.SetStyle(t.GetStyle(theme.StyleDefault))
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: t.Name})
	a.requestRedraw()
}
