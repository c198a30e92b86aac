package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/med/internal/core/clipboard"
	"github.com/bethropolis/med/internal/input"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/modehandler"
	"github.com/bethropolis/med/plugins/ned"
	"github.com/gdamore/tcell/v2"
)

// handleKey routes one key event and reports whether a redraw is needed.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	actionEvent := a.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "App: key %s -> %v", ev.Name(), actionEvent.Action)

	switch actionEvent.Action {
	case input.ActionToken:
		a.feed(actionEvent.Rune)
	case input.ActionQuit:
		a.requestQuit()
		return false
	case input.ActionYank:
		a.yank()
	case input.ActionPaste:
		a.paste()
	case input.ActionRunCommand:
		a.runCommand(actionEvent.Command)
	default:
		return false
	}
	return true
}

// feed passes tokens to the editor and refreshes the status bar.
func (a *App) feed(tokens ...rune) {
	a.editorMu.Lock()
	defer a.editorMu.Unlock()
	for _, token := range tokens {
		a.editor.ProcessInput(token)
	}
	a.updateStatusBarContent()
}

// yank copies the selected value.
func (a *App) yank() {
	a.editorMu.Lock()
	value := a.editor.Render().Selected()
	a.editorMu.Unlock()

	text := strconv.FormatInt(value, 10)
	if err := a.clipboard.Yank(text); err != nil {
		logger.Warnf("App: yank: %v", err)
		a.statusBar.SetTemporaryMessage("Yanked %s (system clipboard unavailable)", text)
		return
	}
	a.statusBar.SetTemporaryMessage("Yanked %s", text)
}

// paste appends every number in the clipboard after the cursor. Each value
// is typed through Append mode, so it becomes its own history node.
func (a *App) paste() {
	text, err := a.clipboard.Paste()
	if errors.Is(err, clipboard.ErrEmpty) {
		a.statusBar.SetTemporaryMessage("Nothing to paste")
		return
	}
	if err != nil {
		a.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		return
	}

	tokens, count, err := pasteTokens(text)
	if err != nil {
		a.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		return
	}
	a.feed(tokens...)
	a.statusBar.SetTemporaryMessage("Pasted %d value(s)", count)
}

// pasteTokens turns whitespace- or comma-separated integers into the token
// sequence Escape, then "a<digits>Enter" per value.
func pasteTokens(text string) ([]rune, int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, 0, errors.New("clipboard holds no numbers")
	}

	tokens := []rune{modehandler.TokenEscape}
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ned.ErrInvalidNumber, f)
		}
		tokens = append(tokens, ned.KeyAppend)
		tokens = append(tokens, []rune(strconv.FormatInt(v, 10))...)
		tokens = append(tokens, modehandler.TokenEnter)
	}
	return tokens, len(fields), nil
}

// runCommand executes a registered command and reports failures in the
// status bar. It must not run under editorMu.
func (a *App) runCommand(name string) {
	if err := a.commands.Execute(name); err != nil {
		logger.Warnf("App: command '%s' failed: %v", name, err)
		a.statusBar.SetTemporaryMessage("Error: %v", err)
	}
}
