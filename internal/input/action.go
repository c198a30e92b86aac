// internal/input/action.go
package input

// Action represents what a key press asks the application to do.
type Action int

const (
	ActionUnknown Action = iota // Default/invalid action

	// ActionToken feeds ActionEvent.Rune to the editor engine.
	ActionToken

	// --- Meta Actions ---
	ActionQuit
	ActionYank  // Copy the selected value to the clipboard
	ActionPaste // Append the clipboard contents as new values

	// ActionRunCommand runs the plugin command named in ActionEvent.Command.
	ActionRunCommand
)

func (a Action) String() string {
	switch a {
	case ActionToken:
		return "token"
	case ActionQuit:
		return "quit"
	case ActionYank:
		return "yank"
	case ActionPaste:
		return "paste"
	case ActionRunCommand:
		return "run-command"
	default:
		return "unknown"
	}
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action  Action
	Rune    rune   // Token for ActionToken
	Command string // Command name for ActionRunCommand
}
