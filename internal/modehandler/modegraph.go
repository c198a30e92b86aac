// internal/modehandler/modegraph.go
package modehandler

// Control tokens produced by the input layer for keys that have no printable rune.
const (
	TokenEscape    rune = 0x1b
	TokenEnter     rune = '\n'
	TokenBackspace rune = 0x7f
	TokenRedo      rune = 0x12 // Ctrl+R
)

// TransitionKind tells the editor what a transition carries.
type TransitionKind int

const (
	// TransitionApply emits an operation and moves to the next mode.
	TransitionApply TransitionKind = iota
	// TransitionModeChange switches mode without producing an operation.
	TransitionModeChange
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionApply:
		return "apply"
	case TransitionModeChange:
		return "mode-change"
	default:
		return "unknown"
	}
}

// Transition is the result of feeding one token to a ModeGraph.
type Transition[M any, O any] struct {
	Kind      TransitionKind
	Operation O      // Set when Kind == TransitionApply
	Next      M      // Mode to enter, regardless of whether the operation succeeds
	Message   string // Status text for TransitionModeChange; may be empty
}

// Apply builds a transition that emits op and enters next.
func Apply[M any, O any](op O, next M) Transition[M, O] {
	return Transition[M, O]{Kind: TransitionApply, Operation: op, Next: next}
}

// ModeChange builds an operation-less transition into next, showing message.
func ModeChange[M any, O any](next M, message string) Transition[M, O] {
	return Transition[M, O]{Kind: TransitionModeChange, Next: next, Message: message}
}

// ModeGraph is a finite-state machine over input tokens. Interpret is a pure
// function of (mode, token) and never sees document state.
type ModeGraph[M any, O any] interface {
	// Initial returns the starting mode.
	Initial() M
	// Interpret decides what token means in mode.
	Interpret(mode M, token rune) Transition[M, O]
}
