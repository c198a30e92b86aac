// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Editing engine events
	TypeInputReceived     // A token entered the engine
	TypeModeChanged       // The mode graph moved to a different mode
	TypeOperationApplied  // An operation was interpreted and its diff applied
	TypeEditRecorded      // An edit diff was appended to the history tree
	TypeOperationRejected // Document.Interpret refused an operation
	TypeUndo              // The history cursor moved to its parent
	TypeRedo              // The history cursor moved to a child
	TypeStatusChanged     // The status line text changed

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins

	TypeThemeChanged // Fired when the theme is changed or reloaded
)

var typeNames = map[Type]string{
	TypeUnknown:           "unknown",
	TypeInputReceived:     "input-received",
	TypeModeChanged:       "mode-changed",
	TypeOperationApplied:  "operation-applied",
	TypeEditRecorded:      "edit-recorded",
	TypeOperationRejected: "operation-rejected",
	TypeUndo:              "undo",
	TypeRedo:              "redo",
	TypeStatusChanged:     "status-changed",
	TypeAppReady:          "app-ready",
	TypeAppQuit:           "app-quit",
	TypeThemeChanged:      "theme-changed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// InputReceivedData carries the raw token.
type InputReceivedData struct {
	Token rune
}

// ModeChangedData carries the printable names of both modes.
type ModeChangedData struct {
	From string
	To   string
}

// OperationData describes an operation the engine handled. Operation is the
// plug-in's operation value; IsEdit mirrors its classification.
type OperationData struct {
	Operation interface{}
	IsEdit    bool
}

// EditRecordedData identifies the new history node.
type EditRecordedData struct {
	Node   int
	Parent int
	Nodes  int // total nodes after recording
}

// OperationRejectedData carries the interpretation error.
type OperationRejectedData struct {
	Operation interface{}
	Err       error
}

// HistoryMovedData describes a cursor move caused by undo or redo.
type HistoryMovedData struct {
	From int
	To   int
}

// StatusChangedData carries the new status line.
type StatusChangedData struct {
	Message string
}

// ThemeChangedData names the active theme.
type ThemeChangedData struct {
	Name string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
