// internal/document/document.go
// Package document defines the contracts a document plug-in supplies to the editor core.
// A plug-in provides three mutually consistent types: an Operation (user intent),
// a Diff (an invertible record of a change) and the Document that turns the former
// into the latter.
package document

// Operation describes user intent that has not been applied yet.
// Concrete operation sets are closed enumerations. Undo and Redo are reserved
// members; the editor intercepts them and never forwards them to a Document.
type Operation[O any] interface {
	comparable

	// Undo returns the canonical undo operation. Called on the zero value.
	Undo() O
	// Redo returns the canonical redo operation. Called on the zero value.
	Redo() O
	// IsEdit reports whether the operation changes content. Only edits are
	// recorded in the history tree; navigation returns false.
	IsEdit() bool
}

// Diff is an immutable description of a state change.
type Diff[D any] interface {
	// Invert returns the diff that reverses this one. Applying a diff and then
	// its inverse is a no-op, but only against the state the diff was computed on.
	Invert() D
}

// Document owns the concrete editing state.
type Document[O Operation[O], D Diff[D], R any] interface {
	// Interpret computes the diff the operation would produce on the current
	// state. It must not mutate the document.
	Interpret(op O) (D, error)

	// Apply mutates the document according to diff. It is total for diffs produced
	// by Interpret on the current state or by inverting a diff along the history path.
	Apply(diff D)

	// Render projects the current state for display.
	Render() R
}

// Factory constructs a fresh value, e.g. a document in its initial state.
type Factory[T any] func() T

// IsUndo reports whether op is the canonical undo operation of its set.
func IsUndo[O Operation[O]](op O) bool {
	var zero O
	return op == zero.Undo()
}

// IsRedo reports whether op is the canonical redo operation of its set.
func IsRedo[O Operation[O]](op O) bool {
	var zero O
	return op == zero.Redo()
}
