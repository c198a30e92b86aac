// Package ned is an integer Number EDitor: a document made of a list of
// integers and a selected index, together with the operations, diffs and
// modes that edit it.
package ned

import "fmt"

// OpKind enumerates the operations ned understands.
type OpKind int

const (
	OpNone OpKind = iota
	OpUndo
	OpRedo

	// Navigation
	OpCursorLeft
	OpCursorRight

	// In-place edits
	OpIncrement
	OpDecrement
	OpZero
	OpSetValue // Op.Value carries the new number

	// Structural edits
	OpDuplicate
	OpInsertAfter // Op.Value carries the inserted number
	OpDelete

	// Merge the value under the cursor with a neighbour
	OpAddNext
	OpSubtractNext
	OpMultiplyNext
	OpAddPrev
	OpSubtractPrev
	OpMultiplyPrev
)

var opNames = map[OpKind]string{
	OpNone:         "none",
	OpUndo:         "undo",
	OpRedo:         "redo",
	OpCursorLeft:   "left",
	OpCursorRight:  "right",
	OpIncrement:    "increment",
	OpDecrement:    "decrement",
	OpZero:         "zero",
	OpSetValue:     "set",
	OpDuplicate:    "duplicate",
	OpInsertAfter:  "insert-after",
	OpDelete:       "delete",
	OpAddNext:      "add-next",
	OpSubtractNext: "subtract-next",
	OpMultiplyNext: "multiply-next",
	OpAddPrev:      "add-prev",
	OpSubtractPrev: "subtract-prev",
	OpMultiplyPrev: "multiply-prev",
}

func (k OpKind) String() string {
	if name, ok := opNames[k]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// ParseOpKind looks an operation up by its String name.
func ParseOpKind(name string) (OpKind, bool) {
	for kind, n := range opNames {
		if n == name && kind != OpNone {
			return kind, true
		}
	}
	return OpNone, false
}

// Op is one user intent. It is a comparable value.
type Op struct {
	Kind  OpKind
	Value int64 // argument of OpSetValue and OpInsertAfter
}

// Undo returns the canonical undo operation.
func (Op) Undo() Op { return Op{Kind: OpUndo} }

// Redo returns the canonical redo operation.
func (Op) Redo() Op { return Op{Kind: OpRedo} }

// IsEdit reports whether the operation changes the list. Cursor movement does not.
func (o Op) IsEdit() bool {
	switch o.Kind {
	case OpNone, OpUndo, OpRedo, OpCursorLeft, OpCursorRight:
		return false
	default:
		return true
	}
}

func (o Op) String() string {
	switch o.Kind {
	case OpSetValue, OpInsertAfter:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Value)
	default:
		return o.Kind.String()
	}
}

// Of builds a parameterless operation.
func Of(kind OpKind) Op { return Op{Kind: kind} }

// SetValue replaces the value under the cursor with v.
func SetValue(v int64) Op { return Op{Kind: OpSetValue, Value: v} }

// InsertAfter inserts v after the cursor and selects it.
func InsertAfter(v int64) Op { return Op{Kind: OpInsertAfter, Value: v} }
