package ned

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/med/internal/document"
)

var (
	// ErrNoNeighbour is returned when a merge has no value to merge with.
	ErrNoNeighbour = errors.New("not enough values to merge")
	// ErrLastValue is returned when deleting the only value.
	ErrLastValue = errors.New("cannot delete the last value")
	// ErrHistoryOperation is returned for undo/redo, which belong to the editor.
	ErrHistoryOperation = errors.New("undo and redo are handled by the editor")
	// ErrUnknownOperation is returned for OpNone and unknown kinds.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidNumber is reported when typed digits do not form an int64.
	ErrInvalidNumber = errors.New("invalid number")
)

var _ document.Document[Op, Diff, View] = (*Doc)(nil)

// Doc is a non-empty list of numbers and a selected index.
type Doc struct {
	values []int64
	cursor int
}

// New returns the initial document: a single 1, selected.
func New() *Doc {
	return &Doc{values: []int64{1}, cursor: 0}
}

// NewDocument adapts New to the editor's document factory.
func NewDocument() document.Document[Op, Diff, View] {
	return New()
}

// Interpret computes the diff of op against the current state without mutating it.
func (d *Doc) Interpret(op Op) (Diff, error) {
	cur := d.values[d.cursor]
	n := len(d.values)

	switch op.Kind {
	case OpCursorLeft:
		return d.cursorOnly((d.cursor - 1 + n) % n), nil
	case OpCursorRight:
		return d.cursorOnly((d.cursor + 1) % n), nil
	case OpIncrement:
		return d.inPlace(cur + 1), nil
	case OpDecrement:
		return d.inPlace(cur - 1), nil
	case OpZero:
		return d.inPlace(0), nil
	case OpSetValue:
		return d.inPlace(op.Value), nil
	case OpDuplicate:
		return Diff{
			Changes:   []AtomicChange{InsertValue(d.cursor, cur)},
			OldCursor: d.cursor,
			NewCursor: d.cursor,
		}, nil
	case OpInsertAfter:
		return Diff{
			Changes:   []AtomicChange{InsertValue(d.cursor+1, op.Value)},
			OldCursor: d.cursor,
			NewCursor: d.cursor + 1,
		}, nil
	case OpDelete:
		if n == 1 {
			return Diff{}, fmt.Errorf("%s: %w", op.Kind, ErrLastValue)
		}
		return Diff{
			Changes:   []AtomicChange{DeleteAt(d.cursor, cur)},
			OldCursor: d.cursor,
			NewCursor: min(d.cursor, n-2),
		}, nil
	case OpAddNext:
		return d.mergeWith(op.Kind, d.cursor+1, func(x, y int64) int64 { return x + y })
	case OpSubtractNext:
		return d.mergeWith(op.Kind, d.cursor+1, func(x, y int64) int64 { return x - y })
	case OpMultiplyNext:
		return d.mergeWith(op.Kind, d.cursor+1, func(x, y int64) int64 { return x * y })
	case OpAddPrev:
		return d.mergeWith(op.Kind, d.cursor-1, func(x, y int64) int64 { return x + y })
	case OpSubtractPrev:
		return d.mergeWith(op.Kind, d.cursor-1, func(x, y int64) int64 { return x - y })
	case OpMultiplyPrev:
		return d.mergeWith(op.Kind, d.cursor-1, func(x, y int64) int64 { return x * y })
	case OpUndo, OpRedo:
		return Diff{}, ErrHistoryOperation
	default:
		return Diff{}, fmt.Errorf("%s: %w", op.Kind, ErrUnknownOperation)
	}
}

func (d *Doc) cursorOnly(next int) Diff {
	return Diff{OldCursor: d.cursor, NewCursor: next}
}

func (d *Doc) inPlace(value int64) Diff {
	return Diff{
		Changes:   []AtomicChange{ModifyEntry(d.cursor, d.values[d.cursor], value)},
		OldCursor: d.cursor,
		NewCursor: d.cursor,
	}
}

// mergeWith folds values[other] into the value under the cursor and removes it.
// When other precedes the cursor the merged value shifts left with it.
func (d *Doc) mergeWith(kind OpKind, other int, f func(x, y int64) int64) (Diff, error) {
	if other < 0 || other >= len(d.values) || other == d.cursor {
		return Diff{}, fmt.Errorf("%s: %w", kind, ErrNoNeighbour)
	}
	cur, val := d.values[d.cursor], d.values[other]
	next := d.cursor
	if other < d.cursor {
		next--
	}
	return Diff{
		Changes: []AtomicChange{
			ModifyEntry(d.cursor, cur, f(cur, val)),
			DeleteAt(other, val),
		},
		OldCursor: d.cursor,
		NewCursor: next,
	}, nil
}

// Apply mutates the list according to diff and moves the cursor to
// diff.NewCursor. Cursor moves are not recorded, so OldCursor may differ from
// the current cursor when undoing; the values must match. A diff that does not
// match the current values is a caller bug and panics.
func (d *Doc) Apply(diff Diff) {
	for _, c := range diff.Changes {
		d.applyChange(c)
	}
	if diff.NewCursor < 0 || diff.NewCursor >= len(d.values) {
		panic(fmt.Sprintf("ned: cursor %d out of range [0,%d)", diff.NewCursor, len(d.values)))
	}
	d.cursor = diff.NewCursor
}

func (d *Doc) applyChange(c AtomicChange) {
	switch c.Kind {
	case ChangeModify:
		if c.Index < 0 || c.Index >= len(d.values) || d.values[c.Index] != c.Old {
			panic(fmt.Sprintf("ned: cannot apply %v to %v", c, d.values))
		}
		d.values[c.Index] = c.New
	case ChangeInsert:
		if c.Index < 0 || c.Index > len(d.values) {
			panic(fmt.Sprintf("ned: cannot apply %v to %v", c, d.values))
		}
		d.values = append(d.values, 0)
		copy(d.values[c.Index+1:], d.values[c.Index:])
		d.values[c.Index] = c.Value
	case ChangeDelete:
		if c.Index < 0 || c.Index >= len(d.values) || d.values[c.Index] != c.Value {
			panic(fmt.Sprintf("ned: cannot apply %v to %v", c, d.values))
		}
		d.values = append(d.values[:c.Index], d.values[c.Index+1:]...)
	}
}

// Render returns a snapshot of the list for display.
func (d *Doc) Render() View {
	values := make([]int64, len(d.values))
	copy(values, d.values)
	return View{Values: values, Cursor: d.cursor}
}

// View is the rendered form of a Doc.
type View struct {
	Values []int64
	Cursor int
}

// Cells formats each value; the selected one is wrapped in asterisks.
func (v View) Cells() []string {
	cells := make([]string, len(v.Values))
	for i, x := range v.Values {
		s := strconv.FormatInt(x, 10)
		if i == v.Cursor {
			s = "*" + s + "*"
		}
		cells[i] = s
	}
	return cells
}

// String renders the list on one line, e.g. "[1 *2* 3]".
func (v View) String() string {
	return "[" + strings.Join(v.Cells(), " ") + "]"
}

// Lines renders one value per line, right aligned, with a marker on the
// selected row.
func (v View) Lines() []string {
	width := 0
	for _, x := range v.Values {
		width = max(width, len(strconv.FormatInt(x, 10)))
	}
	lines := make([]string, len(v.Values))
	for i, x := range v.Values {
		marker := "  "
		if i == v.Cursor {
			marker = "> "
		}
		lines[i] = fmt.Sprintf("%s%*d", marker, width, x)
	}
	return lines
}

// Sum adds up every value.
func (v View) Sum() int64 {
	var total int64
	for _, x := range v.Values {
		total += x
	}
	return total
}

// Selected returns the value under the cursor.
func (v View) Selected() int64 {
	if v.Cursor < 0 || v.Cursor >= len(v.Values) {
		return 0
	}
	return v.Values[v.Cursor]
}
