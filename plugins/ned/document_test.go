package ned

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(cursor int, values ...int64) *Doc {
	return &Doc{values: values, cursor: cursor}
}

func TestNewDocument(t *testing.T) {
	v := NewDocument().Render()
	assert.Equal(t, []int64{1}, v.Values)
	assert.Equal(t, 0, v.Cursor)
	assert.Equal(t, "[*1*]", v.String())
}

func TestIncrementScenario(t *testing.T) {
	d := New()

	diff, err := d.Interpret(Of(OpIncrement))
	require.NoError(t, err)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, ModifyEntry(0, 1, 2), diff.Changes[0])
	assert.Equal(t, 0, diff.OldCursor)
	assert.Equal(t, 0, diff.NewCursor)

	d.Apply(diff)
	assert.Equal(t, []int64{2}, d.Render().Values)

	inv := diff.Invert()
	assert.Equal(t, ModifyEntry(0, 2, 1), inv.Changes[0])

	d.Apply(inv)
	assert.Equal(t, []int64{1}, d.Render().Values)
}

func TestInterpretDoesNotMutate(t *testing.T) {
	d := docWith(1, 3, 4, 5)
	before := d.Render()

	for _, op := range []Op{Of(OpIncrement), Of(OpDelete), Of(OpMultiplyNext), InsertAfter(9), Of(OpCursorLeft)} {
		_, err := d.Interpret(op)
		require.NoError(t, err, op.String())
	}
	assert.Equal(t, before, d.Render())
}

func TestLocalInvertibility(t *testing.T) {
	ops := []Op{
		Of(OpCursorLeft), Of(OpCursorRight),
		Of(OpIncrement), Of(OpDecrement), Of(OpZero), SetValue(-7),
		Of(OpDuplicate), InsertAfter(42), Of(OpDelete),
		Of(OpAddNext), Of(OpSubtractNext), Of(OpMultiplyNext),
		Of(OpAddPrev), Of(OpSubtractPrev), Of(OpMultiplyPrev),
	}
	starts := []func() *Doc{
		func() *Doc { return docWith(0, 2, 3, 4) },
		func() *Doc { return docWith(1, 2, 3, 4) },
		func() *Doc { return docWith(2, 2, 3, 4) },
	}

	for _, start := range starts {
		for _, op := range ops {
			d := start()
			before := d.Render()
			t.Run(before.String()+" "+op.String(), func(t *testing.T) {
				diff, err := d.Interpret(op)
				if err != nil {
					assert.Equal(t, before, d.Render())
					return
				}
				d.Apply(diff)
				d.Apply(diff.Invert())
				assert.Equal(t, before, d.Render())
			})
		}
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name   string
		doc    *Doc
		op     Op
		values []int64
		cursor int
	}{
		{"left wraps", docWith(0, 1, 2, 3), Of(OpCursorLeft), []int64{1, 2, 3}, 2},
		{"right wraps", docWith(2, 1, 2, 3), Of(OpCursorRight), []int64{1, 2, 3}, 0},
		{"right", docWith(0, 1, 2, 3), Of(OpCursorRight), []int64{1, 2, 3}, 1},
		{"decrement", docWith(0, 1), Of(OpDecrement), []int64{0}, 0},
		{"zero", docWith(1, 5, 6), Of(OpZero), []int64{5, 0}, 1},
		{"set", docWith(0, 5), SetValue(12), []int64{12}, 0},
		{"duplicate", docWith(1, 5, 6), Of(OpDuplicate), []int64{5, 6, 6}, 1},
		{"insert after", docWith(0, 5, 6), InsertAfter(9), []int64{5, 9, 6}, 1},
		{"delete middle", docWith(1, 5, 6, 7), Of(OpDelete), []int64{5, 7}, 1},
		{"delete last", docWith(2, 5, 6, 7), Of(OpDelete), []int64{5, 6}, 1},
		{"add next", docWith(0, 5, 6, 7), Of(OpAddNext), []int64{11, 7}, 0},
		{"subtract next", docWith(1, 5, 6, 7), Of(OpSubtractNext), []int64{5, -1}, 1},
		{"multiply next", docWith(0, 5, 6), Of(OpMultiplyNext), []int64{30}, 0},
		{"add prev", docWith(2, 5, 6, 7), Of(OpAddPrev), []int64{5, 13}, 1},
		{"subtract prev", docWith(1, 5, 6), Of(OpSubtractPrev), []int64{1}, 0},
		{"multiply prev", docWith(1, 5, 6, 7), Of(OpMultiplyPrev), []int64{30, 7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := tt.doc.Interpret(tt.op)
			require.NoError(t, err)
			tt.doc.Apply(diff)
			v := tt.doc.Render()
			assert.Equal(t, tt.values, v.Values)
			assert.Equal(t, tt.cursor, v.Cursor)
		})
	}
}

func TestInterpretErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Doc
		op   Op
		want error
	}{
		{"delete only value", docWith(0, 1), Of(OpDelete), ErrLastValue},
		{"add next at end", docWith(1, 1, 2), Of(OpAddNext), ErrNoNeighbour},
		{"multiply prev at start", docWith(0, 1, 2), Of(OpMultiplyPrev), ErrNoNeighbour},
		{"merge single", docWith(0, 1), Of(OpSubtractNext), ErrNoNeighbour},
		{"undo", docWith(0, 1), Of(OpUndo), ErrHistoryOperation},
		{"redo", docWith(0, 1), Of(OpRedo), ErrHistoryOperation},
		{"none", docWith(0, 1), Of(OpNone), ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.doc.Render()
			_, err := tt.doc.Interpret(tt.op)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, tt.doc.Render())
		})
	}
}

func TestApplyMismatchPanics(t *testing.T) {
	d := docWith(0, 1, 2)
	assert.Panics(t, func() {
		d.Apply(Diff{Changes: []AtomicChange{ModifyEntry(0, 9, 10)}})
	})
	assert.Panics(t, func() {
		d.Apply(Diff{Changes: []AtomicChange{DeleteAt(5, 1)}})
	})
	assert.Panics(t, func() {
		d.Apply(Diff{NewCursor: 3})
	})
}

func TestDiffInvert(t *testing.T) {
	diff := Diff{
		Changes:   []AtomicChange{ModifyEntry(2, 3, 7), DeleteAt(1, 4)},
		OldCursor: 2,
		NewCursor: 1,
	}
	inv := diff.Invert()

	assert.Equal(t, []AtomicChange{InsertValue(1, 4), ModifyEntry(2, 7, 3)}, inv.Changes)
	assert.Equal(t, 1, inv.OldCursor)
	assert.Equal(t, 2, inv.NewCursor)
	assert.Equal(t, ModifyEntry(2, 3, 7), diff.Changes[0], "Invert must not mutate the receiver")
	assert.Equal(t, diff, inv.Invert())
	assert.True(t, Diff{OldCursor: 0, NewCursor: 1}.Empty())
}

func TestView(t *testing.T) {
	v := View{Values: []int64{1, -20, 3}, Cursor: 1}
	assert.Equal(t, "[1 *-20* 3]", v.String())
	assert.Equal(t, []string{"    1", "> -20", "    3"}, v.Lines())
	assert.Equal(t, int64(-16), v.Sum())
	assert.Equal(t, int64(-20), v.Selected())
}

func TestOp(t *testing.T) {
	var zero Op
	assert.Equal(t, Of(OpUndo), zero.Undo())
	assert.Equal(t, Of(OpRedo), zero.Redo())
	assert.False(t, Of(OpCursorLeft).IsEdit())
	assert.False(t, Of(OpUndo).IsEdit())
	assert.True(t, Of(OpDuplicate).IsEdit())
	assert.True(t, SetValue(3).IsEdit())
	assert.Equal(t, "insert-after(5)", InsertAfter(5).String())

	kind, ok := ParseOpKind("multiply-prev")
	assert.True(t, ok)
	assert.Equal(t, OpMultiplyPrev, kind)
	_, ok = ParseOpKind("none")
	assert.False(t, ok)
}
