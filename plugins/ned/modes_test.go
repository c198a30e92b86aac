package ned

import (
	"testing"

	"github.com/bethropolis/med/internal/modehandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed runs tokens through g starting at mode and returns every transition.
func feed(g *Modes, mode Mode, tokens string) (Mode, []modehandler.Transition[Mode, Op]) {
	var out []modehandler.Transition[Mode, Op]
	for _, r := range tokens {
		tr := g.Interpret(mode, r)
		out = append(out, tr)
		mode = tr.Next
	}
	return mode, out
}

func TestNormalMode(t *testing.T) {
	g := NewModes(nil)
	assert.Equal(t, Normal, g.Initial())

	tests := []struct {
		token rune
		op    Op
	}{
		{'h', Of(OpCursorLeft)},
		{'l', Of(OpCursorRight)},
		{'k', Of(OpIncrement)},
		{'+', Of(OpIncrement)},
		{'-', Of(OpDecrement)},
		{'0', Of(OpZero)},
		{'d', Of(OpDuplicate)},
		{'x', Of(OpDelete)},
		{'u', Of(OpUndo)},
		{'r', Of(OpRedo)},
		{modehandler.TokenRedo, Of(OpRedo)},
	}
	for _, tt := range tests {
		t.Run(KeyName(tt.token), func(t *testing.T) {
			tr := g.Interpret(Normal, tt.token)
			require.Equal(t, modehandler.TransitionApply, tr.Kind)
			assert.Equal(t, tt.op, tr.Operation)
			assert.Equal(t, Normal, tr.Next)
		})
	}
}

func TestNormalModeSwitches(t *testing.T) {
	g := NewModes(nil)

	tr := g.Interpret(Normal, 'i')
	assert.Equal(t, modehandler.TransitionModeChange, tr.Kind)
	assert.Equal(t, Mode{Kind: ModeInsert}, tr.Next)
	assert.Equal(t, "-- INSERT --", tr.Message)

	tr = g.Interpret(Normal, 'a')
	assert.Equal(t, Mode{Kind: ModeAppend}, tr.Next)

	tr = g.Interpret(Normal, 'm')
	assert.Equal(t, Mode{Kind: ModeMerge}, tr.Next)

	tr = g.Interpret(Normal, 'z')
	assert.Equal(t, modehandler.TransitionModeChange, tr.Kind)
	assert.Equal(t, Normal, tr.Next)
	assert.Equal(t, "Unknown key: 'z'", tr.Message)
}

func TestInsertMode(t *testing.T) {
	g := NewModes(nil)

	mode, trs := feed(g, Normal, "i-42\n")
	assert.Equal(t, Normal, mode)
	last := trs[len(trs)-1]
	require.Equal(t, modehandler.TransitionApply, last.Kind)
	assert.Equal(t, SetValue(-42), last.Operation)

	// The pending number is visible in the mode and the message.
	assert.Equal(t, Mode{Kind: ModeInsert, Pending: "-4"}, trs[2].Next)
	assert.Equal(t, "INSERT -4", trs[2].Message)
}

func TestAppendMode(t *testing.T) {
	g := NewModes(nil)

	_, trs := feed(g, Normal, "a17\n")
	last := trs[len(trs)-1]
	require.Equal(t, modehandler.TransitionApply, last.Kind)
	assert.Equal(t, InsertAfter(17), last.Operation)
}

func TestNumberEditing(t *testing.T) {
	g := NewModes(nil)
	insert := Mode{Kind: ModeInsert}

	t.Run("backspace", func(t *testing.T) {
		mode, _ := feed(g, insert, "12\x7f3")
		assert.Equal(t, "13", mode.Pending)
	})

	t.Run("backspace on empty leaves", func(t *testing.T) {
		mode, _ := feed(g, insert, "\x7f")
		assert.Equal(t, Normal, mode)
	})

	t.Run("minus only first", func(t *testing.T) {
		mode, trs := feed(g, insert, "1-")
		assert.Equal(t, "1", mode.Pending)
		assert.Equal(t, "Not a digit: '-'", trs[1].Message)
	})

	t.Run("escape cancels", func(t *testing.T) {
		mode, trs := feed(g, insert, "99\x1b")
		assert.Equal(t, Normal, mode)
		for _, tr := range trs {
			assert.Equal(t, modehandler.TransitionModeChange, tr.Kind)
		}
	})

	t.Run("enter on empty", func(t *testing.T) {
		tr := g.Interpret(insert, modehandler.TokenEnter)
		assert.Equal(t, modehandler.TransitionModeChange, tr.Kind)
		assert.Equal(t, Normal, tr.Next)
	})

	t.Run("lone minus", func(t *testing.T) {
		_, trs := feed(g, insert, "-\n")
		last := trs[len(trs)-1]
		assert.Equal(t, modehandler.TransitionModeChange, last.Kind)
		assert.Equal(t, Normal, last.Next)
		assert.Contains(t, last.Message, ErrInvalidNumber.Error())
	})

	t.Run("overflow", func(t *testing.T) {
		_, trs := feed(g, insert, "99999999999999999999\n")
		last := trs[len(trs)-1]
		assert.Equal(t, modehandler.TransitionModeChange, last.Kind)
		assert.Contains(t, last.Message, ErrInvalidNumber.Error())
	})
}

func TestMergeMode(t *testing.T) {
	g := NewModes(nil)

	tests := []struct {
		tokens string
		op     OpKind
	}{
		{"m+l", OpAddNext},
		{"m+h", OpAddPrev},
		{"m-l", OpSubtractNext},
		{"m-h", OpSubtractPrev},
		{"m*l", OpMultiplyNext},
		{"m*h", OpMultiplyPrev},
		{"m+*l", OpMultiplyNext},
	}
	for _, tt := range tests {
		t.Run(tt.tokens, func(t *testing.T) {
			mode, trs := feed(g, Normal, tt.tokens)
			assert.Equal(t, Normal, mode)
			last := trs[len(trs)-1]
			require.Equal(t, modehandler.TransitionApply, last.Kind)
			assert.Equal(t, Of(tt.op), last.Operation)
		})
	}

	t.Run("direction before operator", func(t *testing.T) {
		mode, trs := feed(g, Normal, "ml")
		assert.Equal(t, Mode{Kind: ModeMerge}, mode)
		assert.Equal(t, "Pick an operator first: + - *", trs[1].Message)
	})

	t.Run("escape", func(t *testing.T) {
		mode, _ := feed(g, Normal, "m*\x1b")
		assert.Equal(t, Normal, mode)
	})
}

func TestModesArePure(t *testing.T) {
	g := NewModes(nil)
	mode := Mode{Kind: ModeAppend, Pending: "5"}
	a := g.Interpret(mode, '1')
	b := g.Interpret(mode, '1')
	assert.Equal(t, a, b)
	assert.Equal(t, "5", mode.Pending)
}

func TestCustomKeymapModes(t *testing.T) {
	keys, err := ParseKeymap(map[string]string{"increment": "w"})
	require.NoError(t, err)
	g := NewModes(keys)

	tr := g.Interpret(Normal, 'w')
	assert.Equal(t, Of(OpIncrement), tr.Operation)

	tr = g.Interpret(Normal, 'k')
	assert.Equal(t, modehandler.TransitionModeChange, tr.Kind)
}
