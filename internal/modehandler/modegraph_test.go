package modehandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type toggle bool

// onOff emits the token as an operation in the "on" mode and swallows it in
// the "off" mode. Escape flips between the two.
type onOff struct{}

func (onOff) Initial() toggle { return false }

func (onOff) Interpret(mode toggle, token rune) Transition[toggle, rune] {
	if token == TokenEscape {
		return ModeChange[toggle, rune](!mode, "")
	}
	if !mode {
		return ModeChange[toggle, rune](mode, "off")
	}
	return Apply(token, mode)
}

func TestTransitions(t *testing.T) {
	var g ModeGraph[toggle, rune] = onOff{}
	mode := g.Initial()

	tr := g.Interpret(mode, 'x')
	assert.Equal(t, TransitionModeChange, tr.Kind)
	assert.Equal(t, "off", tr.Message)
	assert.Equal(t, toggle(false), tr.Next)

	tr = g.Interpret(mode, TokenEscape)
	assert.Equal(t, TransitionModeChange, tr.Kind)
	assert.Empty(t, tr.Message)
	mode = tr.Next

	tr = g.Interpret(mode, 'x')
	assert.Equal(t, TransitionApply, tr.Kind)
	assert.Equal(t, 'x', tr.Operation)
	assert.Equal(t, toggle(true), tr.Next)
	assert.Empty(t, tr.Message)
}

func TestTransitionKindString(t *testing.T) {
	assert.Equal(t, "apply", TransitionApply.String())
	assert.Equal(t, "mode-change", TransitionModeChange.String())
	assert.Equal(t, "unknown", TransitionKind(9).String())
}
