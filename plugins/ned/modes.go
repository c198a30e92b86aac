package ned

import (
	"fmt"
	"strconv"

	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/modehandler"
)

// ModeKind is the major state of the ned mode graph.
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeInsert          // digits typed replace the value under the cursor
	ModeAppend          // digits typed are inserted after the cursor
	ModeMerge           // waiting for an operator and a direction
)

func (k ModeKind) String() string {
	switch k {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeAppend:
		return "APPEND"
	case ModeMerge:
		return "MERGE"
	default:
		return "UNKNOWN"
	}
}

// Mode is the full input state. It is comparable so the editor can tell when
// it changes.
type Mode struct {
	Kind     ModeKind
	Pending  string // digits typed so far in Insert/Append
	Operator rune   // '+', '-' or '*' once chosen in Merge
}

// Normal is the mode ned starts in.
var Normal = Mode{Kind: ModeNormal}

func (m Mode) String() string {
	switch m.Kind {
	case ModeInsert, ModeAppend:
		if m.Pending != "" {
			return m.Kind.String() + " " + m.Pending
		}
	case ModeMerge:
		if m.Operator != 0 {
			return m.Kind.String() + " " + string(m.Operator)
		}
	}
	return m.Kind.String()
}

var _ modehandler.ModeGraph[Mode, Op] = (*Modes)(nil)

// Modes is the ned mode graph. It is stateless apart from its keymap; the
// current mode is carried by the editor.
type Modes struct {
	keys Keymap
}

// NewModes creates a mode graph using keys for Normal mode. A nil keymap
// selects DefaultKeymap.
func NewModes(keys Keymap) *Modes {
	if keys == nil {
		keys = DefaultKeymap()
	}
	return &Modes{keys: keys}
}

// NewModeGraph returns a mode graph with the default keymap.
func NewModeGraph() modehandler.ModeGraph[Mode, Op] {
	return NewModes(nil)
}

// Initial implements modehandler.ModeGraph.
func (g *Modes) Initial() Mode {
	return Normal
}

type transition = modehandler.Transition[Mode, Op]

// Interpret implements modehandler.ModeGraph.
func (g *Modes) Interpret(mode Mode, token rune) transition {
	switch mode.Kind {
	case ModeInsert, ModeAppend:
		return g.interpretNumber(mode, token)
	case ModeMerge:
		return g.interpretMerge(mode, token)
	case ModeNormal:
		return g.interpretNormal(token)
	default:
		logger.Warnf("Modes: unknown mode %v, resetting", mode)
		return modehandler.ModeChange[Mode, Op](Normal, "")
	}
}

func (g *Modes) interpretNormal(token rune) transition {
	switch token {
	case KeyInsert:
		return modehandler.ModeChange[Mode, Op](Mode{Kind: ModeInsert}, "-- INSERT --")
	case KeyAppend:
		return modehandler.ModeChange[Mode, Op](Mode{Kind: ModeAppend}, "-- APPEND --")
	case KeyMerge:
		return modehandler.ModeChange[Mode, Op](Mode{Kind: ModeMerge}, "-- MERGE -- (+ - * then h/l)")
	case modehandler.TokenEscape:
		return modehandler.ModeChange[Mode, Op](Normal, "")
	}

	if kind, ok := g.keys[token]; ok {
		return modehandler.Apply(Of(kind), Normal)
	}
	return modehandler.ModeChange[Mode, Op](Normal, fmt.Sprintf("Unknown key: %s", strconv.QuoteRune(token)))
}

func (g *Modes) interpretNumber(mode Mode, token rune) transition {
	switch {
	case token >= '0' && token <= '9', token == '-' && mode.Pending == "":
		mode.Pending += string(token)
		return modehandler.ModeChange[Mode, Op](mode, mode.String())

	case token == modehandler.TokenBackspace:
		if mode.Pending == "" {
			return modehandler.ModeChange[Mode, Op](Normal, "")
		}
		mode.Pending = mode.Pending[:len(mode.Pending)-1]
		return modehandler.ModeChange[Mode, Op](mode, mode.String())

	case token == modehandler.TokenEscape:
		return modehandler.ModeChange[Mode, Op](Normal, "")

	case token == modehandler.TokenEnter:
		if mode.Pending == "" {
			return modehandler.ModeChange[Mode, Op](Normal, "")
		}
		v, err := strconv.ParseInt(mode.Pending, 10, 64)
		if err != nil {
			logger.DebugTagf("ned", "Modes: cannot parse %q: %v", mode.Pending, err)
			return modehandler.ModeChange[Mode, Op](Normal, fmt.Sprintf("%v: %s", ErrInvalidNumber, mode.Pending))
		}
		if mode.Kind == ModeAppend {
			return modehandler.Apply(InsertAfter(v), Normal)
		}
		return modehandler.Apply(SetValue(v), Normal)

	default:
		return modehandler.ModeChange[Mode, Op](mode, fmt.Sprintf("Not a digit: %s", strconv.QuoteRune(token)))
	}
}

var mergeOps = map[rune][2]OpKind{
	'+': {OpAddPrev, OpAddNext},
	'-': {OpSubtractPrev, OpSubtractNext},
	'*': {OpMultiplyPrev, OpMultiplyNext},
}

func (g *Modes) interpretMerge(mode Mode, token rune) transition {
	if _, ok := mergeOps[token]; ok {
		mode.Operator = token
		return modehandler.ModeChange[Mode, Op](mode, fmt.Sprintf("-- MERGE %c -- (h/l)", token))
	}

	switch token {
	case modehandler.TokenEscape:
		return modehandler.ModeChange[Mode, Op](Normal, "")
	case 'h', 'l':
		ops, ok := mergeOps[mode.Operator]
		if !ok {
			return modehandler.ModeChange[Mode, Op](mode, "Pick an operator first: + - *")
		}
		if token == 'h' {
			return modehandler.Apply(Of(ops[0]), Normal)
		}
		return modehandler.Apply(Of(ops[1]), Normal)
	default:
		return modehandler.ModeChange[Mode, Op](Normal, fmt.Sprintf("Unknown key: %s", strconv.QuoteRune(token)))
	}
}
