package ned

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/modehandler"
)

// Keys that switch mode in ModeNormal. They cannot be rebound.
const (
	KeyInsert rune = 'i'
	KeyAppend rune = 'a'
	KeyMerge  rune = 'm'
)

// Keymap binds Normal mode keys to parameterless operations.
type Keymap map[rune]OpKind

// Binding is one entry of a Keymap, used for listings.
type Binding struct {
	Key rune
	Op  OpKind
}

// DefaultKeymap returns the built-in Normal mode bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		'h':                   OpCursorLeft,
		'l':                   OpCursorRight,
		'k':                   OpIncrement,
		'+':                   OpIncrement,
		'j':                   OpDecrement,
		'-':                   OpDecrement,
		'0':                   OpZero,
		'd':                   OpDuplicate,
		'x':                   OpDelete,
		'u':                   OpUndo,
		'r':                   OpRedo,
		modehandler.TokenRedo: OpRedo,
	}
}

// ParseKeymap applies overrides of the form op name -> key on top of the
// default bindings. A rebound operation loses its default keys.
func ParseKeymap(overrides map[string]string) (Keymap, error) {
	keys := DefaultKeymap()
	if len(overrides) == 0 {
		return keys, nil
	}

	// Sorted so that errors and conflicts are reported deterministically.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kind, ok := ParseOpKind(name)
		if !ok || kind == OpSetValue || kind == OpInsertAfter {
			return nil, fmt.Errorf("keys: cannot bind operation %q", name)
		}
		key, err := parseKey(overrides[name])
		if err != nil {
			return nil, fmt.Errorf("keys: %s: %w", name, err)
		}
		for k, bound := range keys {
			if bound == kind {
				delete(keys, k)
			}
		}
		if prev, taken := keys[key]; taken {
			logger.Warnf("Keymap: key %q moved from %s to %s", key, prev, kind)
		}
		keys[key] = kind
	}
	return keys, nil
}

func parseKey(s string) (rune, error) {
	if s == "ctrl+r" || s == "C-r" {
		return modehandler.TokenRedo, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("key %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	switch r {
	case KeyInsert, KeyAppend, KeyMerge:
		return 0, fmt.Errorf("key %q is reserved", s)
	case modehandler.TokenEscape, modehandler.TokenEnter, modehandler.TokenBackspace:
		return 0, fmt.Errorf("key %q is reserved", s)
	}
	return r, nil
}

// Bindings lists the keymap ordered by operation, then key.
func (k Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k))
	for key, op := range k {
		out = append(out, Binding{Key: key, Op: op})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Op != out[j].Op {
			return out[i].Op < out[j].Op
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// KeyName renders a key for help output.
func KeyName(r rune) string {
	switch r {
	case modehandler.TokenRedo:
		return "Ctrl+R"
	case modehandler.TokenEscape:
		return "Esc"
	case modehandler.TokenEnter:
		return "Enter"
	case modehandler.TokenBackspace:
		return "Backspace"
	default:
		return string(r)
	}
}
