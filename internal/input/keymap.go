// internal/input/keymap.go
package input

import (
	"fmt"
	"strings"

	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/modehandler"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to application actions.
type Keymap map[tcell.Key]Action

// tokenKeys are special keys delivered to the engine as control tokens.
var tokenKeys = map[tcell.Key]rune{
	tcell.KeyEscape:     modehandler.TokenEscape,
	tcell.KeyEnter:      modehandler.TokenEnter,
	tcell.KeyBackspace:  modehandler.TokenBackspace,
	tcell.KeyBackspace2: modehandler.TokenBackspace,
	tcell.KeyCtrlR:      modehandler.TokenRedo,
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap   Keymap
	commands map[tcell.Key]string // Ctrl+<letter> -> plugin command
}

// NewInputProcessor creates a processor with the default bindings plus the
// given command bindings ("t" or "ctrl+t" -> command name).
func NewInputProcessor(commands map[string]string) (*InputProcessor, error) {
	p := &InputProcessor{
		keymap:   make(Keymap),
		commands: make(map[tcell.Key]string),
	}
	p.loadDefaultBindings()

	for spec, name := range commands {
		key, err := parseCtrlKey(spec)
		if err != nil {
			return nil, fmt.Errorf("commands: %w", err)
		}
		if _, taken := p.keymap[key]; taken {
			return nil, fmt.Errorf("commands: %s is reserved", spec)
		}
		if _, taken := tokenKeys[key]; taken {
			return nil, fmt.Errorf("commands: %s is reserved", spec)
		}
		p.commands[key] = name
		logger.DebugTagf("input", "InputProcessor: bound %s to command %q", spec, name)
	}
	return p, nil
}

// loadDefaultBindings sets up the application key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlY] = ActionYank
	p.keymap[tcell.KeyCtrlV] = ActionPaste
}

// parseCtrlKey accepts "t", "ctrl+t" or "C-t".
func parseCtrlKey(spec string) (tcell.Key, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	s = strings.TrimPrefix(s, "ctrl+")
	s = strings.TrimPrefix(s, "c-")
	if len(s) != 1 || s[0] < 'a' || s[0] > 'z' {
		return 0, fmt.Errorf("invalid key %q, want a letter like ctrl+t", spec)
	}
	return tcell.KeyCtrlA + tcell.Key(s[0]-'a'), nil
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// The mode is not considered here; the engine's mode graph interprets tokens.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	if name, ok := p.commands[key]; ok {
		return ActionEvent{Action: ActionRunCommand, Command: name}
	}
	if token, ok := tokenKeys[key]; ok {
		return ActionEvent{Action: ActionToken, Rune: token}
	}

	// Plain runes only; Alt+<rune> is left unbound.
	if key == tcell.KeyRune && mod&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) == 0 {
		return ActionEvent{Action: ActionToken, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}

// Commands lists the command bindings as "Ctrl+T" -> name, for help output.
func (p *InputProcessor) Commands() map[string]string {
	out := make(map[string]string, len(p.commands))
	for key, name := range p.commands {
		out[fmt.Sprintf("Ctrl+%c", 'A'+rune(key-tcell.KeyCtrlA))] = name
	}
	return out
}
