// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/med/internal/logger" // For logging missing styles
	"github.com/gdamore/tcell/v2"
)

// Style names used by the UI.
const (
	StyleDefault          = "Default"
	StyleValue            = "Value"          // A number in the list
	StyleValueNegative    = "Value.negative" // Falls back to Value
	StyleSelected         = "Selected"       // The number under the cursor
	StyleMarker           = "Marker"         // Row marker next to the selection
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarStatus  = "StatusBarStatus"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot, then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Builtin themes compiled into the binary.
var (
	DefaultDark  = newDefaultDark()
	DefaultLight = newDefaultLight()
)

func newDefaultDark() Theme {
	background := tcell.NewHexColor(0x2a2f38) // Status bar background
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	red := tcell.NewHexColor(0xe06c75)

	// Use terminal background
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	return Theme{
		Name:   "default",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleValue:            base.Foreground(orange),
			StyleValueNegative:    base.Foreground(red),
			StyleSelected:         base.Foreground(orange).Reverse(true).Bold(true),
			StyleMarker:           base.Foreground(muted),
			StyleStatusBar:        tcell.StyleDefault.Background(background).Foreground(foreground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(background).Foreground(foreground).Bold(true),
			StyleStatusBarStatus:  tcell.StyleDefault.Background(background).Foreground(yellow).Bold(true),
		},
	}
}

func newDefaultLight() Theme {
	background := tcell.NewHexColor(0xe5e5e6)
	foreground := tcell.NewHexColor(0x383a42)
	blue := tcell.NewHexColor(0x4078f2)
	red := tcell.NewHexColor(0xe45649)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	return Theme{
		Name:   "light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleValue:            base.Foreground(blue),
			StyleValueNegative:    base.Foreground(red),
			StyleSelected:         base.Foreground(blue).Reverse(true).Bold(true),
			StyleMarker:           base,
			StyleStatusBar:        tcell.StyleDefault.Background(background).Foreground(foreground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(background).Foreground(foreground).Bold(true),
			StyleStatusBarStatus:  tcell.StyleDefault.Background(background).Foreground(red).Bold(true),
		},
	}
}
