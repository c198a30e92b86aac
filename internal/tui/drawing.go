// internal/tui/drawing.go
package tui

import (
	"strconv"

	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/theme"
	"github.com/bethropolis/med/plugins/ned"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultScrollOff is the number of rows kept visible around the selection.
const DefaultScrollOff = 3

const markerWidth = 2 // "> " in front of the selected row

// Viewport tracks the first visible row of the list.
type Viewport struct {
	Top       int
	ScrollOff int
}

// Scroll adjusts Top so that row cursor of count rows stays visible within
// height rows, keeping ScrollOff rows of context where possible.
func (v *Viewport) Scroll(cursor, count, height int) {
	if height <= 0 || count <= 0 {
		v.Top = 0
		return
	}
	off := v.ScrollOff
	if off*2 >= height {
		off = (height - 1) / 2
	}
	if cursor-off < v.Top {
		v.Top = cursor - off
	}
	if cursor+off >= v.Top+height {
		v.Top = cursor + off - height + 1
	}
	// Never scroll past the end or before the start.
	if v.Top > count-height {
		v.Top = count - height
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// DrawView draws the list one value per row, leaving statusHeight rows free
// at the bottom.
func DrawView(tuiManager *TUI, view ned.View, activeTheme *theme.Theme, statusHeight int) {
	if activeTheme == nil {
		logger.Warnf("DrawView called with nil theme, using builtin default.")
		fallback := theme.DefaultDark
		activeTheme = &fallback
	}
	screen := tuiManager.GetScreen()
	width, height := screen.Size()
	rows := height - statusHeight
	if rows <= 0 || width <= 0 {
		return
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	markerStyle := activeTheme.GetStyle(theme.StyleMarker)
	selectedStyle := activeTheme.GetStyle(theme.StyleSelected)

	tuiManager.viewport.Scroll(view.Cursor, len(view.Values), rows)
	top := tuiManager.viewport.Top

	// Right-align numbers on the widest visible value.
	numWidth := 1
	for _, x := range view.Values {
		numWidth = max(numWidth, runewidth.StringWidth(strconv.FormatInt(x, 10)))
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		i := top + y
		if i >= len(view.Values) {
			continue
		}

		text := strconv.FormatInt(view.Values[i], 10)
		valueStyle := activeTheme.GetStyle(theme.StyleValue)
		if view.Values[i] < 0 {
			valueStyle = activeTheme.GetStyle(theme.StyleValueNegative)
		}
		if i == view.Cursor {
			drawString(screen, 0, y, width, ">", markerStyle)
			valueStyle = selectedStyle
		}
		x := markerWidth + numWidth - runewidth.StringWidth(text)
		drawString(screen, x, y, width, text, valueStyle)
	}

	if view.Cursor >= top && view.Cursor < top+rows {
		screen.ShowCursor(markerWidth+numWidth-1, view.Cursor-top)
	} else {
		screen.HideCursor()
	}
}

// drawString draws text grapheme by grapheme, clipped at maxX.
func drawString(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > maxX {
			return
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
