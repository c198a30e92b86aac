// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg" // For proper Unicode width calculation
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleMessage   tcell.Style // Style for temporary messages
	StyleStatus    tcell.Style // Style for the editor's status line
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleStatus:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields
	now    func() time.Time

	// Content fields (updated by the app after every token)
	summary      string // e.g. "3 values, sum 12"
	editorMode   string
	editorStatus string // Editor.Status(); shown until the next operation clears it
	historyNode  int    // -1 at the root
	historyDepth int
	historyLen   int

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config:      config,
		now:         time.Now,
		historyNode: -1,
	}
}

// SetConfig replaces styles and timeout, e.g. after a theme reload.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetDocumentInfo updates the document summary shown on the left.
func (sb *StatusBar) SetDocumentInfo(summary string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.summary = summary
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetEditorStatus mirrors the editor's status line.
func (sb *StatusBar) SetEditorStatus(status string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorStatus = status
}

// SetHistoryInfo updates the undo tree position: current node, its depth and
// the total number of nodes.
func (sb *StatusBar) SetHistoryInfo(node, depth, total int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.historyNode = node
	sb.historyDepth = depth
	sb.historyLen = total
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// getDefaultDisplayText builds the default status line text.
func (sb *StatusBar) getDefaultDisplayText() string {
	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s", sb.editorMode)
	}
	return fmt.Sprintf("%s%s", sb.summary, modeIndicator)
}

// historyText is the right-aligned segment.
func (sb *StatusBar) historyText() string {
	if sb.historyNode < 0 {
		return fmt.Sprintf("root (%d)", sb.historyLen)
	}
	return fmt.Sprintf("#%d depth %d (%d)", sb.historyNode, sb.historyDepth, sb.historyLen)
}

// Text returns the left and right segments that Draw would render now.
func (sb *StatusBar) Text() (left, right string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	left, right, _ = sb.resolve()
	return left, right
}

// resolve picks the text and style. The caller holds the write lock.
func (sb *StatusBar) resolve() (string, string, tcell.Style) {
	// Clear expired temporary message *before* getting display text
	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	right := sb.historyText()
	switch {
	case isTempMsgActive:
		return sb.tempMessage, right, sb.config.StyleMessage
	case sb.editorStatus != "":
		return sb.editorStatus, right, sb.config.StyleStatus
	default:
		return sb.getDefaultDisplayText(), right, sb.config.StyleDefault
	}
}

// Draw renders the status bar onto the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1 // Status bar is always the last line

	sb.mu.Lock() // Lock for potential modification of tempMessageTime
	text, right, style := sb.resolve()
	defaultStyle := sb.config.StyleDefault
	sb.mu.Unlock()

	// Fill background first
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	// The right segment is dropped when it would overlap the left text.
	rightWidth := runewidth.StringWidth(right)
	limit := width
	if rightWidth+1 < width-uniseg.StringWidth(text) {
		limit = width - rightWidth - 1
		drawText(screen, width-rightWidth, y, width, right, defaultStyle)
	}
	drawText(screen, 0, y, limit, text, style)
}

// drawText draws text grapheme by grapheme from x, stopping before maxX.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > maxX {
			break // Stop if cluster doesn't fit
		}

		runes := gr.Runes()
		if len(runes) > 0 {
			var combiningRunes []rune
			if len(runes) > 1 {
				combiningRunes = runes[1:]
			}
			screen.SetContent(currentX, y, runes[0], combiningRunes, style)
		}
		currentX += clusterWidth
	}
}
