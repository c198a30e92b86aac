package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/med/internal/logger"
)

// ErrEmpty is returned by Paste when nothing has been yanked.
var ErrEmpty = errors.New("clipboard is empty")

// Manager keeps the last yanked text. When the system clipboard is enabled
// and supported, yanks are mirrored to it and pastes read from it first.
type Manager struct {
	mu        sync.Mutex
	clipboard string
	system    bool

	// System clipboard access, replaced in tests.
	writeAll func(string) error
	readAll  func() (string, error)
}

// NewManager creates a clipboard manager. useSystem is ignored on platforms
// without a clipboard utility.
func NewManager(useSystem bool) *Manager {
	m := &Manager{
		system:   useSystem && !clipboard.Unsupported,
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
	if useSystem && clipboard.Unsupported {
		logger.Warnf("ClipboardManager: system clipboard unsupported, using internal clipboard")
	}
	return m
}

// UsesSystem reports whether the system clipboard is in use.
func (m *Manager) UsesSystem() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.system
}

// Yank stores text. A failing system clipboard is reported but the text is
// still kept internally.
func (m *Manager) Yank(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clipboard = text
	logger.Debugf("ClipboardManager: Yanked %d bytes", len(text))
	if !m.system {
		return nil
	}
	if err := m.writeAll(text); err != nil {
		return fmt.Errorf("system clipboard write failed: %w", err)
	}
	return nil
}

// Paste returns the clipboard contents, preferring the system clipboard.
func (m *Manager) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.system {
		text, err := m.readAll()
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			logger.Warnf("ClipboardManager: system clipboard read failed, using internal: %v", err)
		}
	}
	if m.clipboard == "" {
		return "", ErrEmpty
	}
	return m.clipboard, nil
}
