// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/med/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Manager holds loaded themes and manages the active theme. Theme files in
// the themes directory are reloaded while Watch is running.
type Manager struct {
	themes      map[string]*Theme // Map theme name (lowercase) -> Theme object
	activeTheme *Theme
	activeName  string // lowercase name requested by SetTheme
	themesDir   string
	mutex       sync.RWMutex

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewManager creates a manager with the builtin themes plus the .toml files
// found in themesDir (skipped when empty). The "default" theme is active.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	mgr.loadBuiltinThemes()

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}

	mgr.activeName = strings.ToLower(DefaultDark.Name)
	mgr.activeTheme = mgr.themes[mgr.activeName]
	logger.Infof("Initial active theme set to: %s", mgr.activeTheme.Name)
	return mgr
}

// loadBuiltinThemes adds themes compiled into the binary.
func (m *Manager) loadBuiltinThemes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, t := range []Theme{DefaultDark, DefaultLight} {
		t := t
		m.themes[strings.ToLower(t.Name)] = &t
		logger.DebugTagf("theme", "Loaded built-in theme: %s", t.Name)
	}
}

// LoadThemesFromDir scans the themes directory and loads .toml files. A
// missing directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}

	files, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !isThemeFile(file.Name()) {
			continue
		}
		if m.loadFile(filepath.Join(m.themesDir, file.Name())) {
			loadedCount++
		}
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

func isThemeFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".toml")
}

// loadFile parses one theme file and stores it, refreshing the active theme
// when the names match.
func (m *Manager) loadFile(filePath string) bool {
	theme, err := LoadThemeFromFile(filePath)
	if err != nil {
		logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
		return false
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(theme.Name)
	if existing, ok := m.themes[key]; ok {
		logger.DebugTagf("theme", "Theme '%s' from '%s' replaces '%s'", theme.Name, filePath, existing.Name)
	}
	m.themes[key] = theme
	if key == m.activeName {
		m.activeTheme = theme
	}
	return true
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := strings.ToLower(name)
	theme, ok := m.themes[key]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.activeName = key
	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a specific theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}

// Watch reloads theme files when they are written or created and calls
// onChange with the active theme after each reload. It returns immediately;
// Close stops watching.
func (m *Manager) Watch(onChange func(*Theme)) error {
	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}
	if m.watcher != nil {
		return errors.New("theme manager is already watching")
	}
	if err := os.MkdirAll(m.themesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create theme dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create theme watcher: %w", err)
	}
	if err := w.Add(m.themesDir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch '%s': %w", m.themesDir, err)
	}

	m.watcher = w
	m.done = make(chan struct{})
	m.wg.Add(1)
	go m.watchLoop(onChange)
	logger.Infof("Watching themes in %s", m.themesDir)
	return nil
}

func (m *Manager) watchLoop(onChange func(*Theme)) {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !isThemeFile(ev.Name) {
				continue
			}
			logger.DebugTagf("theme", "Theme file changed: %s (%s)", ev.Name, ev.Op)
			if m.loadFile(ev.Name) && onChange != nil {
				onChange(m.Current())
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("Theme watcher error: %v", err)
		}
	}
}

// Close stops a running Watch. It is safe to call when not watching.
func (m *Manager) Close() error {
	if m.watcher == nil {
		return nil
	}
	close(m.done)
	m.wg.Wait()
	err := m.watcher.Close()
	m.watcher = nil
	return err
}
