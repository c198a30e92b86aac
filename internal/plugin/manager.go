// internal/plugin/manager.go
package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/med/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
// Plugins are initialized in registration order and shut down in reverse.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin // Store loaded plugins by name
	order   []string
	started []Plugin // successfully initialized, in order
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return errors.New("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin. A failing
// plugin is logged and skipped; the others still start. The joined errors
// are returned.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	m.mu.RLock()
	pluginsToInit := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		pluginsToInit = append(pluginsToInit, m.plugins[name])
	}
	m.mu.RUnlock() // Unlock before calling plugin Init methods

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(pluginsToInit))
	var errs []error
	for _, plugin := range pluginsToInit {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			errs = append(errs, fmt.Errorf("plugin '%s': %w", plugin.Name(), err))
			continue
		}
		m.mu.Lock()
		m.started = append(m.started, plugin)
		m.mu.Unlock()
		logger.DebugTagf("plugin", "Plugin Manager: Successfully initialized plugin '%s'", plugin.Name())
	}
	return errors.Join(errs...)
}

// ShutdownPlugins calls Shutdown on every initialized plugin, newest first.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	started := m.started
	m.started = nil
	m.mu.Unlock()

	logger.Infof("Plugin Manager: Shutting down %d plugins...", len(started))
	for i := len(started) - 1; i >= 0; i-- {
		plugin := started[i]
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name. Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names returns the registered plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}
