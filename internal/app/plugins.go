package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/med/internal/commands"
	"github.com/bethropolis/med/internal/config"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/plugin"

	"github.com/bethropolis/med/plugins/metrics"
	"github.com/bethropolis/med/plugins/tally"
)

// registerPlugins registers the built-in plugins with the manager. The
// metrics plugin is only added when enabled in cfg.
func registerPlugins(pm *plugin.Manager, cfg *config.Config) error {
	if pm == nil {
		return errors.New("plugin manager is nil")
	}

	// Adding a new plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		tally.New,
	}
	if cfg.Metrics.Enabled {
		pluginConstructors = append(pluginConstructors, func() plugin.Plugin {
			return metrics.New(cfg.Metrics.Addr)
		})
	}

	var errs []error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			errs = append(errs, wrappedErr)
		}
	}
	return errors.Join(errs...)
}

// registerAppCommands registers built-in commands like theme.
func registerAppCommands(api plugin.EditorAPI) {
	commands.RegisterAppCommands(api)
}
