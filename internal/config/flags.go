// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/bethropolis/med/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the configuration file.
type Flags struct {
	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	EnableTags      []string
	DisableTags     []string
	EnablePkgs      []string
	DisablePkgs     []string
	EnableFiles     []string
	DisableFiles    []string
	DebugLog        bool
	SystemClipboard bool
	Theme           string
	MetricsAddr     string

	set *pflag.FlagSet
}

// Register defines the flags on fs, typically a cobra command's Flags().
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.set = fs
	fs.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("Path to configuration file, .toml or .yaml (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable - Overrides config file")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Comma-separated list of packages to enable - Overrides config file")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Comma-separated list of packages to disable - Overrides config file")
	fs.StringSliceVar(&f.EnableFiles, "log-files", nil, "Comma-separated list of files to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableFiles, "log-disable-files", nil, "Comma-separated list of files to disable - Overrides config file")
	fs.BoolVar(&f.DebugLog, "debug-log", false, "Trace the logger's filtering decisions to stderr")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Use the system clipboard instead of an internal register")
	fs.StringVar(&f.Theme, "theme", "", "Theme name - Overrides config file")
	fs.StringVar(&f.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (enables metrics)")
}

// Parsed points ApplyOverrides at the flag set that was actually parsed,
// e.g. a cobra command's merged Flags() when the flags were registered as
// persistent flags.
func (f *Flags) Parsed(fs *pflag.FlagSet) {
	f.set = fs
}

// ApplyOverrides updates cfg with the flags that were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.set.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "log-files":
			cfg.Logger.EnabledFiles = f.EnableFiles
		case "log-disable-files":
			cfg.Logger.DisabledFiles = f.DisableFiles
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "theme":
			if f.Theme != "" {
				cfg.Editor.Theme = f.Theme
			}
		case "metrics-addr":
			if f.MetricsAddr != "" {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Addr = f.MetricsAddr
			}
		}
	})
}
