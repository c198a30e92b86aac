package config

import "time"

// Base application details
const AppName = "med"
const ConfigDirName = "med"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "med.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const SystemClipboard = true
const DefaultTheme = "default"

// Metrics endpoint, only served when enabled
const DefaultMetricsAddr = "127.0.0.1:9464"
