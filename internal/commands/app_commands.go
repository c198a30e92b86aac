package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/plugin"
)

// RegisterAppCommands registers built-in commands: theme, themes, history.
func RegisterAppCommands(api plugin.EditorAPI) {
	RegisterThemeCommands(api, api)
	registerHistoryCommand(api)
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	// --- Theme Command ---
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			currentTheme := themeAPI.GetTheme()
			themeAPI.SetStatusMessage("Current theme: %s", currentTheme.Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themeList := strings.Join(themeAPI.ListThemes(), ", ")
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeAPI.GetTheme().Name)
		return nil
	}

	// --- Theme List Command ---
	themeListCmdFunc := func(args []string) error {
		themeList := strings.Join(themeAPI.ListThemes(), ", ")
		themeAPI.SetStatusMessage("Available themes: %s", themeList)
		return nil
	}

	if err := api.RegisterCommand("theme", themeCmdFunc); err != nil {
		logger.Warnf("Failed to register 'theme' command: %v", err)
	}
	if err := api.RegisterCommand("themes", themeListCmdFunc); err != nil {
		logger.Warnf("Failed to register 'themes' command: %v", err)
	}
}

func registerHistoryCommand(api plugin.EditorAPI) {
	historyCmdFunc := func(args []string) error {
		s := api.HistoryStats()
		position := "root"
		if s.Cursor >= 0 {
			position = fmt.Sprintf("#%d", s.Cursor)
		}
		api.SetStatusMessage("History: %d nodes, at %s (depth %d), undo %s, redo %s",
			s.Nodes, position, s.Depth, yesNo(s.CanUndo), yesNo(s.CanRedo))
		return nil
	}
	if err := api.RegisterCommand("history", historyCmdFunc); err != nil {
		logger.Warnf("Failed to register 'history' command: %v", err)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
