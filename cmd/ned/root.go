package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/med/internal/app"
	"github.com/bethropolis/med/internal/config"
	"github.com/bethropolis/med/internal/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var flags config.Flags

	rootCmd := &cobra.Command{
		Use:   "ned",
		Short: "ned is a modal editor for a list of numbers",
		Long: `ned edits a list of integers with vi-like modes and a branching undo tree.
Nothing is lost on undo: editing after an undo starts a new branch and redo
follows the most recent one.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Parsed(cmd.Flags())
			return runEditor(&flags)
		},
	}
	flags.Register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newKeysCmd(&flags), newVersionCmd())
	return rootCmd
}

// runEditor loads the configuration, sets up logging and runs the TUI until
// the user quits.
func runEditor(flags *config.Flags) error {
	cfg, err := config.LoadConfig("", flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	output, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Init(cfg.Logger, output)
	logger.SetDebugFilter(flags.DebugLog)
	logger.Infof("Starting ned %s...", version)

	nedApp, err := app.NewApp(cfg, nil)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if err := nedApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}

	logger.Infof("ned finished.")
	return nil
}

// openLog opens the log destination. An empty path selects
// config.DefaultLogFileName in the working directory; "-" is stderr.
func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = config.DefaultLogFileName
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}
	return logFile, func() { logFile.Close() }, nil
}
