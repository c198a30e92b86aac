// internal/app/app.go
package app

import (
	"fmt"
	"sync"

	"github.com/bethropolis/med/internal/config"
	"github.com/bethropolis/med/internal/core"
	"github.com/bethropolis/med/internal/core/clipboard"
	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/input"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/modehandler"
	"github.com/bethropolis/med/internal/plugin"
	"github.com/bethropolis/med/internal/statusbar"
	"github.com/bethropolis/med/internal/theme"
	"github.com/bethropolis/med/internal/tui"
	"github.com/bethropolis/med/plugins/ned"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Editor is the engine instantiated for the ned number list.
type Editor = core.Editor[ned.Mode, ned.Op, ned.Diff, ned.View]

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	commands       *plugin.Commands
	inputProcessor *input.InputProcessor
	themeManager   *theme.Manager
	clipboard      *clipboard.Manager
	editorAPI      plugin.EditorAPI
	sessionID      string

	// editorMu serialises every Editor access between the event loop and
	// the draw loop. Event handlers run with it held.
	editorMu sync.Mutex
	editor   *Editor

	// Channels managed by the App
	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
	closeOnce     sync.Once
}

// NewApp creates and initializes a new application instance. A nil screen
// opens the terminal.
func NewApp(cfg *config.Config, screen tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	sessionID := uuid.NewString()
	logger.With("session", sessionID)

	// --- Create Core Components ---
	keys, err := ned.ParseKeymap(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("invalid [keys] configuration: %w", err)
	}
	inputProcessor, err := input.NewInputProcessor(cfg.Commands)
	if err != nil {
		return nil, fmt.Errorf("invalid [commands] configuration: %w", err)
	}

	themeManager := theme.NewManager(cfg.Editor.ThemesDir)
	if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
		logger.Warnf("App: %v, using '%s'", err, themeManager.Current().Name)
	}
	activeTheme := themeManager.Current()

	var tuiManager *tui.TUI
	defStyle := activeTheme.GetStyle(theme.StyleDefault)
	if screen == nil {
		tuiManager, err = tui.New(defStyle)
	} else {
		tuiManager, err = tui.NewWithScreen(screen, defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	editor := core.NewEditor(core.Config[ned.Mode, ned.Op, ned.Diff, ned.View]{
		NewDocument: ned.NewDocument,
		NewModeGraph: func() modehandler.ModeGraph[ned.Mode, ned.Op] {
			return ned.NewModes(keys)
		},
		EventManager: eventManager,
	})

	appInstance := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		statusBar:      statusbar.New(statusBarConfig(activeTheme, cfg)),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(),
		commands:       plugin.NewCommands(),
		inputProcessor: inputProcessor,
		themeManager:   themeManager,
		clipboard:      clipboard.NewManager(cfg.Editor.SystemClipboard),
		sessionID:      sessionID,
		editor:         editor,
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}
	appInstance.editorAPI = newEditorAPI(appInstance)

	// --- Subscribe Core Components (App level wiring) ---
	appInstance.subscribeEvents()

	// --- Register & Initialize Plugins (triggers RegisterCommand via API) ---
	if err := registerPlugins(appInstance.pluginManager, cfg); err != nil {
		logger.Warnf("App: %v", err)
	}
	registerAppCommands(appInstance.editorAPI)
	if err := appInstance.pluginManager.InitializePlugins(appInstance.editorAPI); err != nil {
		logger.Warnf("App: some plugins failed to start: %v", err)
	}
	for key, name := range inputProcessor.Commands() {
		if !appInstance.commands.Has(name) {
			logger.Warnf("App: %s is bound to unknown command '%s'", key, name)
		}
	}

	// --- Theme hot reload ---
	if cfg.Editor.ThemesDir != "" {
		if err := themeManager.Watch(appInstance.applyTheme); err != nil {
			logger.Warnf("App: theme reload disabled: %v", err)
		}
	}

	appInstance.editorMu.Lock()
	appInstance.updateStatusBarContent()
	appInstance.editorMu.Unlock()

	logger.Infof("App: session %s ready", sessionID)
	return appInstance, nil
}

// Run starts the application's main event and drawing loops and returns
// after a quit request.
func (a *App) Run() error {
	defer a.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("med - i insert | a append | m merge | u undo | Ctrl+R redo | Ctrl+Q quit")
	a.requestRedraw()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// Close releases the plugins, the theme watcher and the screen. It is safe
// to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.pluginManager.ShutdownPlugins()
		if err := a.themeManager.Close(); err != nil {
			logger.Warnf("App: closing theme watcher: %v", err)
		}
		a.tuiManager.Close()
	})
}

// eventLoop handles TUI events until the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.handleKey(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// requestQuit closes the quit channel once.
func (a *App) requestQuit() {
	a.quitOnce.Do(func() {
		logger.Debugf("App: quit requested")
		close(a.quit)
	})
}

// Done is closed once a quit has been requested.
func (a *App) Done() <-chan struct{} {
	return a.quit
}

// SessionID identifies this editing session in the logs.
func (a *App) SessionID() string {
	return a.sessionID
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
