package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/med/internal/logger"
)

// ErrUnknownCommand is returned by Execute for unregistered names.
var ErrUnknownCommand = errors.New("unknown command")

// Commands maps command names to their functions.
type Commands struct {
	mu    sync.RWMutex
	funcs map[string]CommandFunc
}

// NewCommands creates an empty command registry.
func NewCommands() *Commands {
	return &Commands{funcs: make(map[string]CommandFunc)}
}

// Register adds a command. Names are case-sensitive and must be unique.
func (c *Commands) Register(name string, fn CommandFunc) error {
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("invalid command name '%s'", name)
	}
	if fn == nil {
		return fmt.Errorf("command '%s' has no function", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.funcs[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	c.funcs[name] = fn
	logger.DebugTagf("plugin", "Registered command: %s", name)
	return nil
}

// Execute runs a command line such as "theme light".
func (c *Commands) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errors.New("empty command")
	}

	c.mu.RLock()
	fn, ok := c.funcs[fields[0]]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	logger.DebugTagf("plugin", "Executing command: %s %v", fields[0], fields[1:])
	return fn(fields[1:])
}

// Has reports whether name is registered.
func (c *Commands) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.funcs[name]
	return ok
}

// Names returns the registered names, sorted.
func (c *Commands) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
