// plugins/tally/tally.go
package tally

import (
	"fmt"
	"sync"

	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/plugin"
)

// Ensure Tally implements plugin.Plugin
var _ plugin.Plugin = (*Tally)(nil)

// Counts is a snapshot of the session's editing activity.
type Counts struct {
	Edits    int
	Undos    int
	Redos    int
	Rejected int
}

// Tally counts editing events and reports them with the "tally" command.
type Tally struct {
	api plugin.EditorAPI

	mu     sync.Mutex
	counts Counts
}

// New creates a new instance of the Tally plugin.
func New() plugin.Plugin {
	return &Tally{}
}

// Name returns the unique name of the plugin.
func (p *Tally) Name() string {
	return "Tally"
}

// Initialize subscribes to editing events and registers the tally command.
func (p *Tally) Initialize(api plugin.EditorAPI) error {
	p.api = api

	api.SubscribeEvent(event.TypeEditRecorded, p.count(func(c *Counts) { c.Edits++ }))
	api.SubscribeEvent(event.TypeUndo, p.count(func(c *Counts) { c.Undos++ }))
	api.SubscribeEvent(event.TypeRedo, p.count(func(c *Counts) { c.Redos++ }))
	api.SubscribeEvent(event.TypeOperationRejected, p.count(func(c *Counts) { c.Rejected++ }))

	if err := api.RegisterCommand("tally", p.executeTally); err != nil {
		return fmt.Errorf("failed to register 'tally' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *Tally) Shutdown() error {
	return nil
}

// Counts returns the current totals.
func (p *Tally) Counts() Counts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts
}

func (p *Tally) count(bump func(*Counts)) event.Handler {
	return func(event.Event) bool {
		p.mu.Lock()
		bump(&p.counts)
		p.mu.Unlock()
		return false
	}
}

// executeTally shows the totals in the status bar. "tally reset" clears them.
func (p *Tally) executeTally(args []string) error {
	if p.api == nil {
		return fmt.Errorf("tally plugin not initialized with API")
	}
	if len(args) > 0 {
		if args[0] != "reset" {
			return fmt.Errorf("usage: tally [reset]")
		}
		p.mu.Lock()
		p.counts = Counts{}
		p.mu.Unlock()
		p.api.SetStatusMessage("Tally reset")
		return nil
	}

	c := p.Counts()
	stats := p.api.HistoryStats()
	p.api.SetStatusMessage("Edits: %d, Undos: %d, Redos: %d, Rejected: %d | History: %d nodes, depth %d",
		c.Edits, c.Undos, c.Redos, c.Rejected, stats.Nodes, stats.Depth)
	return nil
}
