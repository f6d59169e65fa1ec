// Package registry provides a global registry of game definitions. Games
// register themselves in init() functions, letting the host discover and
// run them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/live"
)

// Session is the game-agnostic view of one running play-through. The
// typed engine session lives behind it; the host advances, inspects and
// persists sessions without knowing the game's state or response types.
type Session interface {
	// Advance runs the session for at most tickBudget ticks. See
	// engine.Session.Advance for the full contract.
	Advance(ctx context.Context, tickBudget int) (engine.Score, error)

	// Ticks returns the number of completed ticks.
	Ticks() int

	// Identity returns the session's participant identity.
	Identity() engine.Identity

	// ScriptTokens returns the published responses encoded as script
	// tokens, sufficient to replay the session.
	ScriptTokens() []string

	// Frame renders the most recently published state.
	Frame() string
}

// Options selects the response source and tuning for a new session. When
// Source is set the session is live; otherwise Script is decoded into a
// canned response provider.
type Options struct {
	Seed        int64
	Identity    engine.Identity // generated when empty
	Script      []string
	Repeat      bool
	Source      live.Source
	Sink        live.Sink
	PollTimeout time.Duration
	Logger      *log.Logger
}

// Definition describes one registered game.
type Definition interface {
	// ID returns the unique identifier for this game (e.g. "pong").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// NewSession builds a ready-to-advance session from the options.
	NewSession(opts Options) (Session, error)
}

// Info contains metadata about a registered game.
type Info struct {
	ID    string
	Title string
}

var (
	definitions = make(map[string]Definition)
	mu          sync.RWMutex
)

// Register adds a game definition to the registry. Typically called from a
// game package's init() function. Panics if the ID is already taken.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := definitions[def.ID()]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", def.ID()))
	}
	definitions[def.ID()] = def
}

// List returns information about all registered games, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(definitions))
	for id, def := range definitions {
		result = append(result, Info{ID: id, Title: def.Title()})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the definition for a game ID.
func Get(id string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := definitions[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return def, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := definitions[id]
	return ok
}
