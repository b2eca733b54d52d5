// Package registry provides a global registry for bot factories.
// Bots register themselves in init() functions, allowing the CLI and the
// TUI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
)

// Bot is an agent that picks one command per turn.
// Bots hold no reference to the engine; they only see observations.
type Bot interface {
	// Name returns the identifier used for CLI flags and score storage.
	Name() string

	// Decide returns the command for the next turn.
	// A returned error is reported by the caller and the turn is played
	// as a stay.
	Decide(ctx context.Context, obs breakout.Observation) (breakout.Command, error)
}

// BotInfo contains metadata about a registered bot.
type BotInfo struct {
	Name        string
	Description string
}

// Factory creates a new bot for a game played with cfg.
type Factory func(cfg config.Config) (Bot, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a bot factory to the registry.
// Panics if a bot with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: bot %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered bots, sorted by name.
func List() []BotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BotInfo, 0, len(factories))
	for name := range factories {
		result = append(result, BotInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new bot by name.
func Create(name string, cfg config.Config) (Bot, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown bot %q", name)
	}

	b, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: create bot %q: %w", name, err)
	}
	return b, nil
}

// Exists checks if a bot with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
