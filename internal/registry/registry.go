// Package registry provides a global registry for move-advisor factories.
// Advisors register themselves in init() functions, allowing the platform
// to pick a strategy by ID without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
)

// Advisor recommends a move for a player. Implementations must not modify
// the board they are given.
type Advisor interface {
	// ID returns a unique identifier (e.g., "simple", "extended").
	// Used for CLI flags and configuration.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// RecommendMove returns the 0-based column p should play, or -1 when
	// the board has no legal moves.
	RecommendMove(b connect4.Board, p connect4.Player) int
}

// AdvisorInfo contains metadata about a registered advisor.
type AdvisorInfo struct {
	ID    string
	Title string
}

// Factory creates a new advisor. rng feeds any randomized choice the advisor makes.
type Factory func(rng *rand.Rand) Advisor

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an advisor factory to the registry.
// Panics if an advisor with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: advisor %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	a := f(rand.New(rand.NewSource(1)))
	titles[id] = a.Title()
}

// List returns information about all registered advisors, sorted by ID.
func List() []AdvisorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]AdvisorInfo, 0, len(factories))
	for id := range factories {
		result = append(result, AdvisorInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new advisor by its ID.
// Returns an error if the ID is not registered.
func Create(id string, rng *rand.Rand) (Advisor, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown advisor %q", id)
	}

	return f(rng), nil
}

// Exists checks if an advisor with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
