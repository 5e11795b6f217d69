// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/session"
)

// Game is the core interface that all learning games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "platformer").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Jump, Choice1, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Holder is implemented by games in which Left and Right act while held
// (walking) rather than once per press (moving a cursor).
// HoldsDirections may change from tick to tick.
type Holder interface {
	HoldsDirections() bool
}

// Host is the part of the session a game may touch: it can award points
// when it finishes and send the learner to another screen.
// *session.Store satisfies it.
type Host interface {
	AwardPoints(amount int)
	SetScreen(screen session.Screen)
}

// Env carries the collaborators a factory wires into a new game.
type Env struct {
	Host        Host
	Logger      *log.Logger
	ConfigPaths map[string]string // Custom config file per game ID
	LevelPath   string            // Custom platformer level file
}

// ConfigPath returns the custom config path for a game, or "".
func (e Env) ConfigPath(id string) string {
	return e.ConfigPaths[id]
}

// HostOrNop returns the env's host, or one that ignores every call.
func (e Env) HostOrNop() Host {
	if e.Host == nil {
		return nopHost{}
	}
	return e.Host
}

// LoggerOrDiscard returns the env's logger, or one that writes nowhere.
func (e Env) LoggerOrDiscard() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

type nopHost struct{}

func (nopHost) AwardPoints(int)          {}
func (nopHost) SetScreen(session.Screen) {}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game wired to env.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(env), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
