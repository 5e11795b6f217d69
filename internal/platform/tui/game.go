package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/storage"
)

// maxStepsPerFrame caps catch-up after a stalled frame.
const maxStepsPerFrame = 5

// GameModel runs one registry.Game inside the app: it turns key presses
// into input frames, drives Step at a fixed rate and saves the score once
// per finished round.
type GameModel struct {
	game          registry.Game
	screen        *core.Screen
	scores        *storage.Store
	logger        *log.Logger
	config        core.RuntimeConfig
	player        string // Profile ID the score rows are saved under
	gen           int
	stepper       *core.FixedStep
	lastTick      time.Time
	pending       core.InputFrame
	holdTicks     int
	holdLeft      int
	holdRight     int
	keyMapper     *KeyMapper
	state         core.GameState
	scoreSaved    bool
	screenshotDir string // Empty disables ctrl+s
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Scores        *storage.Store
	Logger        *log.Logger
	Player        string
	HoldTicks     int
	Gen           int
	ScreenshotDir string
}

// NewGameModel creates a model for game. The game is reset by Init.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) *GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &GameModel{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:        opts.Scores,
		logger:        logger,
		config:        cfg,
		player:        opts.Player,
		gen:           opts.Gen,
		stepper:       core.NewFixedStep(cfg.TickRate, maxStepsPerFrame),
		pending:       core.NewInputFrame(),
		holdTicks:     max(opts.HoldTicks, 1),
		keyMapper:     NewKeyMapper(),
		screenshotDir: opts.ScreenshotDir,
	}
}

// Init resets the game and starts the tick loop.
func (m *GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.stepper.Reset()
	m.lastTick = time.Time{}
	return tickCmd(m.config.TickRate, m.gen)
}

// State returns the game state after the latest step.
func (m *GameModel) State() core.GameState {
	return m.state
}

// Resize changes the drawing area. The game keeps its progress.
func (m *GameModel) Resize(width, height int) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.screen.Resize(width, height)
}

// HandleKey queues the action for the next step.
// It returns true if the key was a quit request.
func (m *GameModel) HandleKey(msg tea.KeyMsg) bool {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return false
	}

	action, isQuit := m.keyMapper.MapKeyToFrame(msg, &m.pending)
	if isQuit {
		return true
	}

	// Terminals never report key releases, so a press holds its
	// direction for holdTicks steps and auto-repeat keeps it going.
	switch action {
	case core.ActionLeft:
		m.holdLeft, m.holdRight = m.holdTicks, 0
	case core.ActionRight:
		m.holdRight, m.holdLeft = m.holdTicks, 0
	}
	return false
}

// HandleTick runs the steps owed since the previous tick and schedules
// the next one. Ticks from another run are dropped.
func (m *GameModel) HandleTick(msg TickMsg) tea.Cmd {
	if msg.Gen != m.gen {
		return nil
	}

	elapsed := m.stepper.Interval()
	if !m.lastTick.IsZero() {
		elapsed = msg.Time.Sub(m.lastTick)
	}
	m.lastTick = msg.Time

	for i, n := 0, m.stepper.Advance(elapsed); i < n; i++ {
		m.step()
	}
	return tickCmd(m.config.TickRate, m.gen)
}

// step builds one input frame and advances the game by one tick.
func (m *GameModel) step() {
	frame := core.NewInputFrame()
	for a, on := range m.pending.Actions {
		if on {
			frame.Set(a)
		}
	}
	m.pending.Clear()

	if h, ok := m.game.(registry.Holder); ok && h.HoldsDirections() {
		if m.holdLeft > 0 {
			frame.Set(core.ActionLeft)
		}
		if m.holdRight > 0 {
			frame.Set(core.ActionRight)
		}
		m.holdLeft = max(m.holdLeft-1, 0)
		m.holdRight = max(m.holdRight-1, 0)
	} else {
		m.holdLeft, m.holdRight = 0, 0
	}

	result := m.game.Step(frame)
	m.state = result.State

	if !m.state.GameOver {
		m.scoreSaved = false
		return
	}
	if !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}
}

// saveScore records a finished round. Storage is best-effort.
func (m *GameModel) saveScore() {
	if m.scores == nil {
		return
	}
	if _, err := m.scores.SaveScore(m.player, m.game.ID(), m.state.Score); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "score", m.state.Score)
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the game.
func (m *GameModel) View() string {
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}
