package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/games/comparison"
	"github.com/vovakirdan/mathkids/internal/games/platformer"
	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/session"
	"github.com/vovakirdan/mathkids/internal/storage"
)

// view is one screen of the app.
type view interface {
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}

// typer is implemented by views that take text input. While Typing is
// true every key goes to the view.
type typer interface {
	Typing() bool
}

// gameScreens maps the mini-game screens to the games they run.
var gameScreens = map[session.Screen]string{
	session.ScreenComparisonGame: comparison.ID,
	session.ScreenPlatformerGame: platformer.ID,
}

// Options holds the collaborators of an App.
type Options struct {
	Store   *session.Store // Required; one per app instance
	Scores  *storage.Store // Optional score store
	Logger  *log.Logger
	Runtime core.RuntimeConfig
	Input   config.InputConfig
	// ConfigPaths and LevelPath are handed to game factories.
	ConfigPaths   map[string]string
	LevelPath     string
	ScreenshotDir string
}

// App is the root model. It shows whichever screen the session store
// selects and hands keys to that screen's view.
type App struct {
	ctx     context.Context
	store   *session.Store
	scores  *storage.Store
	logger  *log.Logger
	runtime core.RuntimeConfig
	input   config.InputConfig
	env     registry.Env
	shotDir string
	keys    KeyMap

	width  int
	height int
	shown  session.Screen
	gen    int

	game      *GameModel
	login     *LoginView
	dashboard *DashboardView
	hub       *HubView
	counting  *CountingView
	tracing   *TracingView
	rewards   *RewardsView
	reports   *ReportsView
	profile   *ProfileView

	unsubscribe func()
	quitting    bool
}

// NewApp creates the root model. Requests started by its views are
// cancelled when ctx is done.
func NewApp(ctx context.Context, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runtime := opts.Runtime
	def := core.DefaultConfig()
	runtime.ScreenW = positiveOr(runtime.ScreenW, def.ScreenW)
	runtime.ScreenH = positiveOr(runtime.ScreenH, def.ScreenH)
	runtime.TickRate = positiveOr(runtime.TickRate, def.TickRate)

	store := opts.Store
	a := &App{
		ctx:     ctx,
		store:   store,
		scores:  opts.Scores,
		logger:  logger,
		runtime: runtime,
		input:   opts.Input,
		env: registry.Env{
			Host:        store,
			Logger:      logger,
			ConfigPaths: opts.ConfigPaths,
			LevelPath:   opts.LevelPath,
		},
		shotDir:   opts.ScreenshotDir,
		keys:      DefaultKeyMap(),
		width:     runtime.ScreenW,
		height:    runtime.ScreenH,
		login:     NewLoginView(ctx, store),
		dashboard: NewDashboardView(store),
		hub:       NewHubView(store),
		counting:  NewCountingView(),
		tracing:   NewTracingView(),
		rewards:   NewRewardsView(store, opts.Scores, logger),
		reports:   NewReportsView(store, opts.Scores, logger),
		profile:   NewProfileView(ctx, store),
	}
	a.shown = store.Snapshot().Effective()
	a.unsubscribe = store.Subscribe(func(s session.Snapshot) {
		logger.Debug("session changed", "screen", s.Effective(), "signed_in", s.SignedIn())
	})
	return a
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// Init enters the initial screen.
func (a *App) Init() tea.Cmd {
	return a.enter(a.shown)
}

// Update routes a message and then follows any screen change it caused.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.game != nil {
			a.game.Resize(a.width, a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case TickMsg:
		if a.game == nil {
			return a, nil
		}
		return a, a.sync(a.game.HandleTick(msg))

	// Results arrive after the store changed, so the view that asked
	// may no longer be on screen.
	case authResultMsg:
		return a, a.sync(a.login.Update(msg))
	case profileSavedMsg:
		return a, a.sync(a.profile.Update(msg))
	}

	return a, a.sync(a.viewFor(a.shown).Update(msg))
}

// handleKey applies the global keys and passes the rest to the view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	v := a.viewFor(a.shown)
	if t, ok := v.(typer); ok && t.Typing() {
		return a, a.sync(v.Update(msg))
	}

	_, inGame := gameScreens[a.shown]
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.SignOut):
		a.store.SignOut()
		return a, a.sync(nil)
	case key.Matches(msg, a.keys.Back) && !inGame:
		// Games leave through their own Back handling
		if parent, ok := parentOf(a.shown); ok {
			a.store.SetScreen(parent)
		}
		return a, a.sync(nil)
	}

	return a, a.sync(v.Update(msg))
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.game = nil
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	return a, tea.Quit
}

// sync compares the store's effective screen with the one shown and
// enters the new screen when they differ.
func (a *App) sync(cmd tea.Cmd) tea.Cmd {
	next := a.store.Snapshot().Effective()
	if next == a.shown {
		return cmd
	}
	a.logger.Debug("screen", "from", a.shown, "to", next)
	a.shown = next
	return tea.Batch(cmd, a.enter(next))
}

// enter prepares the view of screen s.
func (a *App) enter(s session.Screen) tea.Cmd {
	if _, ok := gameScreens[s]; !ok {
		a.game = nil
	}

	switch s {
	case session.ScreenLogin:
		return a.login.Reset()
	case session.ScreenDashboard, session.ScreenLearningHub:
		return nil
	case session.ScreenComparisonGame, session.ScreenPlatformerGame:
		return a.startGame(gameScreens[s])
	case session.ScreenNumberLearning:
		a.counting = NewCountingView()
		return nil
	case session.ScreenWritingPractice:
		a.tracing = NewTracingView()
		return nil
	case session.ScreenRewards:
		a.rewards.Refresh()
		return nil
	case session.ScreenReports:
		a.reports.Refresh()
		return nil
	case session.ScreenProfile:
		a.profile.Reset()
		return nil
	}
	a.logger.Warn("entered unknown screen", "screen", s)
	return nil
}

// startGame creates a fresh run of the game and starts its tick loop.
func (a *App) startGame(id string) tea.Cmd {
	game, err := registry.Create(id, a.env)
	if err != nil {
		a.logger.Error("cannot start game", "game", id, "error", err)
		a.store.SetScreen(session.ScreenLearningHub)
		return a.sync(nil)
	}

	player := ""
	if p := a.store.Snapshot().Profile; p != nil {
		player = p.ID
	}

	cfg := a.runtime
	cfg.ScreenW = a.width
	cfg.ScreenH = a.contentHeight()

	a.gen++
	a.game = NewGameModel(game, cfg, GameOptions{
		Scores:        a.scores,
		Logger:        a.logger,
		Player:        player,
		HoldTicks:     a.input.HoldTicks,
		Gen:           a.gen,
		ScreenshotDir: a.shotDir,
	})
	a.logger.Info("game started", "game", id)
	return a.game.Init()
}

// viewFor returns the view of screen s. Every screen is listed; an
// unknown value falls back to the dashboard.
func (a *App) viewFor(s session.Screen) view {
	switch s {
	case session.ScreenLogin:
		return a.login
	case session.ScreenDashboard:
		return a.dashboard
	case session.ScreenLearningHub:
		return a.hub
	case session.ScreenComparisonGame, session.ScreenPlatformerGame:
		if a.game != nil {
			return gameView{a.game}
		}
		return a.hub
	case session.ScreenNumberLearning:
		return a.counting
	case session.ScreenWritingPractice:
		return a.tracing
	case session.ScreenRewards:
		return a.rewards
	case session.ScreenReports:
		return a.reports
	case session.ScreenProfile:
		return a.profile
	}
	return a.dashboard
}

// parentOf returns the screen Back leads to from s.
func parentOf(s session.Screen) (session.Screen, bool) {
	switch s {
	case session.ScreenLearningHub, session.ScreenRewards, session.ScreenReports, session.ScreenProfile:
		return session.ScreenDashboard, true
	case session.ScreenNumberLearning, session.ScreenWritingPractice,
		session.ScreenComparisonGame, session.ScreenPlatformerGame:
		return session.ScreenLearningHub, true
	case session.ScreenLogin, session.ScreenDashboard:
		return s, false
	}
	return session.ScreenDashboard, true
}

func (a *App) contentHeight() int {
	return max(a.height-headerHeight, 1)
}

// View renders the header and the current screen.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	v := a.viewFor(a.shown)
	p := a.store.Snapshot().Profile
	if a.shown == session.ScreenLogin || p == nil {
		return v.View(a.width, a.height)
	}
	return renderHeader(*p, a.width) + "\n" + v.View(a.width, a.contentHeight())
}

// gameView adapts a GameModel to the view interface.
type gameView struct {
	m *GameModel
}

func (g gameView) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && g.m.HandleKey(keyMsg) {
		return tea.Quit
	}
	return nil
}

func (g gameView) View(width, height int) string {
	if g.m.screen.Width() != width || g.m.screen.Height() != height {
		g.m.Resize(width, height)
	}
	return g.m.View()
}

// Run starts a local Bubble Tea program. It returns when the learner
// quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	app := NewApp(ctx, opts)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
