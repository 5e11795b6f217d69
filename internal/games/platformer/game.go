package platformer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/registry"
)

// ID is the registry and score-store identifier of the platformer.
const ID = "platformer"

const title = "Phiêu lưu toán học"

// Visual characters for rendering
const (
	BrickChar   = '▓'
	QuizChar    = '?'
	StarChar    = '★'
	CastleChar  = '▒'
	FlagChar    = '⚑'
	PlayerChar  = '█'
	PlayerEyes  = '•'
	hudRows     = 1
	choiceWidth = 8
)

// Game adapts the Engine to the registry.Game interface and renders it.
type Game struct {
	env     registry.Env
	logger  *log.Logger
	cfg     config.PlatformerConfig
	engine  *Engine
	runtime core.RuntimeConfig
	cursor  int // Highlighted quiz choice
}

// New creates a platformer wired to env.
func New(env registry.Env) *Game {
	return &Game{
		env:    env,
		logger: env.LoggerOrDiscard(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return title
}

// Reset loads config and level and starts a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPlatformer(g.env.ConfigPath(ID))
	if err != nil {
		g.logger.Warn("platformer config rejected, using defaults", "err", err)
		cfg = config.DefaultPlatformerConfig()
	}
	g.cfg = cfg

	levelPath := cfg.Level
	if g.env.LevelPath != "" {
		levelPath = g.env.LevelPath
	}
	level, err := LoadLevel(levelPath)
	if err != nil {
		g.logger.Warn("level rejected, using built-in level", "path", levelPath, "err", err)
		level, err = DefaultLevel()
		if err != nil {
			// Embedded level is covered by tests
			panic(fmt.Sprintf("platformer: built-in level: %v", err))
		}
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.engine = NewEngine(cfg, level, g.env.HostOrNop(), rand.New(rand.NewSource(seed)))
	g.cursor = 0
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step maps platform actions onto the engine and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionBack) {
		g.engine.Leave()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) {
		g.engine.Restart()
		g.cursor = 0
	}

	switch g.engine.mode {
	case ModePlaying:
		g.engine.MoveLeft(in.Has(core.ActionLeft))
		g.engine.MoveRight(in.Has(core.ActionRight))
		if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
			g.engine.Jump()
		}
	case ModeQuiz:
		g.engine.MoveLeft(false)
		g.engine.MoveRight(false)
		g.handleQuizInput(in)
	case ModeWon:
	}

	g.engine.Step()
	return core.StepResult{State: g.State()}
}

func (g *Game) handleQuizInput(in core.InputFrame) {
	n := len(g.engine.quiz.Choices)
	if i, ok := in.Choice(); ok {
		g.cursor = i
		g.engine.AnswerChoice(i)
		return
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor = (g.cursor - 1 + n) % n
	case in.Has(core.ActionRight):
		g.cursor = (g.cursor + 1) % n
	case in.Has(core.ActionConfirm):
		g.engine.AnswerChoice(g.cursor)
	}
}

// HoldsDirections reports whether Left and Right currently walk the
// player. During a quiz they move the answer cursor instead.
func (g *Game) HoldsDirections() bool {
	return g.engine.mode == ModePlaying
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.engine.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.Mode == ModeWon,
		Paused:   snap.Mode == ModeQuiz,
	}
}

// Render draws the visible part of the level, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()

	cam := g.engine.Camera(float64(dst.Width()) * g.cfg.Render.CellW)

	view := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	for _, obj := range g.engine.Level().Objects {
		if obj.Kind == KindCollectible && g.engine.Collected(obj.ID) {
			continue
		}
		r := g.toCells(obj.Box, cam)
		bounds := r
		if obj.Kind == KindGoal {
			// Include the flag above the castle
			bounds = core.NewRect(r.X, r.Y-1, r.W, r.H+1)
		}
		if !bounds.Intersects(view) {
			continue
		}
		g.drawObject(dst, obj, r)
	}

	pr := g.toCells(core.NewBox(snap.Player.X, snap.Player.Y, g.cfg.Player.Width, g.cfg.Player.Height), cam)
	dst.DrawRect(pr, PlayerChar, core.ColorRed)
	dst.SetColored(pr.Right()-1, pr.Y, PlayerEyes, core.ColorWhite)

	stars := g.engine.Level().Count(KindCollectible)
	hud := fmt.Sprintf(" ★ %d/%d  ✔ %d  Điểm: %d ", snap.Collected, stars, snap.Correct, snap.Score)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightYellow)
	hint := "←/→ đi  Space nhảy  B thoát "
	dst.DrawTextColored(dst.Width()-len([]rune(hint))-1, 0, hint, core.ColorGray)

	switch snap.Mode {
	case ModeQuiz:
		g.drawQuiz(dst, snap)
	case ModeWon:
		g.drawCenteredMessage(dst,
			fmt.Sprintf("Chiến thắng! +%d điểm", snap.Score),
			"R: chơi lại  B: về trung tâm học tập",
			core.ColorBrightGreen)
	case ModePlaying:
	}
}

// toCells converts a world box into screen cells relative to the camera.
func (g *Game) toCells(b core.Box, cam float64) core.Rect {
	cw, ch := g.cfg.Render.CellW, g.cfg.Render.CellH
	x0 := int(math.Floor((b.X - cam) / cw))
	y0 := int(math.Floor(b.Y / ch))
	x1 := int(math.Ceil((b.Right() - cam) / cw))
	y1 := int(math.Ceil(b.Bottom() / ch))
	return core.NewRect(x0, y0+hudRows, max(x1-x0, 1), max(y1-y0, 1))
}

func (g *Game) drawObject(dst *core.Screen, obj Object, r core.Rect) {
	switch obj.Kind {
	case KindSolid:
		dst.DrawRect(r, BrickChar, core.ColorBrown)
	case KindQuiz:
		dst.DrawRect(r, BrickChar, core.ColorOrange)
		dst.SetColored(r.X+r.W/2, r.Y+r.H/2, QuizChar, core.ColorBrightYellow)
	case KindCollectible:
		dst.SetColored(r.X+r.W/2, r.Y+r.H/2, StarChar, core.ColorYellow)
	case KindGoal:
		dst.DrawRect(r, CastleChar, core.ColorGray)
		dst.SetColored(r.X+r.W/2, r.Y-1, FlagChar, core.ColorBrightRed)
	}
}

func (g *Game) drawQuiz(dst *core.Screen, snap Snapshot) {
	q := snap.Quiz
	if q == nil {
		return
	}

	boxW := max(len(q.Choices)*choiceWidth+4, 30)
	box := core.NewRect((dst.Width()-boxW)/2, dst.Height()/2-4, boxW, 8)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightBlue)

	dst.DrawTextCentered(box.Y+1, "Câu hỏi!", core.ColorBrightBlue)
	dst.DrawTextCentered(box.Y+3, q.Text(), core.ColorWhite)

	x := box.X + (box.W-len(q.Choices)*choiceWidth)/2
	for i, c := range q.Choices {
		label := fmt.Sprintf("%d) %d", i+1, c)
		color := core.ColorCyan
		if i == g.cursor {
			label = "[" + label + "]"
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(x+i*choiceWidth, box.Y+5, label, color)
	}

	switch snap.Feedback {
	case FeedbackCorrect:
		dst.DrawTextCentered(box.Y+6, snap.Feedback.Message(), core.ColorBrightGreen)
	case FeedbackWrong:
		dst.DrawTextCentered(box.Y+6, snap.Feedback.Message(), core.ColorBrightRed)
	case FeedbackNone, FeedbackIgnored:
	}
}

// drawCenteredMessage draws a boxed two-line message in the middle of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 6
	box := core.NewRect((dst.Width()-w)/2, dst.Height()/2-2, w, 5)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, title, c)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}

func init() {
	registry.Register(ID, title, func(env registry.Env) registry.Game {
		return New(env)
	})
}
