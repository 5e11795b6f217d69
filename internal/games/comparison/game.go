// Package comparison implements the "compare two numbers" game: the
// learner picks <, > or = for five pairs of numbers.
package comparison

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/session"
)

// ID is the registry and score-store identifier of the game.
const ID = "comparison"

const title = "So sánh số"

// Status is the state of the current question.
type Status int

const (
	StatusPlaying   Status = iota // Waiting for an answer
	StatusCorrect                 // Showing "correct" before the next question
	StatusIncorrect               // Showing "try harder" before the next question
	StatusFinished                // Round over, score awarded
)

// Game implements the comparison game logic.
type Game struct {
	env    registry.Env
	host   registry.Host
	logger *log.Logger
	cfg    config.ComparisonConfig
	rng    *rand.Rand

	questions []Question
	index     int
	score     int
	status    Status
	timer     int // Ticks left on the feedback message
	awarded   bool
	cursor    int // Highlighted operator button
}

// New creates a comparison game wired to env.
func New(env registry.Env) *Game {
	return &Game{
		env:    env,
		host:   env.HostOrNop(),
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

// Reset loads config and draws a new round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadComparison(g.env.ConfigPath(ID))
	if err != nil {
		g.logger.Warn("comparison config rejected, using defaults", "err", err)
		cfg = config.DefaultComparisonConfig()
	}
	g.cfg = cfg

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.Restart()
}

// Restart draws new questions and clears the score.
func (g *Game) Restart() {
	g.questions = NewQuestions(g.rng, g.cfg)
	g.index = 0
	g.score = 0
	g.status = StatusPlaying
	g.timer = 0
	g.awarded = false
	g.cursor = 0
}

// Answer submits an operator for the current question. It is ignored
// unless a question is waiting for an answer.
func (g *Game) Answer(op Operator) Status {
	if g.status != StatusPlaying {
		return g.status
	}

	if op == g.questions[g.index].Answer() {
		g.status = StatusCorrect
		g.score += g.cfg.PointsPerCorrect
	} else {
		g.status = StatusIncorrect
	}
	g.timer = g.cfg.FeedbackTicks
	if g.timer <= 0 {
		g.advance()
	}
	return g.status
}

// advance moves to the next question or finishes the round.
func (g *Game) advance() {
	if g.index < len(g.questions)-1 {
		g.index++
		g.status = StatusPlaying
		return
	}

	g.status = StatusFinished
	if !g.awarded {
		g.awarded = true
		g.host.AwardPoints(g.score)
		g.logger.Info("comparison round finished", "score", g.score)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionBack) {
		g.host.SetScreen(session.ScreenLearningHub)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) {
		g.Restart()
		return core.StepResult{State: g.State()}
	}

	switch g.status {
	case StatusPlaying:
		g.handleInput(in)
	case StatusCorrect, StatusIncorrect:
		g.timer--
		if g.timer <= 0 {
			g.advance()
		}
	case StatusFinished:
		if in.Has(core.ActionConfirm) {
			g.Restart()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	n := len(Operators)
	if i, ok := in.Choice(); ok {
		g.cursor = i
		g.Answer(Operators[i])
		return
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor = (g.cursor - 1 + n) % n
	case in.Has(core.ActionRight):
		g.cursor = (g.cursor + 1) % n
	case in.Has(core.ActionConfirm):
		g.Answer(Operators[g.cursor])
	}
}

// Question returns the current question.
func (g *Game) Question() Question {
	return g.questions[g.index]
}

// Status returns the state of the current question.
func (g *Game) Status() Status {
	return g.status
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.status == StatusFinished,
	}
}

// Render draws the current question, buttons and feedback.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w := dst.Width()

	if g.status == StatusFinished {
		dst.DrawTextCentered(dst.Height()/2-2, "Hoàn thành!", core.ColorPurple)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Điểm của bé: %d", g.score), core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2+2, "Enter/R: Chơi lại   B: Quay lại", core.ColorGray)
		return
	}

	header := fmt.Sprintf("Câu hỏi: %d / %d", g.index+1, len(g.questions))
	dst.DrawText(2, 0, header)
	scoreText := fmt.Sprintf("Điểm: %d", g.score)
	dst.DrawText(w-len([]rune(scoreText))-2, 0, scoreText)

	// Progress bar
	barW := w - 4
	filled := barW * (g.index + 1) / len(g.questions)
	dst.DrawHLine(2, 1, barW, '░', core.ColorGray)
	dst.DrawHLine(2, 1, filled, '█', core.ColorBlue)

	q := g.questions[g.index]
	border := core.ColorGray
	switch g.status {
	case StatusCorrect:
		border = core.ColorGreen
	case StatusIncorrect:
		border = core.ColorRed
	case StatusPlaying, StatusFinished:
	}
	card := core.NewRect(w/2-15, 3, 30, 7)
	dst.DrawBox(card, border)
	dst.DrawTextColored(card.X+6, card.Y+3, fmt.Sprintf("%2d", q.A), core.ColorBrightBlue)
	dst.DrawTextColored(card.X+14, card.Y+3, "?", core.ColorGray)
	dst.DrawTextColored(card.X+22, card.Y+3, fmt.Sprintf("%-2d", q.B), core.ColorPink)

	switch g.status {
	case StatusCorrect:
		dst.DrawTextCentered(card.Bottom()+1, "Đúng rồi!", core.ColorBrightGreen)
	case StatusIncorrect:
		dst.DrawTextCentered(card.Bottom()+1, "Cố lên nào!", core.ColorBrightRed)
	case StatusPlaying, StatusFinished:
	}

	var buttons strings.Builder
	for i, op := range Operators {
		label := fmt.Sprintf(" %d) %s ", i+1, op)
		if i == g.cursor && g.status == StatusPlaying {
			label = "[" + strings.TrimSpace(label) + "]"
		}
		fmt.Fprintf(&buttons, "%-9s", label)
	}
	dst.DrawTextCentered(card.Bottom()+3, strings.TrimRight(buttons.String(), " "), core.ColorWhite)
	dst.DrawTextCentered(dst.Height()-1, "1/2/3 hoặc ←/→ + Enter: chọn   B: Quay lại", core.ColorGray)
}

func init() {
	registry.Register(ID, title, func(env registry.Env) registry.Game {
		return New(env)
	})
}
