// Package platformer implements a side-scrolling platformer where landing
// on a question block pauses the run for an addition quiz.
//
// The Engine is pure game logic driven one tick at a time. Game adapts it
// to the registry interface and draws it into a core.Screen.
package platformer

import (
	"math/rand"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/session"
)

// Mode is the engine's state machine state.
type Mode int

const (
	ModePlaying Mode = iota // Physics runs
	ModeQuiz                // A prompt is up, physics frozen
	ModeWon                 // Goal reached, terminal until Restart
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModeQuiz:
		return "quiz"
	case ModeWon:
		return "won"
	default:
		return "unknown"
	}
}

// Feedback is the result of answering a quiz.
type Feedback int

const (
	FeedbackNone    Feedback = iota
	FeedbackCorrect          // Prompt closes after the answer delay
	FeedbackWrong            // Prompt stays, message shown briefly
	FeedbackIgnored          // No prompt, or the answer delay is running
)

// Message returns the line shown to the learner, or "".
func (f Feedback) Message() string {
	switch f {
	case FeedbackCorrect:
		return "Đúng rồi!"
	case FeedbackWrong:
		return "Sai rồi, thử lại nhé!"
	default:
		return ""
	}
}

// Player is the kinematic state of the player. Y grows downward.
type Player struct {
	X, Y     float64
	VX, VY   float64
	Airborne bool
}

// Snapshot is a read-only view of the engine for rendering and tests.
type Snapshot struct {
	Mode      Mode
	Player    Player
	Quiz      *Quiz // nil outside ModeQuiz
	Feedback  Feedback
	Collected int // Physical collectibles picked up
	Correct   int // Quizzes answered correctly
	Score     int
	Awarded   bool
	Ticks     uint64
}

// Engine runs one platformer session.
type Engine struct {
	cfg   config.PlatformerConfig
	level *Level
	host  registry.Host
	rng   *rand.Rand

	newQuiz func() Quiz

	player      Player
	left, right bool
	mode        Mode
	quiz        *Quiz
	collected   map[int]struct{}
	correct     int
	score       int
	awarded     bool

	feedback      Feedback
	feedbackTicks int // Ticks left on a wrong-answer message
	resolveTicks  int // Ticks left before a correctly answered prompt closes
	restingOn     int // Object the player stood on after the last tick, -1 if none
	ticks         uint64
}

// NewEngine creates an engine at the spawn point. A nil host ignores
// awards and navigation.
func NewEngine(cfg config.PlatformerConfig, level *Level, host registry.Host, rng *rand.Rand) *Engine {
	if host == nil {
		host = registry.Env{}.HostOrNop()
	}
	e := &Engine{
		cfg:   cfg,
		level: level,
		host:  host,
		rng:   rng,
	}
	e.newQuiz = func() Quiz { return GenerateQuiz(e.rng, e.cfg.Quiz) }
	e.Restart()
	return e
}

// Restart resets the player, the collected set, the score and any quiz.
func (e *Engine) Restart() {
	e.player = Player{
		X:        e.cfg.Player.SpawnX,
		Y:        e.cfg.Player.SpawnY,
		Airborne: true,
	}
	e.left, e.right = false, false
	e.mode = ModePlaying
	e.quiz = nil
	e.collected = make(map[int]struct{})
	e.correct = 0
	e.score = 0
	e.awarded = false
	e.feedback = FeedbackNone
	e.feedbackTicks = 0
	e.resolveTicks = 0
	e.restingOn = -1
	e.ticks = 0
}

// MoveLeft sets or clears the left control flag.
func (e *Engine) MoveLeft(active bool) { e.left = active }

// MoveRight sets or clears the right control flag.
func (e *Engine) MoveRight(active bool) { e.right = active }

// Jump starts a jump when the player is standing and the game is running.
func (e *Engine) Jump() {
	if e.mode != ModePlaying || e.player.Airborne {
		return
	}
	e.player.VY = e.cfg.Physics.JumpForce
	e.player.Airborne = true
}

// Answer submits a value for the open quiz.
func (e *Engine) Answer(value int) Feedback {
	if e.mode != ModeQuiz || e.quiz == nil || e.resolveTicks > 0 {
		return FeedbackIgnored
	}

	if !e.quiz.Correct(value) {
		e.feedback = FeedbackWrong
		e.feedbackTicks = e.cfg.Quiz.FeedbackTicks
		return FeedbackWrong
	}

	e.correct++
	e.feedback = FeedbackCorrect
	e.feedbackTicks = 0
	e.resolveTicks = e.cfg.Quiz.AnswerDelayTicks
	if e.resolveTicks <= 0 {
		e.closeQuiz()
	}
	return FeedbackCorrect
}

// AnswerChoice answers with the i-th shown choice.
func (e *Engine) AnswerChoice(i int) Feedback {
	if e.quiz == nil || i < 0 || i >= len(e.quiz.Choices) {
		return FeedbackIgnored
	}
	return e.Answer(e.quiz.Choices[i])
}

// Leave sends the learner back to the learning hub.
func (e *Engine) Leave() {
	e.host.SetScreen(session.ScreenLearningHub)
}

// Step advances the engine by one tick. Physics only runs while playing;
// the quiz timers still count down in the other modes.
func (e *Engine) Step() {
	e.ticks++

	switch e.mode {
	case ModePlaying:
		e.stepPhysics()
	case ModeQuiz:
		e.stepQuiz()
	case ModeWon:
	}
}

func (e *Engine) stepQuiz() {
	if e.resolveTicks > 0 {
		e.resolveTicks--
		if e.resolveTicks == 0 {
			e.closeQuiz()
		}
		return
	}
	if e.feedbackTicks > 0 {
		e.feedbackTicks--
		if e.feedbackTicks == 0 {
			e.feedback = FeedbackNone
		}
	}
}

func (e *Engine) closeQuiz() {
	e.quiz = nil
	e.mode = ModePlaying
	e.feedback = FeedbackNone
	e.resolveTicks = 0
}

func (e *Engine) openQuiz() {
	q := e.newQuiz()
	e.quiz = &q
	e.mode = ModeQuiz
	e.feedback = FeedbackNone
	e.feedbackTicks = 0
}

func (e *Engine) win() {
	e.mode = ModeWon
	e.score = e.runningScore()
	if e.awarded {
		return
	}
	e.awarded = true
	e.host.AwardPoints(e.score)
}

func (e *Engine) runningScore() int {
	return e.cfg.Scoring.PointsPerCollectible * (len(e.collected) + e.correct)
}

// Camera returns the horizontal scroll offset for a viewport of width vw.
func (e *Engine) Camera(vw float64) float64 {
	return core.ClampF(e.player.X-vw/2, 0, e.level.Width-vw)
}

// Collected reports whether the collectible with the given ID was picked up.
func (e *Engine) Collected(id int) bool {
	_, ok := e.collected[id]
	return ok
}

// Level returns the level being played.
func (e *Engine) Level() *Level { return e.level }

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:      e.mode,
		Player:    e.player,
		Feedback:  e.feedback,
		Collected: len(e.collected),
		Correct:   e.correct,
		Score:     e.runningScore(),
		Awarded:   e.awarded,
		Ticks:     e.ticks,
	}
	if e.mode == ModeWon {
		snap.Score = e.score
	}
	if e.quiz != nil {
		q := *e.quiz
		q.Choices = append([]int(nil), e.quiz.Choices...)
		snap.Quiz = &q
	}
	return snap
}
