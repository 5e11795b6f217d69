package platformer

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/session"
)

type fakeHost struct {
	awards  []int
	screens []session.Screen
}

func (h *fakeHost) AwardPoints(n int)          { h.awards = append(h.awards, n) }
func (h *fakeHost) SetScreen(s session.Screen) { h.screens = append(h.screens, s) }

// buildLevel numbers objects in order, as the loader does.
func buildLevel(objs ...Object) *Level {
	l := &Level{ID: "test", Width: 2000, Height: 600}
	for i, o := range objs {
		o.ID = i
		l.Objects = append(l.Objects, o)
	}
	return l
}

func obj(kind Kind, x, y, w, h float64) Object {
	return Object{Kind: kind, Box: core.NewBox(x, y, w, h)}
}

func newTestEngine(cfg config.PlatformerConfig, level *Level) (*Engine, *fakeHost) {
	host := &fakeHost{}
	return NewEngine(cfg, level, host, rand.New(rand.NewSource(1))), host
}

func stepUntil(e *Engine, limit int, cond func(Snapshot) bool) bool {
	for i := 0; i < limit; i++ {
		e.Step()
		if cond(e.Snapshot()) {
			return true
		}
	}
	return false
}

func TestInitialState(t *testing.T) {
	e, _ := newTestEngine(config.DefaultPlatformerConfig(), buildLevel())
	snap := e.Snapshot()

	if snap.Mode != ModePlaying {
		t.Errorf("Mode = %v, expected playing", snap.Mode)
	}
	if snap.Player.X != 50 || snap.Player.Y != 0 || snap.Player.VX != 0 || snap.Player.VY != 0 {
		t.Errorf("Player = %+v, expected at rest at (50, 0)", snap.Player)
	}
	if !snap.Player.Airborne {
		t.Error("player should start airborne")
	}
}

func TestMoveRightUntilClamped(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	e, _ := newTestEngine(cfg, buildLevel(obj(KindSolid, 0, 560, 2000, 40)))
	e.MoveRight(true)

	limit := e.level.Width - cfg.Player.Width
	prevX := e.Snapshot().Player.X
	for i := 0; i < 400; i++ {
		e.Step()
		x := e.Snapshot().Player.X
		if x < prevX {
			t.Fatalf("step %d: x decreased from %v to %v", i, prevX, x)
		}
		if x == prevX && x != limit {
			t.Fatalf("step %d: x stalled at %v before reaching %v", i, x, limit)
		}
		prevX = x
	}
	if prevX != limit {
		t.Errorf("final x = %v, expected %v", prevX, limit)
	}
}

func TestHorizontalVelocityIsNotAccumulated(t *testing.T) {
	e, _ := newTestEngine(config.DefaultPlatformerConfig(), buildLevel(obj(KindSolid, 0, 560, 2000, 40)))

	e.MoveRight(true)
	e.Step()
	e.Step()
	if vx := e.Snapshot().Player.VX; vx != 6 {
		t.Errorf("VX = %v, expected 6", vx)
	}

	e.MoveLeft(true)
	e.Step()
	if vx := e.Snapshot().Player.VX; vx != 0 {
		t.Errorf("VX with both held = %v, expected 0", vx)
	}

	e.MoveRight(false)
	e.Step()
	if vx := e.Snapshot().Player.VX; vx != -6 {
		t.Errorf("VX = %v, expected -6", vx)
	}
}

func TestHorizontalPositionAlwaysClamped(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	level, err := DefaultLevel()
	if err != nil {
		t.Fatal(err)
	}
	e, _ := newTestEngine(cfg, level)
	rng := rand.New(rand.NewSource(42))
	maxX := level.Width - cfg.Player.Width

	for i := 0; i < 5000; i++ {
		e.MoveLeft(rng.Intn(3) == 0)
		e.MoveRight(rng.Intn(2) == 0)
		if rng.Intn(10) == 0 {
			e.Jump()
		}
		if q := e.Snapshot().Quiz; q != nil {
			e.Answer(q.Answer)
		}
		if e.Snapshot().Mode == ModeWon {
			e.Restart()
		}
		e.Step()

		x := e.Snapshot().Player.X
		if x < 0 || x > maxX {
			t.Fatalf("step %d: x = %v outside [0, %v]", i, x, maxX)
		}
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	e, _ := newTestEngine(cfg, buildLevel(obj(KindSolid, 0, 560, 2000, 40)))

	// Airborne at spawn
	e.Jump()
	if vy := e.Snapshot().Player.VY; vy != 0 {
		t.Fatalf("jump in the air changed VY to %v", vy)
	}

	if !stepUntil(e, 200, func(s Snapshot) bool { return !s.Player.Airborne }) {
		t.Fatal("player never landed")
	}
	e.Jump()
	snap := e.Snapshot()
	if snap.Player.VY != cfg.Physics.JumpForce || !snap.Player.Airborne {
		t.Errorf("after jump Player = %+v", snap.Player)
	}

	e.Step()
	if y := e.Snapshot().Player.Y; y >= 520 {
		t.Errorf("player should rise, y = %v", y)
	}
}

func TestHitFromBelow(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Player.SpawnY = 520
	e, _ := newTestEngine(cfg, buildLevel(
		obj(KindSolid, 0, 560, 2000, 40),
		obj(KindSolid, 0, 440, 200, 40),
	))

	e.Step() // land
	e.Jump()

	bumped := stepUntil(e, 10, func(s Snapshot) bool { return s.Player.VY == 0 })
	snap := e.Snapshot()
	if !bumped || snap.Player.Y != 480 {
		t.Errorf("expected to stop just below the block at y=480, got %+v", snap.Player)
	}
}

func TestHorizontalSnap(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Player.SpawnX = 100
	cfg.Player.SpawnY = 520
	e, _ := newTestEngine(cfg, buildLevel(
		obj(KindSolid, 0, 560, 2000, 40),
		obj(KindSolid, 200, 480, 40, 80),
		obj(KindSolid, 400, 480, 40, 80),
	))

	e.MoveRight(true)
	for i := 0; i < 30; i++ {
		e.Step()
	}
	if x := e.Snapshot().Player.X; x != 160 {
		t.Errorf("moving right: x = %v, expected snap to 160", x)
	}

	e.MoveRight(false)
	e.MoveLeft(true)
	e.player.X = 250
	for i := 0; i < 30; i++ {
		e.Step()
	}
	if x := e.Snapshot().Player.X; x != 240 {
		t.Errorf("moving left: x = %v, expected snap to 240", x)
	}
}

func TestCollectiblesDoNotBlock(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Player.SpawnY = 520
	e, _ := newTestEngine(cfg, buildLevel(
		obj(KindSolid, 0, 560, 2000, 40),
		obj(KindCollectible, 150, 525, 30, 30),
		obj(KindCollectible, 300, 525, 30, 30),
	))

	e.MoveRight(true)
	for i := 0; i < 60; i++ {
		e.Step()
	}
	snap := e.Snapshot()
	if snap.Collected != 2 {
		t.Errorf("Collected = %d, expected 2", snap.Collected)
	}
	if snap.Player.X != 50+60*6 {
		t.Errorf("x = %v, collectibles must not stop the player", snap.Player.X)
	}
	if !e.Collected(1) || !e.Collected(2) {
		t.Error("both collectibles should be marked")
	}
}

func TestRespawnAfterFalling(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	e, _ := newTestEngine(cfg, buildLevel())
	e.MoveRight(true)

	fellFar := false
	respawned := stepUntil(e, 200, func(s Snapshot) bool {
		if s.Player.Y > 300 {
			fellFar = true
		}
		return fellFar && s.Player.Y == cfg.Player.SpawnY
	})
	if !respawned {
		t.Fatal("player never respawned")
	}

	p := e.Snapshot().Player
	if p.X != cfg.Player.SpawnX || p.VX != 0 || p.VY != 0 {
		t.Errorf("respawned player = %+v, expected at spawn with zero velocity", p)
	}
}

func TestQuizForThreePlusFour(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	for seed := int64(0); seed < 50; seed++ {
		q := NewQuiz(3, 4, rand.New(rand.NewSource(seed)), cfg.Quiz)

		if q.Answer != 7 || q.Text() != "3 + 4 = ?" {
			t.Fatalf("quiz = %+v", q)
		}
		if len(q.Choices) != 3 {
			t.Fatalf("choices = %v, expected 3", q.Choices)
		}
		sevens := 0
		for _, c := range q.Choices {
			if c == 7 {
				sevens++
			}
		}
		if sevens != 1 {
			t.Errorf("seed %d: choices %v hold %d sevens", seed, q.Choices, sevens)
		}
		sorted := slices.Clone(q.Choices)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != 3 {
			t.Errorf("seed %d: choices %v not distinct", seed, q.Choices)
		}
	}
}

func TestGenerateQuizRanges(t *testing.T) {
	cfg := config.DefaultPlatformerConfig().Quiz
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		q := GenerateQuiz(rng, cfg)
		if q.A < 1 || q.A > 9 || q.B < 1 || q.B > 9 {
			t.Fatalf("operands out of range: %+v", q)
		}
		for _, c := range q.Choices {
			if c != q.Answer && (c < 1 || c > 18) {
				t.Fatalf("distractor %d out of range in %+v", c, q)
			}
		}
	}
}

// quizEngine returns an engine whose player falls straight onto a quiz
// block that always asks 3 + 4.
func quizEngine(t *testing.T) (*Engine, *fakeHost) {
	t.Helper()
	cfg := config.DefaultPlatformerConfig()
	e, host := newTestEngine(cfg, buildLevel(
		obj(KindQuiz, 40, 560, 60, 40),
		obj(KindGoal, 1800, 560, 200, 40),
	))
	rng := rand.New(rand.NewSource(3))
	e.newQuiz = func() Quiz { return NewQuiz(3, 4, rng, cfg.Quiz) }

	if !stepUntil(e, 200, func(s Snapshot) bool { return s.Mode == ModeQuiz }) {
		t.Fatal("landing on the quiz block should open a quiz")
	}
	return e, host
}

func TestQuizWrongAnswerKeepsPrompt(t *testing.T) {
	e, _ := quizEngine(t)
	before := e.Snapshot()

	wrong := before.Quiz.Choices[0]
	if wrong == 7 {
		wrong = before.Quiz.Choices[1]
	}
	if fb := e.Answer(wrong); fb != FeedbackWrong {
		t.Fatalf("Answer(%d) = %v, expected wrong", wrong, fb)
	}

	after := e.Snapshot()
	if after.Mode != ModeQuiz || after.Feedback != FeedbackWrong {
		t.Errorf("after wrong answer mode=%v feedback=%v", after.Mode, after.Feedback)
	}
	if !slices.Equal(after.Quiz.Choices, before.Quiz.Choices) || after.Quiz.A != 3 {
		t.Errorf("prompt changed from %+v to %+v", before.Quiz, after.Quiz)
	}
	if after.Player != before.Player {
		t.Error("physics must stay frozen during a quiz")
	}

	for i := 0; i < 60; i++ {
		e.Step()
	}
	snap := e.Snapshot()
	if snap.Feedback != FeedbackNone || snap.Mode != ModeQuiz {
		t.Errorf("after feedback delay mode=%v feedback=%v", snap.Mode, snap.Feedback)
	}
}

func TestQuizCorrectAnswerResumesAfterDelay(t *testing.T) {
	e, _ := quizEngine(t)

	if fb := e.Answer(7); fb != FeedbackCorrect {
		t.Fatalf("Answer(7) = %v, expected correct", fb)
	}
	if fb := e.Answer(7); fb != FeedbackIgnored {
		t.Errorf("answer during the delay = %v, expected ignored", fb)
	}

	for i := 0; i < 59; i++ {
		e.Step()
	}
	if snap := e.Snapshot(); snap.Mode != ModeQuiz || snap.Feedback != FeedbackCorrect {
		t.Fatalf("before the delay ends mode=%v feedback=%v", snap.Mode, snap.Feedback)
	}

	e.Step()
	snap := e.Snapshot()
	if snap.Mode != ModePlaying || snap.Quiz != nil {
		t.Errorf("after the delay mode=%v quiz=%v", snap.Mode, snap.Quiz)
	}
	if snap.Correct != 1 || snap.Score != 10 {
		t.Errorf("Correct=%d Score=%d, expected 1 and 10", snap.Correct, snap.Score)
	}
}

func TestQuizDoesNotRetriggerWhileResting(t *testing.T) {
	e, _ := quizEngine(t)
	e.Answer(7)

	for i := 0; i < 300; i++ {
		e.Step()
		if i >= 60 && e.Snapshot().Mode != ModePlaying {
			t.Fatalf("tick %d: quiz re-opened while standing on the block", i)
		}
	}

	// A new landing asks again
	e.Jump()
	if !stepUntil(e, 100, func(s Snapshot) bool { return s.Mode == ModeQuiz }) {
		t.Error("landing on the block again should open a new quiz")
	}
}

func TestAnswerOutsideQuizIsIgnored(t *testing.T) {
	e, _ := newTestEngine(config.DefaultPlatformerConfig(), buildLevel())
	if fb := e.Answer(7); fb != FeedbackIgnored {
		t.Errorf("Answer outside a quiz = %v", fb)
	}
	if fb := e.AnswerChoice(0); fb != FeedbackIgnored {
		t.Errorf("AnswerChoice outside a quiz = %v", fb)
	}
}

func TestGoalAwardsOnce(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	e, host := newTestEngine(cfg, buildLevel(
		obj(KindQuiz, 50, 560, 40, 40),
		obj(KindGoal, 90, 560, 400, 40),
		obj(KindCollectible, 50, 100, 30, 30),
	))
	e.newQuiz = func() Quiz { return NewQuiz(3, 4, e.rng, cfg.Quiz) }

	if !stepUntil(e, 200, func(s Snapshot) bool { return s.Mode == ModeQuiz }) {
		t.Fatal("expected a quiz on the first block")
	}
	if e.Snapshot().Collected != 1 {
		t.Fatal("the star on the way down should be collected")
	}
	e.Answer(7)
	stepUntil(e, 100, func(s Snapshot) bool { return s.Mode == ModePlaying })

	e.MoveRight(true)
	if !stepUntil(e, 100, func(s Snapshot) bool { return s.Mode == ModeWon }) {
		t.Fatal("walking onto the goal should win")
	}
	for i := 0; i < 120; i++ {
		e.Step()
	}

	if len(host.awards) != 1 || host.awards[0] != 20 {
		t.Errorf("awards = %v, expected exactly one award of 20", host.awards)
	}
	snap := e.Snapshot()
	if snap.Mode != ModeWon || snap.Score != 20 || !snap.Awarded {
		t.Errorf("won snapshot = %+v", snap)
	}

	// Jumping is ignored once won
	e.Jump()
	if e.Snapshot().Player.VY != 0 {
		t.Error("jump should be ignored after winning")
	}
}

func TestGoalAndCollectibleSameStep(t *testing.T) {
	tests := []struct {
		name      string
		objects   []Object
		collected int
		award     int
	}{
		{
			name: "star resting on the goal",
			objects: []Object{
				obj(KindGoal, 0, 560, 400, 40),
				obj(KindCollectible, 50, 540, 30, 30),
			},
			collected: 1,
			award:     10,
		},
		{
			// Checked against the box already snapped onto the goal
			name: "sunken star after the goal",
			objects: []Object{
				obj(KindGoal, 0, 560, 400, 40),
				obj(KindCollectible, 50, 562, 30, 30),
			},
			collected: 0,
			award:     0,
		},
		{
			name: "sunken star before the goal",
			objects: []Object{
				obj(KindCollectible, 50, 562, 30, 30),
				obj(KindGoal, 0, 560, 400, 40),
			},
			collected: 1,
			award:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, host := newTestEngine(config.DefaultPlatformerConfig(), buildLevel(tt.objects...))
			// Above both objects, fast enough to cross the goal's top this step
			e.player.Y = 495
			e.player.VY = 30

			e.Step()

			snap := e.Snapshot()
			if snap.Mode != ModeWon {
				t.Fatalf("mode = %v, expected Won after one step", snap.Mode)
			}
			if snap.Collected != tt.collected {
				t.Errorf("collected = %d, expected %d", snap.Collected, tt.collected)
			}
			if len(host.awards) != 1 || host.awards[0] != tt.award {
				t.Errorf("awards = %v, expected [%d]", host.awards, tt.award)
			}
		})
	}
}

func TestDefaultLevelGoalIsReachable(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Player.SpawnX = 1750
	cfg.Player.SpawnY = 520
	level, err := DefaultLevel()
	if err != nil {
		t.Fatal(err)
	}
	e, host := newTestEngine(cfg, level)
	e.MoveRight(true)

	won := false
	for i := 0; i < 600 && !won; i++ {
		e.Jump()
		e.Step()
		won = e.Snapshot().Mode == ModeWon
	}
	if !won {
		t.Fatalf("player at %+v never reached the castle", e.Snapshot().Player)
	}
	if len(host.awards) != 1 || host.awards[0] != 0 {
		t.Errorf("awards = %v, expected a single zero award", host.awards)
	}
}

func TestRestart(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	e, host := newTestEngine(cfg, buildLevel(
		obj(KindCollectible, 50, 100, 30, 30),
		obj(KindGoal, 0, 560, 2000, 40),
	))

	if !stepUntil(e, 200, func(s Snapshot) bool { return s.Mode == ModeWon }) {
		t.Fatal("falling onto the goal should win")
	}

	e.Restart()
	snap := e.Snapshot()
	if snap.Mode != ModePlaying || snap.Collected != 0 || snap.Score != 0 || snap.Awarded {
		t.Errorf("after restart snapshot = %+v", snap)
	}
	if snap.Player.X != 50 || snap.Player.Y != 0 || !snap.Player.Airborne {
		t.Errorf("after restart player = %+v", snap.Player)
	}

	// A second win awards again
	stepUntil(e, 200, func(s Snapshot) bool { return s.Mode == ModeWon })
	if len(host.awards) != 2 || host.awards[1] != 10 {
		t.Errorf("awards = %v, expected a second award of 10", host.awards)
	}
}

func TestLeave(t *testing.T) {
	e, host := newTestEngine(config.DefaultPlatformerConfig(), buildLevel())
	e.Leave()
	if len(host.screens) != 1 || host.screens[0] != session.ScreenLearningHub {
		t.Errorf("screens = %v, expected learning hub", host.screens)
	}
}

func TestCamera(t *testing.T) {
	e, _ := newTestEngine(config.DefaultPlatformerConfig(), buildLevel())

	tests := []struct {
		x, vw, want float64
	}{
		{0, 800, 0},
		{300, 800, 0},
		{1000, 800, 600},
		{1960, 800, 1200},
		{1000, 2400, 0},
	}
	for _, tt := range tests {
		e.player.X = tt.x
		if got := e.Camera(tt.vw); got != tt.want {
			t.Errorf("Camera(%v) at x=%v = %v, expected %v", tt.vw, tt.x, got, tt.want)
		}
	}
}
