package comparison

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/session"
)

type fakeHost struct {
	awards  []int
	screens []session.Screen
}

func (h *fakeHost) AwardPoints(n int)          { h.awards = append(h.awards, n) }
func (h *fakeHost) SetScreen(s session.Screen) { h.screens = append(h.screens, s) }

func newTestGame(t *testing.T) (*Game, *fakeHost) {
	t.Helper()
	host := &fakeHost{}
	g := New(registry.Env{Host: host})
	cfg := core.DefaultConfig()
	cfg.Seed = 99
	g.Reset(cfg)
	return g, host
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// wrongFor returns an operator that does not match q.
func wrongFor(q Question) Operator {
	if q.Answer() == Less {
		return Greater
	}
	return Less
}

func TestQuestionAnswer(t *testing.T) {
	tests := []struct {
		q    Question
		want Operator
	}{
		{Question{A: 1, B: 2}, Less},
		{Question{A: 9, B: 3}, Greater},
		{Question{A: 4, B: 4}, Equal},
	}
	for _, tt := range tests {
		if got := tt.q.Answer(); got != tt.want {
			t.Errorf("%+v.Answer() = %v, expected %v", tt.q, got, tt.want)
		}
	}
}

func TestNewQuestionRangeAndEqualChance(t *testing.T) {
	cfg := config.DefaultComparisonConfig()
	rng := rand.New(rand.NewSource(1))

	equal := 0
	const n = 5000
	for i := 0; i < n; i++ {
		q := NewQuestion(rng, cfg)
		if q.A < 1 || q.A > 10 || q.B < 1 || q.B > 10 {
			t.Fatalf("question out of range: %+v", q)
		}
		if q.A == q.B {
			equal++
		}
	}

	// 30% forced plus 10% of the rest by chance
	ratio := float64(equal) / n
	if ratio < 0.32 || ratio > 0.42 {
		t.Errorf("equal ratio = %.3f, expected about 0.37", ratio)
	}

	cfg.EqualChance = 1
	if q := NewQuestion(rng, cfg); q.A != q.B {
		t.Errorf("EqualChance 1 should force equal, got %+v", q)
	}
}

func TestRoundScoresAndAwardsOnce(t *testing.T) {
	g, host := newTestGame(t)

	if len(g.questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(g.questions))
	}

	for i := 0; i < 5; i++ {
		q := g.Question()
		op := q.Answer()
		if i == 2 {
			op = wrongFor(q)
		}
		g.Answer(op)

		// Feedback is shown for 90 ticks
		for tick := 0; tick < 89; tick++ {
			g.Step(frame())
		}
		if g.Status() == StatusPlaying {
			t.Fatalf("question %d: advanced before the feedback delay", i)
		}
		g.Step(frame())
	}

	if g.Status() != StatusFinished || !g.State().GameOver {
		t.Fatalf("status = %v, expected finished", g.Status())
	}
	if g.State().Score != 40 {
		t.Errorf("score = %d, expected 40", g.State().Score)
	}

	for i := 0; i < 100; i++ {
		g.Step(frame())
	}
	if len(host.awards) != 1 || host.awards[0] != 40 {
		t.Errorf("awards = %v, expected one award of 40", host.awards)
	}
}

func TestAnswerIgnoredDuringFeedback(t *testing.T) {
	g, _ := newTestGame(t)
	q := g.Question()

	g.Answer(q.Answer())
	g.Answer(q.Answer())
	if g.score != 10 {
		t.Errorf("score = %d, second answer should be ignored", g.score)
	}
}

func TestKeyboardInput(t *testing.T) {
	g, _ := newTestGame(t)

	g.Step(frame(core.ActionLeft))
	if g.cursor != 2 {
		t.Errorf("cursor = %d, expected wrap to 2", g.cursor)
	}
	g.Step(frame(core.ActionRight))
	if g.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", g.cursor)
	}

	q := g.Question()
	want := map[Operator]core.Action{Less: core.ActionChoice1, Greater: core.ActionChoice2, Equal: core.ActionChoice3}
	g.Step(frame(want[q.Answer()]))
	if g.Status() != StatusCorrect {
		t.Errorf("status = %v, expected correct", g.Status())
	}
}

func TestRestartAndLeave(t *testing.T) {
	g, host := newTestGame(t)
	g.Answer(g.Question().Answer())

	g.Step(frame(core.ActionRestart))
	if g.score != 0 || g.index != 0 || g.Status() != StatusPlaying {
		t.Errorf("after restart score=%d index=%d status=%v", g.score, g.index, g.Status())
	}

	g.Step(frame(core.ActionBack))
	if len(host.screens) != 1 || host.screens[0] != session.ScreenLearningHub {
		t.Errorf("screens = %v", host.screens)
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Câu hỏi: 1 / 5", "Điểm: 0", "<", ">", "="} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q", want)
		}
	}

	g.status = StatusFinished
	g.Render(screen)
	if !strings.Contains(screen.String(), "Hoàn thành!") {
		t.Error("finished screen missing")
	}
}
