package platformer

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/mathkids/internal/config"
)

// Quiz is an addition prompt with shuffled answer choices.
type Quiz struct {
	A, B    int
	Answer  int
	Choices []int
}

// Text returns the prompt as shown to the learner.
func (q Quiz) Text() string {
	return fmt.Sprintf("%d + %d = ?", q.A, q.B)
}

// Correct reports whether v is the answer.
func (q Quiz) Correct(v int) bool {
	return v == q.Answer
}

// GenerateQuiz draws two operands uniformly from the configured range.
func GenerateQuiz(rng *rand.Rand, cfg config.QuizConfig) Quiz {
	a := cfg.OperandMin + rng.Intn(cfg.OperandMax-cfg.OperandMin+1)
	b := cfg.OperandMin + rng.Intn(cfg.OperandMax-cfg.OperandMin+1)
	return NewQuiz(a, b, rng, cfg)
}

// NewQuiz builds the prompt for a + b. Distractors are drawn uniformly
// from the distractor range and redrawn until every choice is distinct.
func NewQuiz(a, b int, rng *rand.Rand, cfg config.QuizConfig) Quiz {
	q := Quiz{A: a, B: b, Answer: a + b}

	q.Choices = append(make([]int, 0, cfg.Choices), q.Answer)
	span := cfg.DistractorMax - cfg.DistractorMin + 1
	for len(q.Choices) < cfg.Choices {
		v := cfg.DistractorMin + rng.Intn(span)
		if !slices.Contains(q.Choices, v) {
			q.Choices = append(q.Choices, v)
		}
	}

	rng.Shuffle(len(q.Choices), func(i, j int) {
		q.Choices[i], q.Choices[j] = q.Choices[j], q.Choices[i]
	})
	return q
}
