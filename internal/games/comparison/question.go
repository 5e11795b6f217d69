package comparison

import (
	"math/rand"

	"github.com/vovakirdan/mathkids/internal/config"
)

// Operator is one of the three comparison signs.
type Operator int

const (
	Less Operator = iota
	Greater
	Equal
)

// Operators lists the signs in the order the buttons are shown.
var Operators = []Operator{Less, Greater, Equal}

// String returns the sign.
func (o Operator) String() string {
	switch o {
	case Less:
		return "<"
	case Greater:
		return ">"
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Question asks how A compares to B.
type Question struct {
	A, B int
}

// Answer returns the sign that makes "A op B" true.
func (q Question) Answer() Operator {
	switch {
	case q.A < q.B:
		return Less
	case q.A > q.B:
		return Greater
	default:
		return Equal
	}
}

// NewQuestion draws both numbers from the configured range. With
// probability EqualChance the second number is forced equal to the first.
func NewQuestion(rng *rand.Rand, cfg config.ComparisonConfig) Question {
	span := cfg.MaxNumber - cfg.MinNumber + 1
	q := Question{
		A: cfg.MinNumber + rng.Intn(span),
		B: cfg.MinNumber + rng.Intn(span),
	}
	if rng.Float64() < cfg.EqualChance {
		q.B = q.A
	}
	return q
}

// NewQuestions draws a full round.
func NewQuestions(rng *rand.Rand, cfg config.ComparisonConfig) []Question {
	qs := make([]Question, cfg.Questions)
	for i := range qs {
		qs[i] = NewQuestion(rng, cfg)
	}
	return qs
}
