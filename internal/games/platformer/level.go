package platformer

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mathkids/internal/core"
)

// Kind is the type of a static level object.
type Kind int

const (
	KindSolid       Kind = iota // Brick: blocks movement
	KindQuiz                    // Question block: solid, poses a sum when landed on
	KindCollectible             // Star: picked up on touch, never blocks
	KindGoal                    // Castle: solid, landing on it wins
)

var kindNames = map[Kind]string{
	KindSolid:       "solid",
	KindQuiz:        "quiz",
	KindCollectible: "collectible",
	KindGoal:        "goal",
}

// String returns the kind's name as used in level files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a level-file name into a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindSolid, false
}

// Object is a static, immutable piece of the level.
type Object struct {
	ID   int
	Kind Kind
	Box  core.Box
}

// Solid reports whether the object blocks the player.
func (o Object) Solid() bool {
	return o.Kind != KindCollectible
}

// Level is the ordered set of objects the player moves through.
// Collision resolution visits objects in slice order.
type Level struct {
	ID      string
	Name    string
	Width   float64
	Height  float64
	Objects []Object
}

// Validate checks that a level can be played.
func (l *Level) Validate() error {
	var errs []error
	if l.Width <= 0 || l.Height <= 0 {
		errs = append(errs, fmt.Errorf("level size %vx%v must be positive", l.Width, l.Height))
	}

	goals := 0
	for _, obj := range l.Objects {
		if obj.Box.W <= 0 || obj.Box.H <= 0 {
			errs = append(errs, fmt.Errorf("object %d has empty size", obj.ID))
		}
		if obj.Kind == KindGoal {
			goals++
		}
	}
	if goals == 0 {
		errs = append(errs, errors.New("level has no goal"))
	}
	return errors.Join(errs...)
}

// Count returns how many objects of the given kind the level holds.
func (l *Level) Count(kind Kind) int {
	n := 0
	for _, obj := range l.Objects {
		if obj.Kind == kind {
			n++
		}
	}
	return n
}
