package platformer

import "github.com/vovakirdan/mathkids/internal/core"

// stepPhysics runs one tick: velocity, then position, then collisions,
// then state transitions.
func (e *Engine) stepPhysics() {
	p := &e.player
	w, h := e.cfg.Player.Width, e.cfg.Player.Height

	p.VX = 0
	if e.left {
		p.VX -= e.cfg.Physics.Speed
	}
	if e.right {
		p.VX += e.cfg.Physics.Speed
	}
	p.VY += e.cfg.Physics.Gravity

	prev := core.NewBox(p.X, p.Y, w, h)
	p.X = core.ClampF(p.X+p.VX, 0, e.level.Width-w)
	p.Y += p.VY

	p.Airborne = true
	wasResting := e.restingOn
	e.restingOn = -1

	var enterQuiz, reachGoal bool
	for i, obj := range e.level.Objects {
		box := core.NewBox(p.X, p.Y, w, h)
		if !box.Overlaps(obj.Box) {
			continue
		}

		if !obj.Solid() {
			e.collected[obj.ID] = struct{}{}
			continue
		}

		switch {
		case prev.Bottom() <= obj.Box.Top() && p.VY > 0:
			// Landed on top
			p.Y = obj.Box.Top() - h
			p.VY = 0
			p.Airborne = false
			e.restingOn = i

			switch obj.Kind {
			case KindQuiz:
				// Only a fresh landing opens a quiz, not standing still on the block
				if e.quiz == nil && wasResting != i {
					enterQuiz = true
				}
			case KindGoal:
				reachGoal = true
			}

		case prev.Top() >= obj.Box.Bottom() && p.VY < 0:
			// Bumped from below
			p.Y = obj.Box.Bottom()
			p.VY = 0

		case prev.Right() <= obj.Box.Left() && p.VX > 0:
			p.X = obj.Box.Left() - w

		case prev.Left() >= obj.Box.Right() && p.VX < 0:
			p.X = obj.Box.Right()
		}
	}

	if p.Y > e.level.Height {
		e.respawn()
		return
	}

	switch {
	case reachGoal:
		e.win()
	case enterQuiz:
		e.openQuiz()
	}
}

// respawn puts the player back at the spawn point at rest.
func (e *Engine) respawn() {
	e.player = Player{
		X:        e.cfg.Player.SpawnX,
		Y:        e.cfg.Player.SpawnY,
		Airborne: true,
	}
	e.restingOn = -1
}
