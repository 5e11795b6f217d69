package learning

import "github.com/vovakirdan/mathkids/internal/core"

// StrokeColors is the palette offered on the writing pad.
var StrokeColors = []core.Color{
	core.ColorRed,
	core.ColorBlue,
	core.ColorGreen,
	core.ColorPurple,
	core.ColorOrange,
	core.ColorTeal,
}

// Pad is a character-cell drawing surface with a digit drawn faintly
// underneath for the learner to trace with a keyboard-driven pen.
type Pad struct {
	w, h   int
	digit  int
	guide  [][]bool
	ink    [][]int // Index into StrokeColors plus one, 0 = blank
	cx, cy int
	pen    bool
	color  int
}

// NewPad creates a w x h pad showing digit 1, as the screen opens on it.
func NewPad(w, h int) *Pad {
	p := &Pad{
		w: max(w, glyphW),
		h: max(h, glyphH),
	}
	p.SetDigit(1)
	return p
}

// Size returns the pad dimensions in cells.
func (p *Pad) Size() (w, h int) {
	return p.w, p.h
}

// Digit returns the digit being traced.
func (p *Pad) Digit() int {
	return p.digit
}

// SetDigit selects a digit 0-9, redraws the guide and wipes the ink.
func (p *Pad) SetDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	p.digit = d
	p.guide = make([][]bool, p.h)
	for y := range p.guide {
		p.guide[y] = make([]bool, p.w)
		for x := range p.guide[y] {
			p.guide[y][x] = glyphAt(d, x*glyphW/p.w, y*glyphH/p.h)
		}
	}
	p.Clear()
}

// Clear wipes every stroke and keeps the guide.
func (p *Pad) Clear() {
	p.ink = make([][]int, p.h)
	for y := range p.ink {
		p.ink[y] = make([]int, p.w)
	}
}

// Guide reports whether (x, y) is part of the guide digit.
func (p *Pad) Guide(x, y int) bool {
	if !p.inside(x, y) {
		return false
	}
	return p.guide[y][x]
}

// Ink returns the stroke color at (x, y), if any.
func (p *Pad) Ink(x, y int) (core.Color, bool) {
	if !p.inside(x, y) || p.ink[y][x] == 0 {
		return core.ColorDefault, false
	}
	return StrokeColors[p.ink[y][x]-1], true
}

// Cursor returns the pen position.
func (p *Pad) Cursor() (x, y int) {
	return p.cx, p.cy
}

// PenDown reports whether moving the cursor paints.
func (p *Pad) PenDown() bool {
	return p.pen
}

// TogglePen lifts or lowers the pen. Lowering it paints the current cell.
func (p *Pad) TogglePen() {
	p.pen = !p.pen
	if p.pen {
		p.paint()
	}
}

// Move shifts the cursor, clamped to the pad, painting when the pen is down.
func (p *Pad) Move(dx, dy int) {
	p.cx = core.Clamp(p.cx+dx, 0, p.w-1)
	p.cy = core.Clamp(p.cy+dy, 0, p.h-1)
	if p.pen {
		p.paint()
	}
}

// Color returns the index of the selected stroke color.
func (p *Pad) Color() int {
	return p.color
}

// NextColor cycles through the palette.
func (p *Pad) NextColor() {
	p.color = (p.color + 1) % len(StrokeColors)
}

// Coverage returns the percentage of guide cells that carry ink.
func (p *Pad) Coverage() int {
	total, inked := 0, 0
	for y := range p.guide {
		for x, g := range p.guide[y] {
			if !g {
				continue
			}
			total++
			if p.ink[y][x] != 0 {
				inked++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return inked * 100 / total
}

func (p *Pad) paint() {
	p.ink[p.cy][p.cx] = p.color + 1
}

func (p *Pad) inside(x, y int) bool {
	return x >= 0 && x < p.w && y >= 0 && y < p.h
}
