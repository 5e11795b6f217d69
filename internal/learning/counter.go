// Package learning holds the logic behind the number-learning and
// writing-practice screens. Rendering lives in the platform layer.
package learning

import (
	"strings"

	"github.com/vovakirdan/mathkids/internal/core"
)

// Numeral is one card of the counting screen.
type Numeral struct {
	Num   int
	Item  string // Thing to count, shown Num times
	Color core.Color
}

var numerals = [...]Numeral{
	{Num: 0, Item: "⚪", Color: core.ColorGray},
	{Num: 1, Item: "🍎", Color: core.ColorRed},
	{Num: 2, Item: "🍊", Color: core.ColorOrange},
	{Num: 3, Item: "🍋", Color: core.ColorYellow},
	{Num: 4, Item: "🍐", Color: core.ColorGreen},
	{Num: 5, Item: "🍇", Color: core.ColorBlue},
	{Num: 6, Item: "🍆", Color: core.ColorBrightBlue},
	{Num: 7, Item: "🍓", Color: core.ColorPurple},
	{Num: 8, Item: "🍉", Color: core.ColorPink},
	{Num: 9, Item: "🍍", Color: core.ColorTeal},
}

// Counter steps through the numerals 0 to 9, wrapping at both ends.
type Counter struct {
	index int
}

// NewCounter starts at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Current returns the numeral on display.
func (c *Counter) Current() Numeral {
	return numerals[c.index]
}

// Next moves to the following numeral; 9 wraps to 0.
func (c *Counter) Next() {
	c.index = (c.index + 1) % len(numerals)
}

// Prev moves to the previous numeral; 0 wraps to 9.
func (c *Counter) Prev() {
	c.index = (c.index - 1 + len(numerals)) % len(numerals)
}

// Set jumps to n. Values outside 0..9 are ignored.
func (c *Counter) Set(n int) {
	if n >= 0 && n < len(numerals) {
		c.index = n
	}
}

// Items returns the counting rows for the current numeral, perRow items
// per row. Zero yields no rows.
func (c *Counter) Items(perRow int) []string {
	n := c.Current()
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for left := n.Num; left > 0; left -= perRow {
		k := min(left, perRow)
		rows = append(rows, strings.TrimSpace(strings.Repeat(n.Item+" ", k)))
	}
	return rows
}
