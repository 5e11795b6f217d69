package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/learning"
)

// Pad size in cells; the 5x7 guide font scales 4x2 into it.
const (
	padW = 20
	padH = 14
)

const (
	guideRune  = '░'
	inkRune    = '█'
	cursorUp   = '○'
	cursorDown = '●'
)

// TracingView is the writing-practice pad.
type TracingView struct {
	pad       *learning.Pad
	canvas    *core.Screen
	keyMapper *KeyMapper
	keys      KeyMap
}

// NewTracingView creates the writing-practice screen on digit 1.
func NewTracingView() *TracingView {
	return &TracingView{
		pad:       learning.NewPad(padW, padH),
		canvas:    core.NewScreen(padW, padH),
		keyMapper: NewKeyMapper(),
		keys:      DefaultKeyMap(),
	}
}

// Pad exposes the drawing surface.
func (v *TracingView) Pad() *learning.Pad {
	return v.pad
}

// Update moves the pen and handles the pad tools.
func (v *TracingView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case " ", "enter":
		v.pad.TogglePen()
		return nil
	case "c":
		v.pad.Clear()
		return nil
	case "tab":
		v.pad.NextColor()
		return nil
	}
	if n, err := strconv.Atoi(keyMsg.String()); err == nil {
		v.pad.SetDigit(n)
		return nil
	}

	switch v.keyMapper.MapKeyToMenuAction(keyMsg) {
	case MenuActionLeft:
		v.pad.Move(-1, 0)
	case MenuActionRight:
		v.pad.Move(1, 0)
	case MenuActionUp:
		v.pad.Move(0, -1)
	case MenuActionDown:
		v.pad.Move(0, 1)
	case MenuActionNone, MenuActionSelect, MenuActionBack, MenuActionQuit:
	}
	return nil
}

// drawPad paints the guide, the strokes and the cursor onto the canvas.
func (v *TracingView) drawPad() {
	v.canvas.Clear()
	w, h := v.pad.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c, ok := v.pad.Ink(x, y); ok {
				v.canvas.SetColored(x, y, inkRune, c)
			} else if v.pad.Guide(x, y) {
				v.canvas.SetColored(x, y, guideRune, core.ColorGray)
			}
		}
	}

	cx, cy := v.pad.Cursor()
	r := cursorUp
	if v.pad.PenDown() {
		r = cursorDown
	}
	v.canvas.SetColored(cx, cy, r, learning.StrokeColors[v.pad.Color()])
}

// View renders the pad, the palette and the coverage.
func (v *TracingView) View(width, _ int) string {
	v.drawPad()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Bé Tập Viết Số"), width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Chọn một số và đồ theo nhé!"), width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(panelStyle.Render(RenderScreen(v.canvas)), width))
	b.WriteString("\n")

	var palette strings.Builder
	palette.WriteString("Chọn màu: ")
	for i, c := range learning.StrokeColors {
		mark := "■"
		if i == v.pad.Color() {
			mark = "[■]"
		}
		palette.WriteString(styleFor(c).Render(mark))
		palette.WriteString(" ")
	}
	b.WriteString(centerText(palette.String(), width))
	b.WriteString("\n")

	pen := "bút nhấc"
	if v.pad.PenDown() {
		pen = "bút hạ"
	}
	status := fmt.Sprintf("Số %d · %s · đã tô %d%%", v.pad.Digit(), pen, v.pad.Coverage())
	if v.pad.Coverage() == 100 {
		status += " " + successStyle.Render("Tuyệt vời!")
	}
	b.WriteString(centerText(status, width))
	b.WriteString("\n\n")
	b.WriteString(helpBar(width,
		binding("←↑↓→", "di chuyển"),
		binding("space", "hạ/nhấc bút"),
		binding("tab", "đổi màu"),
		binding("c", "xóa bảng"),
		binding("0-9", "chọn số"),
		v.keys.Back,
	))
	return b.String()
}
