package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathkids/internal/learning"
)

const itemsPerRow = 5

// CountingView shows one numeral at a time with that many things to count.
type CountingView struct {
	counter   *learning.Counter
	keyMapper *KeyMapper
	keys      KeyMap
}

// NewCountingView creates the number-learning screen, starting at zero.
func NewCountingView() *CountingView {
	return &CountingView{
		counter:   learning.NewCounter(),
		keyMapper: NewKeyMapper(),
		keys:      DefaultKeyMap(),
	}
}

// Update steps through the numerals. Digit keys jump straight to one.
func (v *CountingView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if n, err := strconv.Atoi(keyMsg.String()); err == nil {
		v.counter.Set(n)
		return nil
	}
	switch v.keyMapper.MapKeyToMenuAction(keyMsg) {
	case MenuActionLeft, MenuActionUp:
		v.counter.Prev()
	case MenuActionRight, MenuActionDown, MenuActionSelect:
		v.counter.Next()
	case MenuActionNone, MenuActionBack, MenuActionQuit:
	}
	return nil
}

// View renders the big numeral and the items to count.
func (v *CountingView) View(width, _ int) string {
	n := v.counter.Current()
	digitStyle := styleFor(n.Color).Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Học Số Đếm"), width))
	b.WriteString("\n\n")

	big := digitStyle.Render(strings.Join(learning.BigDigit(n.Num, '█'), "\n"))
	b.WriteString(centerBlock(big, width))
	b.WriteString("\n\n")

	items := v.counter.Items(itemsPerRow)
	if len(items) == 0 {
		b.WriteString(centerText(subtitleStyle.Render("Không có gì!"), width))
	} else {
		b.WriteString(centerBlock(lipgloss.JoinVertical(lipgloss.Center, items...), width))
	}
	b.WriteString("\n\n")

	nav := fmt.Sprintf("← Số trước   %s   Số kế tiếp →", digitStyle.Render(strconv.Itoa(n.Num)))
	b.WriteString(centerText(nav, width))
	b.WriteString("\n\n")
	b.WriteString(helpBar(width, v.keys.Left, v.keys.Right, binding("0-9", "chọn số"), v.keys.Back, v.keys.Quit))
	return b.String()
}
