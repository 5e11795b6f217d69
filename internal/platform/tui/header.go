package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathkids/internal/session"
)

const appTitle = "Bé Vui Học Toán"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("25"))

	headerPointsStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("220")).
				Background(lipgloss.Color("25"))
)

// headerHeight is the number of rows renderHeader takes.
const headerHeight = 1

// renderHeader draws the top bar shown on every signed-in screen.
func renderHeader(p session.Profile, width int) string {
	left := headerStyle.Render(" 🧮 " + appTitle + " ")
	right := headerPointsStyle.Render(fmt.Sprintf("⭐ %d ", p.Points)) +
		headerStyle.Render(fmt.Sprintf("· %s · x: Đăng xuất ", p.Name))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + right
	}
	return left + headerStyle.Render(strings.Repeat(" ", gap)) + right
}
