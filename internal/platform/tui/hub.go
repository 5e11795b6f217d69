package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathkids/internal/session"
)

var hubItems = []MenuItem{
	{Icon: "🔢", Title: "Học Số Đếm", Desc: "Làm quen với các con số từ 0 đến 9", Screen: session.ScreenNumberLearning, Color: lipgloss.Color("33")},
	{Icon: "⚖", Title: "So Sánh Lớn Bé", Desc: "Trò chơi so sánh các số", Screen: session.ScreenComparisonGame, Color: lipgloss.Color("42")},
	{Icon: "✍", Title: "Bé Tập Viết", Desc: "Luyện viết các con số thật đẹp", Screen: session.ScreenWritingPractice, Color: lipgloss.Color("135")},
	{Icon: "🍄", Title: "Giải Cứu Công Chúa", Desc: "Trò chơi toán học phiêu lưu", Screen: session.ScreenPlatformerGame, Color: lipgloss.Color("196")},
}

// HubView lists the learning activities.
type HubView struct {
	menu *cardMenu
	keys KeyMap
}

// NewHubView creates the learning hub.
func NewHubView(store *session.Store) *HubView {
	return &HubView{
		menu: newCardMenu(store, hubItems),
		keys: DefaultKeyMap(),
	}
}

// Update forwards navigation to the card grid.
func (v *HubView) Update(msg tea.Msg) tea.Cmd {
	return v.menu.Update(msg)
}

// View renders the activity cards.
func (v *HubView) View(width, _ int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Trung tâm học tập"), width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Chọn một hoạt động để bắt đầu nào!"), width))
	b.WriteString("\n\n")
	b.WriteString(v.menu.View(width))
	b.WriteString("\n\n")
	b.WriteString(helpBar(width, v.keys.Up, v.keys.Down, v.keys.Select, v.keys.Back, v.keys.Quit))
	return b.String()
}
