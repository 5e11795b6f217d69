package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathkids/internal/session"
)

var dashboardItems = []MenuItem{
	{Icon: "📚", Title: "Học tập", Desc: "Bắt đầu các bài học và trò chơi", Screen: session.ScreenLearningHub, Color: lipgloss.Color("33")},
	{Icon: "🎁", Title: "Phần thưởng", Desc: "Xem sao và bảng xếp hạng", Screen: session.ScreenRewards, Color: lipgloss.Color("214")},
	{Icon: "👤", Title: "Hồ sơ học sinh", Desc: "Xem và cập nhật thông tin", Screen: session.ScreenProfile, Color: lipgloss.Color("42")},
	{Icon: "📊", Title: "Báo cáo", Desc: "Theo dõi tiến độ và kết quả", Screen: session.ScreenReports, Color: lipgloss.Color("135")},
}

// DashboardView greets the learner and links to the main sections.
type DashboardView struct {
	store *session.Store
	menu  *cardMenu
	keys  KeyMap
}

// NewDashboardView creates the dashboard.
func NewDashboardView(store *session.Store) *DashboardView {
	return &DashboardView{
		store: store,
		menu:  newCardMenu(store, dashboardItems),
		keys:  DefaultKeyMap(),
	}
}

// Update forwards navigation to the card grid.
func (v *DashboardView) Update(msg tea.Msg) tea.Cmd {
	return v.menu.Update(msg)
}

// View renders the welcome line and the cards.
func (v *DashboardView) View(width, _ int) string {
	name := ""
	if p := v.store.Snapshot().Profile; p != nil {
		name = p.Name
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(fmt.Sprintf("Chào mừng trở lại, %s!", name)), width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Sẵn sàng cho một cuộc phiêu lưu toán học vui vẻ chưa nào?"), width))
	b.WriteString("\n\n")
	b.WriteString(v.menu.View(width))
	b.WriteString("\n\n")
	b.WriteString(helpBar(width, v.keys.Up, v.keys.Down, v.keys.Select, v.keys.SignOut, v.keys.Quit))
	return b.String()
}
