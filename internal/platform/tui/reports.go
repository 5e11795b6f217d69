package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/session"
	"github.com/vovakirdan/mathkids/internal/storage"
)

const barWidth = 30

// weekOrder lists weekdays the way the week is shown, Monday first.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var dayLabels = map[time.Weekday]string{
	time.Monday:    "Thứ 2",
	time.Tuesday:   "Thứ 3",
	time.Wednesday: "Thứ 4",
	time.Thursday:  "Thứ 5",
	time.Friday:    "Thứ 6",
	time.Saturday:  "Thứ 7",
	time.Sunday:    "CN",
}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

// ReportsView summarizes the learner's results from the score store.
type ReportsView struct {
	store    *session.Store
	scores   *storage.Store
	logger   *log.Logger
	now      func() time.Time
	stats    map[string]*storage.GameStats
	activity map[time.Weekday]int
	notified bool
	keys     KeyMap
}

// NewReportsView creates the reports screen. scores may be nil.
func NewReportsView(store *session.Store, scores *storage.Store, logger *log.Logger) *ReportsView {
	return &ReportsView{
		store:  store,
		scores: scores,
		logger: logger,
		now:    time.Now,
		keys:   DefaultKeyMap(),
	}
}

// Refresh reloads the statistics of the signed-in learner.
func (v *ReportsView) Refresh() {
	v.notified = false
	v.stats = nil
	v.activity = nil

	p := v.store.Snapshot().Profile
	if p == nil || v.scores == nil {
		return
	}

	stats, err := v.scores.GetAllGamesStats(p.ID)
	if err != nil {
		v.logger.Warn("could not load game stats", "error", err)
	}
	v.stats = stats

	now := v.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	activity, err := v.scores.ActivityByDay(p.ID, since)
	if err != nil {
		v.logger.Warn("could not load activity", "error", err)
	}
	v.activity = activity
}

// TotalGames returns the number of finished rounds across all games.
func (v *ReportsView) TotalGames() int {
	total := 0
	for _, s := range v.stats {
		total += s.GamesCount
	}
	return total
}

// Update handles the notify action.
func (v *ReportsView) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "n" {
		v.notified = true
	}
	return nil
}

// View renders the activity chart, the results and the notify panel.
func (v *ReportsView) View(width, _ int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Báo cáo học tập"), width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Theo dõi tiến độ và kết quả của bé."), width))
	b.WriteString("\n\n")

	chart := panelStyle.Render(accentStyle.Render("Thống kê lượt chơi (tuần này)") + "\n" + v.renderActivity())
	b.WriteString(centerBlock(chart, width))
	b.WriteString("\n")

	results := panelStyle.Width(44).Render(accentStyle.Render("Kết quả học tập") + "\n" + v.renderResults())
	notice := panelStyle.Width(30).Render(v.renderNotice())
	b.WriteString(centerBlock(lipgloss.JoinHorizontal(lipgloss.Top, results, " ", notice), width))
	b.WriteString("\n\n")
	b.WriteString(helpBar(width, binding("n", "gửi thông báo"), v.keys.Back, v.keys.Quit))
	return b.String()
}

func (v *ReportsView) renderActivity() string {
	most := 0
	for _, n := range v.activity {
		most = max(most, n)
	}

	lines := make([]string, 0, len(weekOrder))
	for _, d := range weekOrder {
		n := v.activity[d]
		bar := 0
		if most > 0 {
			bar = n * barWidth / most
		}
		if n > 0 && bar == 0 {
			bar = 1
		}
		lines = append(lines, fmt.Sprintf("%-6s %s %d",
			dayLabels[d],
			barStyle.Render(strings.Repeat("█", bar))+strings.Repeat(" ", barWidth-bar),
			n,
		))
	}
	return strings.Join(lines, "\n")
}

func (v *ReportsView) renderResults() string {
	if len(v.stats) == 0 {
		return subtitleStyle.Render("Bé chưa chơi trò nào. Cùng bắt đầu nhé!")
	}

	titles := make(map[string]string)
	for _, g := range registry.List() {
		titles[g.ID] = g.Title
	}

	ids := make([]string, 0, len(v.stats))
	for id := range v.stats {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "Tổng số bài học đã hoàn thành: %d\n", v.TotalGames())
	for _, id := range ids {
		s := v.stats[id]
		title := titles[id]
		if title == "" {
			title = id
		}
		fmt.Fprintf(&b, "\n%s\n  %d lượt · cao nhất %d · trung bình %.0f", title, s.GamesCount, s.HighScore, s.AvgScore)
	}
	return b.String()
}

func (v *ReportsView) renderNotice() string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("Gửi thông báo cho phụ huynh"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Gửi báo cáo tiến độ hàng tuần cho ba mẹ."))
	b.WriteString("\n\n")
	if v.notified {
		b.WriteString(successStyle.Render("Đã gửi thông báo thành công!"))
	} else {
		b.WriteString("[n] Gửi ngay")
	}
	return b.String()
}
