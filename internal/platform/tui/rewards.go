package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/session"
	"github.com/vovakirdan/mathkids/internal/storage"
)

const leaderboardSize = 20

// RankedEntry is one row of the rewards board.
type RankedEntry struct {
	Rank   int
	Name   string
	Points int
	Self   bool // The signed-in learner
}

// rankLeaderboard merges the learner into the board and orders it by
// points, highest first. Ties keep board order with the learner last.
func rankLeaderboard(board []storage.LeaderboardEntry, self *session.Profile) []RankedEntry {
	out := make([]RankedEntry, 0, len(board)+1)
	for _, e := range board {
		out = append(out, RankedEntry{Name: e.Name, Points: e.Points})
	}
	if self != nil {
		out = append(out, RankedEntry{Name: self.Name, Points: self.Points, Self: true})
	}
	slices.SortStableFunc(out, func(a, b RankedEntry) int {
		return cmp.Compare(b.Points, a.Points)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// RewardsView shows the leaderboard.
type RewardsView struct {
	store   *session.Store
	scores  *storage.Store
	logger  *log.Logger
	entries []RankedEntry
	table   table.Model
	keys    KeyMap
}

// NewRewardsView creates the rewards screen. scores may be nil, in which
// case only the learner is listed.
func NewRewardsView(store *session.Store, scores *storage.Store, logger *log.Logger) *RewardsView {
	v := &RewardsView{
		store:  store,
		scores: scores,
		logger: logger,
		keys:   DefaultKeyMap(),
	}
	v.table = v.createTable(12)
	return v
}

// createTable creates a new table with the board columns.
func (v *RewardsView) createTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Hạng", Width: 6},
		{Title: "Tên", Width: 20},
		{Title: "⭐ Điểm", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("35")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Refresh reloads the board and places the cursor on the learner.
func (v *RewardsView) Refresh() {
	var board []storage.LeaderboardEntry
	if v.scores != nil {
		var err error
		board, err = v.scores.Leaderboard(leaderboardSize)
		if err != nil {
			v.logger.Warn("could not load leaderboard", "error", err)
		}
	}

	v.entries = rankLeaderboard(board, v.store.Snapshot().Profile)
	rows := make([]table.Row, len(v.entries))
	cursor := 0
	for i, e := range v.entries {
		name := e.Name
		if e.Self {
			name += " (bé)"
			cursor = i
		}
		rows[i] = table.Row{rankLabel(e.Rank), name, fmt.Sprintf("%d", e.Points)}
	}
	v.table.SetRows(rows)
	v.table.SetCursor(cursor)
}

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// Update scrolls the table.
func (v *RewardsView) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if !key.Matches(keyMsg, v.keys.Up) && !key.Matches(keyMsg, v.keys.Down) {
			return nil
		}
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return cmd
}

// View renders the board.
func (v *RewardsView) View(width, height int) string {
	if want := max(height-10, 3); v.table.Height() != want {
		v.table.SetHeight(want)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Phần thưởng & Thành tích"), width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Xem ai là người giỏi nhất tuần này!"), width))
	b.WriteString("\n\n")

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35")).Render("🏆 Bảng Xếp Hạng")
	b.WriteString(centerBlock(panelStyle.Render(heading+"\n"+v.table.View()), width))
	b.WriteString("\n\n")
	b.WriteString(helpBar(width, v.keys.Up, v.keys.Down, v.keys.Back, v.keys.Quit))
	return b.String()
}
