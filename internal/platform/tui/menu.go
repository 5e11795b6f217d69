package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathkids/internal/session"
)

const menuColumns = 2

// MenuItem is one card on a menu screen.
type MenuItem struct {
	Icon   string
	Title  string
	Desc   string
	Screen session.Screen // Where selecting the card leads
	Color  lipgloss.Color
}

// cardMenu is a grid of cards navigated with the arrow keys.
// Selecting a card switches the store to the card's screen.
type cardMenu struct {
	items     []MenuItem
	cursor    int
	store     *session.Store
	keyMapper *KeyMapper
}

func newCardMenu(store *session.Store, items []MenuItem) *cardMenu {
	return &cardMenu{
		items:     items,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
}

// Cursor returns the index of the highlighted card.
func (m *cardMenu) Cursor() int {
	return m.cursor
}

// Update moves the cursor or opens a card. Digits 1-9 open a card directly.
func (m *cardMenu) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return nil
	}

	if n, err := strconv.Atoi(keyMsg.String()); err == nil {
		if n >= 1 && n <= len(m.items) {
			m.cursor = n - 1
			m.open()
		}
		return nil
	}

	switch m.keyMapper.MapKeyToMenuAction(keyMsg) {
	case MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionRight:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionUp:
		if m.cursor >= menuColumns {
			m.cursor -= menuColumns
		}
	case MenuActionDown:
		if m.cursor+menuColumns < len(m.items) {
			m.cursor += menuColumns
		}
	case MenuActionSelect:
		m.open()
	case MenuActionNone, MenuActionBack, MenuActionQuit:
	}
	return nil
}

func (m *cardMenu) open() {
	m.store.SetScreen(m.items[m.cursor].Screen)
}

// View lays the cards out in rows of menuColumns.
func (m *cardMenu) View(width int) string {
	var rows []string
	for start := 0; start < len(m.items); start += menuColumns {
		end := min(start+menuColumns, len(m.items))
		cards := make([]string, 0, menuColumns*2)
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, "  ")
			}
			cards = append(cards, m.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return centerBlock(lipgloss.JoinVertical(lipgloss.Left, rows...), width)
}

func (m *cardMenu) renderCard(i int) string {
	item := m.items[i]
	style := cardStyle
	if i == m.cursor {
		style = selectedCardStyle.BorderForeground(item.Color)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(item.Color).
		Render(strconv.Itoa(i+1) + ". " + item.Icon + " " + item.Title)
	desc := subtitleStyle.Render(item.Desc)
	return style.Render(title + "\n" + desc)
}
