package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mathkids/internal/session"
)

// profileSavedMsg carries the outcome of a profile edit.
type profileSavedMsg struct {
	profile session.Profile
	err     error
}

// ProfileView shows the learner's details and edits name and avatar.
type ProfileView struct {
	ctx     context.Context
	store   *session.Store
	editing bool
	saving  bool
	name    textinput.Model
	avatar  textinput.Model
	focus   int
	spinner spinner.Model
	status  string
	err     string
	keys    KeyMap
}

// NewProfileView creates the profile screen. Saves are cancelled when
// ctx is done.
func NewProfileView(ctx context.Context, store *session.Store) *ProfileView {
	v := &ProfileView{
		ctx:     ctx,
		store:   store,
		name:    newField("Tên của bé", false),
		avatar:  newField("Link ảnh đại diện", false),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:    DefaultKeyMap(),
	}
	v.avatar.CharLimit = 256
	v.spinner.Style = accentStyle
	return v
}

// Typing reports whether keys go into the edit fields.
func (v *ProfileView) Typing() bool {
	return v.editing
}

// Reset closes the edit form.
func (v *ProfileView) Reset() {
	v.editing = false
	v.saving = false
	v.status = ""
	v.err = ""
	v.name.Blur()
	v.avatar.Blur()
}

func (v *ProfileView) startEdit() tea.Cmd {
	p := v.store.Snapshot().Profile
	if p == nil {
		return nil
	}
	v.editing = true
	v.status = ""
	v.err = ""
	v.name.SetValue(p.Name)
	v.avatar.SetValue(p.Avatar)
	v.focus = 0
	v.avatar.Blur()
	return v.name.Focus()
}

// Update opens, edits and submits the form.
func (v *ProfileView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileSavedMsg:
		v.saving = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			return nil
		}
		v.editing = false
		v.status = "Thông tin đã được cập nhật!"
		return nil

	case spinner.TickMsg:
		if !v.saving {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if v.saving {
			return nil
		}
		if !v.editing {
			if msg.String() == "e" {
				return v.startEdit()
			}
			return nil
		}
		switch msg.String() {
		case "esc":
			v.Reset()
			return nil
		case "tab", "shift+tab", "up", "down":
			v.focus = 1 - v.focus
			if v.focus == 0 {
				v.avatar.Blur()
				return v.name.Focus()
			}
			v.name.Blur()
			return v.avatar.Focus()
		case "enter":
			return v.save()
		}
	}

	if !v.editing {
		return nil
	}
	var cmd tea.Cmd
	if v.focus == 0 {
		v.name, cmd = v.name.Update(msg)
	} else {
		v.avatar, cmd = v.avatar.Update(msg)
	}
	return cmd
}

func (v *ProfileView) save() tea.Cmd {
	v.err = ""
	v.saving = true
	ctx, store := v.ctx, v.store
	name, avatar := v.name.Value(), v.avatar.Value()
	request := func() tea.Msg {
		p, err := store.UpdateProfile(ctx, name, avatar)
		return profileSavedMsg{profile: p, err: err}
	}
	return tea.Batch(request, v.spinner.Tick)
}

// View renders the profile card or the edit form.
func (v *ProfileView) View(width, _ int) string {
	p := v.store.Snapshot().Profile
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Hồ sơ của bé"), width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Xem và cập nhật thông tin cá nhân."), width))
	b.WriteString("\n\n")

	var card strings.Builder
	if v.editing {
		card.WriteString(accentStyle.Render("Chỉnh sửa hồ sơ"))
		card.WriteString("\n\nTên của bé\n")
		card.WriteString(v.name.View())
		card.WriteString("\n\nLink ảnh đại diện\n")
		card.WriteString(v.avatar.View())
		card.WriteString("\n\n")
		if v.err != "" {
			card.WriteString(errorStyle.Render(v.err))
			card.WriteString("\n")
		}
		if v.saving {
			card.WriteString(v.spinner.View() + " Đang lưu...")
		} else {
			card.WriteString(accentStyle.Render("[enter] Lưu thay đổi") + "   " + subtitleStyle.Render("[esc] Hủy"))
		}
	} else {
		fmt.Fprintf(&card, "%s\n\n", accentStyle.Render(p.Name))
		fmt.Fprintf(&card, "Email:       %s\n", p.Email)
		fmt.Fprintf(&card, "Điểm:        ⭐ %d\n", p.Points)
		fmt.Fprintf(&card, "Ảnh đại diện: %s\n", subtitleStyle.Render(p.Avatar))
		if v.status != "" {
			card.WriteString("\n")
			card.WriteString(successStyle.Render(v.status))
		}
	}
	b.WriteString(centerBlock(panelStyle.Padding(1, 2).Render(card.String()), width))
	b.WriteString("\n\n")

	if v.editing {
		b.WriteString(helpBar(width, binding("tab", "đổi ô"), binding("enter", "lưu"), binding("esc", "hủy")))
	} else {
		b.WriteString(helpBar(width, binding("e", "chỉnh sửa"), v.keys.Back, v.keys.SignOut, v.keys.Quit))
	}
	return b.String()
}
