package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathkids/internal/session"
)

// authMode selects between the sign-in and registration forms.
type authMode int

const (
	modeSignIn authMode = iota
	modeRegister
)

// authResultMsg carries the outcome of a sign-in or registration.
type authResultMsg struct {
	profile session.Profile
	err     error
}

// LoginView is the sign-in / registration form.
type LoginView struct {
	ctx      context.Context
	store    *session.Store
	mode     authMode
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	loading  bool
	spinner  spinner.Model
	err      string
}

// NewLoginView creates the form in sign-in mode. Requests made from it
// are cancelled when ctx is done.
func NewLoginView(ctx context.Context, store *session.Store) *LoginView {
	v := &LoginView{
		ctx:      ctx,
		store:    store,
		name:     newField("Tên của bé", false),
		email:    newField("Email", false),
		password: newField("Mật khẩu", true),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	v.spinner.Style = accentStyle
	v.Reset()
	return v
}

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 30
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// Typing reports that keys go into text fields.
func (v *LoginView) Typing() bool {
	return true
}

// Reset clears the form and focuses the first field.
func (v *LoginView) Reset() tea.Cmd {
	v.name.Reset()
	v.email.Reset()
	v.password.Reset()
	v.err = ""
	v.loading = false
	v.focus = 0
	return v.focusField()
}

// fields returns the inputs of the current mode in tab order.
func (v *LoginView) fields() []*textinput.Model {
	if v.mode == modeRegister {
		return []*textinput.Model{&v.name, &v.email, &v.password}
	}
	return []*textinput.Model{&v.email, &v.password}
}

func (v *LoginView) focusField() tea.Cmd {
	var cmd tea.Cmd
	for i, f := range v.fields() {
		if i == v.focus {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

// Update handles typing, field focus, mode switching and submission.
func (v *LoginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authResultMsg:
		v.loading = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			v.password.Reset()
		}
		return nil

	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if v.loading {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.focus = (v.focus + 1) % len(v.fields())
			return v.focusField()
		case "shift+tab", "up":
			v.focus = (v.focus - 1 + len(v.fields())) % len(v.fields())
			return v.focusField()
		case "ctrl+t":
			return v.toggleMode()
		case "enter":
			return v.submit()
		}
	}

	field := v.fields()[v.focus]
	var cmd tea.Cmd
	*field, cmd = field.Update(msg)
	return cmd
}

// toggleMode switches between sign-in and registration with a clean form.
func (v *LoginView) toggleMode() tea.Cmd {
	if v.mode == modeSignIn {
		v.mode = modeRegister
	} else {
		v.mode = modeSignIn
	}
	return v.Reset()
}

// submit starts the request in a command so the delay never blocks the UI.
func (v *LoginView) submit() tea.Cmd {
	v.err = ""
	name := strings.TrimSpace(v.name.Value())
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()

	if email == "" || password == "" || (v.mode == modeRegister && name == "") {
		v.err = userMessage(session.ErrMissingFields)
		return nil
	}

	v.loading = true
	ctx, store, mode := v.ctx, v.store, v.mode
	request := func() tea.Msg {
		var (
			p   session.Profile
			err error
		)
		if mode == modeRegister {
			p, err = store.Register(ctx, name, email, password)
		} else {
			p, err = store.SignIn(ctx, email, password)
		}
		return authResultMsg{profile: p, err: err}
	}
	return tea.Batch(request, v.spinner.Tick)
}

// View renders the form card.
func (v *LoginView) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(appTitle))
	b.WriteString("\n")
	if v.mode == modeRegister {
		b.WriteString(subtitleStyle.Render("Tham gia cuộc phiêu lưu toán học nào!"))
	} else {
		b.WriteString(subtitleStyle.Render("Chào mừng bé trở lại!"))
	}
	b.WriteString("\n\n")

	for _, f := range v.fields() {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != "" {
		b.WriteString(errorStyle.Render(v.err))
		b.WriteString("\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.spinner.View() + " Đang xử lý...")
	case v.mode == modeRegister:
		b.WriteString(accentStyle.Render("[enter] Tạo tài khoản"))
	default:
		b.WriteString(accentStyle.Render("[enter] Đăng nhập"))
	}
	b.WriteString("\n\n")

	if v.mode == modeRegister {
		b.WriteString(subtitleStyle.Render("Đã có tài khoản? Đăng nhập (ctrl+t)"))
	} else {
		b.WriteString(subtitleStyle.Render("Chưa có tài khoản? Đăng ký ngay (ctrl+t)"))
	}

	card := panelStyle.Padding(1, 3).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// userMessage turns a session error into text for the learner.
func userMessage(err error) string {
	var (
		authErr *session.AuthenticationError
		dupErr  *session.DuplicateAccountError
	)
	switch {
	case errors.Is(err, session.ErrMissingFields):
		return "Vui lòng điền đầy đủ thông tin."
	case errors.As(err, &authErr):
		return "Email hoặc mật khẩu không đúng!"
	case errors.As(err, &dupErr):
		return "Email này đã được sử dụng!"
	case errors.Is(err, session.ErrEmptyName):
		return "Tên của bé không được để trống."
	case errors.Is(err, session.ErrNotSignedIn):
		return "Bé cần đăng nhập trước."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Đã hủy."
	default:
		return err.Error()
	}
}
