package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/games/platformer"
	"github.com/vovakirdan/mathkids/internal/session"
	"github.com/vovakirdan/mathkids/internal/storage"
)

type noopMsg struct{}

func newTestApp(t *testing.T) (*App, *session.Store, *storage.Store) {
	t.Helper()

	appCfg := config.DefaultAppConfig()
	appCfg.Session.Delay = 0
	store := session.New(appCfg.Session)

	scores, err := storage.Open(storage.MemoryPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { scores.Close() })
	if err := scores.SeedLeaderboard(appCfg.Leaderboard.Seed); err != nil {
		t.Fatalf("SeedLeaderboard failed: %v", err)
	}

	app := NewApp(context.Background(), Options{
		Store:   store,
		Scores:  scores,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Input:   config.InputConfig{HoldTicks: 3},
	})
	app.Init()
	return app, store, scores
}

// signedInApp returns an app with a learner signed in on the dashboard.
func signedInApp(t *testing.T) (*App, *session.Store, *storage.Store) {
	t.Helper()
	app, store, scores := newTestApp(t)
	if _, err := store.SignIn(context.Background(), "be@example.com", "secret"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	app.Update(noopMsg{})
	if app.shown != session.ScreenDashboard {
		t.Fatalf("screen = %v after sign-in, expected dashboard", app.shown)
	}
	return app, store, scores
}

func press(app *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = app.Update(keyMsg(k))
	}
	return cmd
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(keyMsg(string(r)))
	}
}

// deliver runs cmd and hands request results back to the app.
// Timer-driven messages (spinner, cursor blink, ticks) are dropped.
func deliver(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(app, c)
		}
	case authResultMsg, profileSavedMsg:
		app.Update(msg)
	}
}

func TestAppStartsOnLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.shown != session.ScreenLogin {
		t.Fatalf("screen = %v, expected login", app.shown)
	}
	if view := app.View(); !strings.Contains(view, "Đăng nhập") {
		t.Errorf("login view should offer sign-in:\n%s", view)
	}
}

func TestAppSignInThroughForm(t *testing.T) {
	app, store, _ := newTestApp(t)

	typeText(app, "be@example.com")
	press(app, "tab")
	typeText(app, "secret")
	cmd := press(app, "enter")
	if !app.login.loading {
		t.Fatal("submitting should show the loading state")
	}
	deliver(app, cmd)

	if app.shown != session.ScreenDashboard {
		t.Fatalf("screen = %v, expected dashboard", app.shown)
	}
	p := store.Snapshot().Profile
	if p == nil || p.Email != "be@example.com" || p.Points != 1234 {
		t.Fatalf("profile = %+v", p)
	}
	view := app.View()
	for _, want := range []string{"Chào mừng trở lại, Bé A!", "1234", "Học tập"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard should contain %q", want)
		}
	}
}

func TestAppLoginErrors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"missing password", "be@example.com", "", "Vui lòng điền đầy đủ thông tin."},
		{"rejected email", "error@example.com", "secret", "Email hoặc mật khẩu không đúng!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store, _ := newTestApp(t)
			typeText(app, tt.email)
			press(app, "tab")
			typeText(app, tt.password)
			deliver(app, press(app, "enter"))

			if app.shown != session.ScreenLogin || store.Snapshot().SignedIn() {
				t.Fatal("a failed sign-in must stay on the login screen")
			}
			if app.login.err != tt.message {
				t.Errorf("error line = %q, expected %q", app.login.err, tt.message)
			}
			if app.login.loading {
				t.Error("loading should end with the result")
			}
		})
	}
}

func TestAppRegister(t *testing.T) {
	app, store, _ := newTestApp(t)

	press(app, "ctrl+t")
	if app.login.mode != modeRegister {
		t.Fatal("ctrl+t should switch to registration")
	}
	typeText(app, "Bé Na")
	press(app, "tab")
	typeText(app, "na@example.com")
	press(app, "tab")
	typeText(app, "secret")
	deliver(app, press(app, "enter"))

	p := store.Snapshot().Profile
	if p == nil || p.Name != "Bé Na" || p.Points != 0 {
		t.Fatalf("profile = %+v", p)
	}

	// Quit and back keys are typed into the form, not acted on
	app2, _, _ := newTestApp(t)
	typeText(app2, "qb")
	if app2.quitting || app2.login.email.Value() != "qb" {
		t.Errorf("typing should fill the field, got %q", app2.login.email.Value())
	}
}

func TestRouterShowsEveryScreen(t *testing.T) {
	app, store, _ := signedInApp(t)

	for _, s := range session.Screens() {
		store.SetScreen(s)
		app.Update(noopMsg{})

		if app.shown != s {
			t.Errorf("screen = %v, expected %v", app.shown, s)
		}
		if strings.TrimSpace(app.View()) == "" {
			t.Errorf("screen %v rendered nothing", s)
		}
		if id, ok := gameScreens[s]; ok {
			if app.game == nil || app.game.game.ID() != id {
				t.Errorf("screen %v should run game %q", s, id)
			}
		} else if app.game != nil {
			t.Errorf("screen %v should not keep a game running", s)
		}
	}
}

func TestRouterFallsBackOnUnknownScreen(t *testing.T) {
	app, _, _ := signedInApp(t)
	if _, ok := app.viewFor(session.Screen(99)).(*DashboardView); !ok {
		t.Error("an unknown screen should render the dashboard")
	}
}

func TestAppBackNavigation(t *testing.T) {
	tests := []struct {
		from session.Screen
		to   session.Screen
	}{
		{session.ScreenLearningHub, session.ScreenDashboard},
		{session.ScreenRewards, session.ScreenDashboard},
		{session.ScreenReports, session.ScreenDashboard},
		{session.ScreenProfile, session.ScreenDashboard},
		{session.ScreenNumberLearning, session.ScreenLearningHub},
		{session.ScreenWritingPractice, session.ScreenLearningHub},
		{session.ScreenComparisonGame, session.ScreenLearningHub},
		{session.ScreenPlatformerGame, session.ScreenLearningHub},
		{session.ScreenDashboard, session.ScreenDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			app, store, _ := signedInApp(t)
			store.SetScreen(tt.from)
			app.Update(noopMsg{})

			press(app, "esc")
			// Games leave on their next step
			if app.game != nil {
				app.Update(TickMsg{Time: time.Now(), Gen: app.game.gen})
			}
			if app.shown != tt.to {
				t.Errorf("back from %v = %v, expected %v", tt.from, app.shown, tt.to)
			}
		})
	}
}

func TestAppSignOutAndQuit(t *testing.T) {
	app, store, _ := signedInApp(t)
	store.SetScreen(session.ScreenRewards)
	app.Update(noopMsg{})

	press(app, "x")
	if store.Snapshot().SignedIn() || app.shown != session.ScreenLogin {
		t.Fatal("x should sign out and show the login screen")
	}
	// The selected screen survives sign-out
	if store.Snapshot().Screen != session.ScreenRewards {
		t.Errorf("selected screen = %v", store.Snapshot().Screen)
	}

	cmd := press(app, "ctrl+c")
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestDashboardCards(t *testing.T) {
	app, _, _ := signedInApp(t)

	press(app, "right", "enter")
	if app.shown != session.ScreenRewards {
		t.Fatalf("second card should open rewards, got %v", app.shown)
	}

	press(app, "esc", "4")
	if app.shown != session.ScreenReports {
		t.Fatalf("key 4 should open reports, got %v", app.shown)
	}

	press(app, "esc", "1", "4")
	if app.shown != session.ScreenPlatformerGame {
		t.Fatalf("hub card 4 should open the platformer, got %v", app.shown)
	}
}

func TestPlatformerHeldDirection(t *testing.T) {
	app, store, _ := signedInApp(t)
	store.SetScreen(session.ScreenPlatformerGame)
	app.Update(noopMsg{})

	gm := app.game
	engine := gm.game.(*platformer.Game).Engine()
	startX := engine.Snapshot().Player.X

	press(app, "right")
	at := time.Now()
	for i := 0; i < 6; i++ {
		app.Update(TickMsg{Time: at, Gen: gm.gen})
		at = at.Add(gm.stepper.Interval())
	}

	// One press holds the direction for HoldTicks steps
	speed := config.DefaultPlatformerConfig().Physics.Speed
	if x := engine.Snapshot().Player.X; x != startX+3*speed {
		t.Errorf("x = %v, expected %v", x, startX+3*speed)
	}

	// Ticks from an earlier run are ignored
	ticks := engine.Snapshot().Ticks
	app.Update(TickMsg{Time: at, Gen: gm.gen - 1})
	if engine.Snapshot().Ticks != ticks {
		t.Error("a stale tick must not step the game")
	}
}

func TestRewardsRanksLearner(t *testing.T) {
	app, store, _ := signedInApp(t)
	store.SetScreen(session.ScreenRewards)
	app.Update(noopMsg{})

	entries := app.rewards.entries
	if len(entries) != 6 {
		t.Fatalf("got %d entries, expected 5 seeded plus the learner", len(entries))
	}
	self := entries[1]
	if !self.Self || self.Rank != 2 || self.Points != 1234 {
		t.Errorf("learner row = %+v, expected rank 2", self)
	}
	if !strings.Contains(app.View(), "Bé An") {
		t.Error("the board should list the seeded players")
	}
}

func TestRankLeaderboard(t *testing.T) {
	board := []storage.LeaderboardEntry{{Name: "A", Points: 300}, {Name: "B", Points: 100}}

	tests := []struct {
		name  string
		self  *session.Profile
		order []string
	}{
		{"signed out", nil, []string{"A", "B"}},
		{"top", &session.Profile{Name: "Me", Points: 500}, []string{"Me", "A", "B"}},
		{"tie goes after", &session.Profile{Name: "Me", Points: 100}, []string{"A", "B", "Me"}},
		{"last", &session.Profile{Name: "Me", Points: 0}, []string{"A", "B", "Me"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankLeaderboard(board, tt.self)
			if len(got) != len(tt.order) {
				t.Fatalf("got %d rows", len(got))
			}
			for i, name := range tt.order {
				if got[i].Name != name || got[i].Rank != i+1 {
					t.Errorf("row %d = %+v, expected %s", i, got[i], name)
				}
			}
		})
	}
}

func TestReportsView(t *testing.T) {
	app, store, scores := signedInApp(t)
	id := store.Snapshot().Profile.ID

	for _, s := range []int{20, 40} {
		if _, err := scores.SaveScore(id, platformer.ID, s); err != nil {
			t.Fatal(err)
		}
	}
	// Other learners do not count
	if _, err := scores.SaveScore("someone-else", platformer.ID, 90); err != nil {
		t.Fatal(err)
	}

	store.SetScreen(session.ScreenReports)
	app.Update(noopMsg{})

	if got := app.reports.TotalGames(); got != 2 {
		t.Errorf("TotalGames = %d, expected 2", got)
	}
	if app.reports.notified {
		t.Error("nothing is sent before the learner asks")
	}
	press(app, "n")
	if !app.reports.notified || !strings.Contains(app.View(), "Đã gửi thông báo thành công!") {
		t.Error("n should send the parents notice")
	}
}

func TestProfileEdit(t *testing.T) {
	app, store, _ := signedInApp(t)
	store.SetScreen(session.ScreenProfile)
	app.Update(noopMsg{})

	press(app, "e")
	if !app.profile.editing {
		t.Fatal("e should open the edit form")
	}

	// Keys go to the form while editing
	press(app, "x")
	if !store.Snapshot().SignedIn() {
		t.Fatal("x must not sign out while typing")
	}

	app.profile.name.SetValue("Bé Na")
	deliver(app, press(app, "enter"))

	if p := store.Snapshot().Profile; p.Name != "Bé Na" {
		t.Errorf("name = %q after save", p.Name)
	}
	if app.profile.editing || app.profile.status == "" {
		t.Error("a successful save should close the form with a confirmation")
	}
}

func TestCountingAndTracingKeys(t *testing.T) {
	app, store, _ := signedInApp(t)

	store.SetScreen(session.ScreenNumberLearning)
	app.Update(noopMsg{})
	press(app, "left")
	if n := app.counting.counter.Current().Num; n != 9 {
		t.Errorf("left from 0 = %d, expected 9", n)
	}
	press(app, "7")
	if n := app.counting.counter.Current().Num; n != 7 {
		t.Errorf("digit key = %d, expected 7", n)
	}

	store.SetScreen(session.ScreenWritingPractice)
	app.Update(noopMsg{})
	pad := app.tracing.Pad()
	press(app, "3", " ", "right", "down", "tab")
	if pad.Digit() != 3 || !pad.PenDown() || pad.Color() != 1 {
		t.Errorf("digit=%d pen=%v color=%d", pad.Digit(), pad.PenDown(), pad.Color())
	}
	if x, y := pad.Cursor(); x != 1 || y != 1 {
		t.Errorf("cursor = (%d, %d), expected (1, 1)", x, y)
	}
	press(app, "c")
	if pad.Coverage() != 0 {
		t.Error("c should clear the pad")
	}
}
