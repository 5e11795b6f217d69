// Package session holds the per-instance state every screen shares:
// who is signed in and which screen is selected.
//
// One Store is created when an app instance starts (a local terminal
// program or one SSH connection) and handed to every view. Sign-in and
// registration are simulated: they wait a fixed delay and succeed unless
// the email carries one of the configured failure markers.
package session

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/mathkids/internal/config"
)

// DefaultAvatarBase is used when the config leaves avatar_base empty.
const DefaultAvatarBase = "https://i.pravatar.cc/150"

// Store is the session/navigation state of one app instance.
type Store struct {
	mu      sync.RWMutex
	cfg     config.SessionConfig
	profile *Profile
	screen  Screen
	subs    map[int]func(Snapshot)
	nextSub int
	logger  *log.Logger
	newID   func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used for session events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store with nobody signed in and the dashboard selected.
func New(cfg config.SessionConfig, opts ...Option) *Store {
	s := &Store{
		cfg:    cfg,
		screen: ScreenDashboard,
		subs:   make(map[int]func(Snapshot)),
		logger: log.New(io.Discard),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Screen: s.screen}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// Subscribe registers fn to be called after every state change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update applies fn under the write lock and then notifies subscribers.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// SignIn simulates a remote sign-in. Emails containing the failure
// marker are rejected with an *AuthenticationError. The profile is only
// stored once the delay has elapsed without error.
func (s *Store) SignIn(ctx context.Context, email, password string) (Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Profile{}, ErrMissingFields
	}

	if err := s.wait(ctx); err != nil {
		return Profile{}, err
	}

	if marked(email, s.cfg.FailMarker) {
		s.logger.Warn("sign-in rejected", "email", email)
		return Profile{}, &AuthenticationError{Email: email}
	}

	p := Profile{
		ID:     s.newID(),
		Name:   s.cfg.DefaultName,
		Email:  email,
		Avatar: avatarFor(s.cfg.AvatarBase, email),
		Points: s.cfg.StartingPoints,
	}
	s.update(func() { s.profile = &p })
	s.logger.Info("signed in", "email", email, "id", p.ID)
	return p, nil
}

// Register simulates creating an account. Emails containing the exists
// marker are rejected with a *DuplicateAccountError. New accounts start
// with zero points.
func (s *Store) Register(ctx context.Context, name, email, password string) (Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return Profile{}, ErrMissingFields
	}

	if err := s.wait(ctx); err != nil {
		return Profile{}, err
	}

	if marked(email, s.cfg.ExistsMarker) {
		s.logger.Warn("registration rejected", "email", email)
		return Profile{}, &DuplicateAccountError{Email: email}
	}

	p := Profile{
		ID:     s.newID(),
		Name:   name,
		Email:  email,
		Avatar: avatarFor(s.cfg.AvatarBase, email),
	}
	s.update(func() { s.profile = &p })
	s.logger.Info("registered", "email", email, "id", p.ID)
	return p, nil
}

// SignOut clears the profile. The selected screen is kept.
func (s *Store) SignOut() {
	s.update(func() { s.profile = nil })
	s.logger.Info("signed out")
}

// AwardPoints adds amount to the signed-in learner's points.
// It is a no-op when nobody is signed in. Points stop at math.MaxInt.
// A negative amount is a programming error and panics.
func (s *Store) AwardPoints(amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("session: AwardPoints called with negative amount %d", amount))
	}

	awarded := false
	s.update(func() {
		if s.profile == nil {
			return
		}
		// Saturate rather than wrap
		if s.profile.Points > math.MaxInt-amount {
			s.profile.Points = math.MaxInt
		} else {
			s.profile.Points += amount
		}
		awarded = true
	})
	if awarded {
		s.logger.Info("points awarded", "amount", amount)
	}
}

// SetScreen selects a screen. No check is made against the sign-in
// state; the router shows the login screen whenever nobody is signed in.
func (s *Store) SetScreen(screen Screen) {
	s.update(func() { s.screen = screen })
	s.logger.Debug("screen changed", "screen", screen)
}

// UpdateProfile simulates saving an edited name and avatar.
// An empty avatar keeps the current one.
func (s *Store) UpdateProfile(ctx context.Context, name, avatar string) (Profile, error) {
	name = strings.TrimSpace(name)
	avatar = strings.TrimSpace(avatar)
	if name == "" {
		return Profile{}, ErrEmptyName
	}
	if !s.Snapshot().SignedIn() {
		return Profile{}, ErrNotSignedIn
	}

	if err := s.wait(ctx); err != nil {
		return Profile{}, err
	}

	var (
		out Profile
		err error
	)
	s.update(func() {
		// Signed out while the save was in flight
		if s.profile == nil {
			err = ErrNotSignedIn
			return
		}
		s.profile.Name = name
		if avatar != "" {
			s.profile.Avatar = avatar
		}
		out = *s.profile
	})
	if err != nil {
		return Profile{}, err
	}
	s.logger.Info("profile updated", "id", out.ID)
	return out, nil
}

// wait blocks for the simulated network delay or until ctx is done.
func (s *Store) wait(ctx context.Context) error {
	d := s.cfg.Delay
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// marked reports whether email contains a non-empty marker.
func marked(email, marker string) bool {
	return marker != "" && strings.Contains(email, marker)
}
