package session

import (
	"net/url"
	"strings"
)

// Profile is the signed-in learner.
type Profile struct {
	ID     string
	Name   string
	Email  string
	Avatar string
	Points int
}

// avatarFor derives a stable avatar URI from an email address.
func avatarFor(base, email string) string {
	if base == "" {
		base = DefaultAvatarBase
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "u=" + url.QueryEscape(email)
}

// Snapshot is a read-only copy of the store state.
type Snapshot struct {
	Profile *Profile // nil when nobody is signed in
	Screen  Screen   // last selected screen
}

// SignedIn reports whether a profile is present.
func (s Snapshot) SignedIn() bool {
	return s.Profile != nil
}

// Effective returns the screen that should actually be shown:
// login whenever nobody is signed in, the selected screen otherwise.
func (s Snapshot) Effective() Screen {
	if s.Profile == nil {
		return ScreenLogin
	}
	return s.Screen
}
