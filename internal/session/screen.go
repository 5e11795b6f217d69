package session

import "fmt"

// Screen names the view currently shown to the learner.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenLearningHub
	ScreenComparisonGame
	ScreenNumberLearning
	ScreenWritingPractice
	ScreenPlatformerGame
	ScreenRewards
	ScreenReports
	ScreenProfile
)

var screenNames = [...]string{
	ScreenLogin:           "login",
	ScreenDashboard:       "dashboard",
	ScreenLearningHub:     "learning-hub",
	ScreenComparisonGame:  "comparison-game",
	ScreenNumberLearning:  "number-learning",
	ScreenWritingPractice: "writing-practice",
	ScreenPlatformerGame:  "platformer-game",
	ScreenRewards:         "rewards",
	ScreenReports:         "reports",
	ScreenProfile:         "profile",
}

// Screens lists every screen in declaration order.
func Screens() []Screen {
	out := make([]Screen, len(screenNames))
	for i := range screenNames {
		out[i] = Screen(i)
	}
	return out
}

// String returns the screen's tag, e.g. "learning-hub".
func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// Valid reports whether s is one of the declared screens.
func (s Screen) Valid() bool {
	return s >= 0 && int(s) < len(screenNames)
}

// ParseScreen converts a tag back into a Screen.
func ParseScreen(tag string) (Screen, error) {
	for i, name := range screenNames {
		if name == tag {
			return Screen(i), nil
		}
	}
	return ScreenLogin, fmt.Errorf("session: unknown screen %q", tag)
}
