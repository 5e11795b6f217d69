package core

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Held: walk left / move a cursor left
	ActionRight          // Held: walk right / move a cursor right
	ActionUp             // Cursor up
	ActionDown           // Cursor down
	ActionJump           // Space, W, Up: jump
	ActionConfirm        // Enter: pick the highlighted choice
	ActionChoice1        // 1: first answer
	ActionChoice2        // 2: second answer
	ActionChoice3        // 3: third answer
	ActionBack           // B, Esc: leave the game
	ActionRestart        // R: play again
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionChoice1:
		return "Choice1"
	case ActionChoice2:
		return "Choice2"
	case ActionChoice3:
		return "Choice3"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ChoiceIndex returns the zero-based answer index for a choice action.
func (a Action) ChoiceIndex() (int, bool) {
	switch a {
	case ActionChoice1:
		return 0, true
	case ActionChoice2:
		return 1, true
	case ActionChoice3:
		return 2, true
	}
	return 0, false
}

// InputFrame is the set of actions active during one simulation tick.
// Held directions appear in every frame while held; presses appear once.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Choice returns the first answer index selected this frame, if any.
func (f InputFrame) Choice() (int, bool) {
	for _, a := range []Action{ActionChoice1, ActionChoice2, ActionChoice3} {
		if f.Has(a) {
			return a.ChoiceIndex()
		}
	}
	return 0, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
