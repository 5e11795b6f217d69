// Package config provides YAML-based configuration for the app and its
// games, with embedded defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// PlatformerConfig contains all configuration for the platformer game.
type PlatformerConfig struct {
	Physics PlatformerPhysics `yaml:"physics"`
	Player  PlatformerPlayer  `yaml:"player"`
	Quiz    QuizConfig        `yaml:"quiz"`
	Scoring PlatformerScoring `yaml:"scoring"`
	Render  PlatformerRender  `yaml:"render"`
	Level   string            `yaml:"level"` // Optional level file, empty = built-in level
}

// PlatformerPhysics defines per-tick physics constants in world units.
type PlatformerPhysics struct {
	Gravity   float64 `yaml:"gravity"`    // Added to vertical velocity every tick (down is positive)
	JumpForce float64 `yaml:"jump_force"` // Vertical velocity set by a jump (negative = up)
	Speed     float64 `yaml:"speed"`      // Horizontal velocity while a direction is held
}

// PlatformerPlayer defines the player's size and spawn point.
type PlatformerPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
}

// QuizConfig defines how arithmetic prompts are generated and shown.
type QuizConfig struct {
	OperandMin       int `yaml:"operand_min"`
	OperandMax       int `yaml:"operand_max"`
	DistractorMin    int `yaml:"distractor_min"`
	DistractorMax    int `yaml:"distractor_max"`
	Choices          int `yaml:"choices"`
	AnswerDelayTicks int `yaml:"answer_delay_ticks"` // Ticks the "correct" message stays up
	FeedbackTicks    int `yaml:"feedback_ticks"`     // Ticks the "try again" message stays up
}

// PlatformerScoring defines how the final score is computed.
type PlatformerScoring struct {
	PointsPerCollectible int `yaml:"points_per_collectible"`
}

// PlatformerRender maps world units onto terminal cells.
type PlatformerRender struct {
	CellW float64 `yaml:"cell_w"` // World units per column
	CellH float64 `yaml:"cell_h"` // World units per row
}

// Validate reports configuration values the engine cannot run with.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if c.Physics.JumpForce >= 0 {
		errs = append(errs, errors.New("physics.jump_force must be negative"))
	}
	if c.Physics.Speed <= 0 {
		errs = append(errs, errors.New("physics.speed must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Quiz.OperandMin > c.Quiz.OperandMax {
		errs = append(errs, errors.New("quiz operand range is empty"))
	}
	if c.Quiz.Choices < 1 {
		errs = append(errs, errors.New("quiz.choices must be at least 1"))
	}
	// The answer plus Choices-1 distinct distractors must fit in the range
	if span := c.Quiz.DistractorMax - c.Quiz.DistractorMin + 1; span < c.Quiz.Choices {
		errs = append(errs, fmt.Errorf("quiz distractor range holds %d values, need %d", span, c.Quiz.Choices))
	}
	if c.Render.CellW <= 0 || c.Render.CellH <= 0 {
		errs = append(errs, errors.New("render cell size must be positive"))
	}
	return errors.Join(errs...)
}

// ComparisonConfig contains all configuration for the comparison game.
type ComparisonConfig struct {
	Questions        int     `yaml:"questions"`
	MinNumber        int     `yaml:"min_number"`
	MaxNumber        int     `yaml:"max_number"`
	EqualChance      float64 `yaml:"equal_chance"` // Probability a question is forced to "="
	PointsPerCorrect int     `yaml:"points_per_correct"`
	FeedbackTicks    int     `yaml:"feedback_ticks"`
}

// Validate reports configuration values the game cannot run with.
func (c ComparisonConfig) Validate() error {
	var errs []error
	if c.Questions < 1 {
		errs = append(errs, errors.New("questions must be at least 1"))
	}
	if c.MinNumber > c.MaxNumber {
		errs = append(errs, errors.New("number range is empty"))
	}
	if c.EqualChance < 0 || c.EqualChance > 1 {
		errs = append(errs, errors.New("equal_chance must be within [0, 1]"))
	}
	if c.PointsPerCorrect < 0 {
		errs = append(errs, errors.New("points_per_correct must not be negative"))
	}
	return errors.Join(errs...)
}

// AppConfig holds settings for the shell around the games.
type AppConfig struct {
	Session     SessionConfig     `yaml:"session"`
	Input       InputConfig       `yaml:"input"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// SessionConfig controls the simulated sign-in backend.
type SessionConfig struct {
	Delay          time.Duration `yaml:"delay"` // Artificial network latency
	StartingPoints int           `yaml:"starting_points"`
	DefaultName    string        `yaml:"default_name"`
	FailMarker     string        `yaml:"fail_marker"`   // Emails containing this fail to sign in
	ExistsMarker   string        `yaml:"exists_marker"` // Emails containing this are "taken"
	AvatarBase     string        `yaml:"avatar_base"`
}

// InputConfig tunes keyboard handling.
type InputConfig struct {
	// HoldTicks is how long one key press keeps a direction held.
	// Terminals report presses and auto-repeat but never releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// LeaderboardConfig lists the players shown next to the learner.
type LeaderboardConfig struct {
	Seed []LeaderboardEntry `yaml:"seed"`
}

// LeaderboardEntry is one seeded leaderboard row.
type LeaderboardEntry struct {
	Name   string `yaml:"name"`
	Points int    `yaml:"points"`
}
