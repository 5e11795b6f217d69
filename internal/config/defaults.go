package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/comparison.yaml
var defaultComparisonYAML []byte

//go:embed defaults/app.yaml
var defaultAppYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:   0.8,
			JumpForce: -15,
			Speed:     6,
		},
		Player: PlatformerPlayer{
			Width:  40,
			Height: 40,
			SpawnX: 50,
			SpawnY: 0,
		},
		Quiz: QuizConfig{
			OperandMin:       1,
			OperandMax:       9,
			DistractorMin:    1,
			DistractorMax:    18,
			Choices:          3,
			AnswerDelayTicks: 60,
			FeedbackTicks:    60,
		},
		Scoring: PlatformerScoring{
			PointsPerCollectible: 10,
		},
		Render: PlatformerRender{
			CellW: 20,
			CellH: 40,
		},
	}
}

// DefaultComparisonConfig returns the default comparison game configuration.
func DefaultComparisonConfig() ComparisonConfig {
	return ComparisonConfig{
		Questions:        5,
		MinNumber:        1,
		MaxNumber:        10,
		EqualChance:      0.3,
		PointsPerCorrect: 10,
		FeedbackTicks:    90,
	}
}

// DefaultAppConfig returns the default shell configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Session: SessionConfig{
			Delay:          500 * time.Millisecond,
			StartingPoints: 1234,
			DefaultName:    "Bé A",
			FailMarker:     "error",
			ExistsMarker:   "exists",
			AvatarBase:     "https://i.pravatar.cc/150",
		},
		Input: InputConfig{
			HoldTicks: 12,
		},
		Leaderboard: LeaderboardConfig{
			Seed: []LeaderboardEntry{
				{Name: "Bé An", Points: 1250},
				{Name: "Bé Bình", Points: 1100},
				{Name: "Bé Châu", Points: 950},
				{Name: "Bé Dũng", Points: 800},
				{Name: "Bé Giang", Points: 650},
			},
		},
	}
}
