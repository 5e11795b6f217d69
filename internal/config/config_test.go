package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		name     string
		embedded []byte
		decode   func([]byte) (any, error)
		want     any
	}{
		{
			name:     "platformer",
			embedded: defaultPlatformerYAML,
			decode: func(b []byte) (any, error) {
				var c PlatformerConfig
				err := yaml.Unmarshal(b, &c)
				return c, err
			},
			want: DefaultPlatformerConfig(),
		},
		{
			name:     "comparison",
			embedded: defaultComparisonYAML,
			decode: func(b []byte) (any, error) {
				var c ComparisonConfig
				err := yaml.Unmarshal(b, &c)
				return c, err
			},
			want: DefaultComparisonConfig(),
		},
		{
			name:     "app",
			embedded: defaultAppYAML,
			decode: func(b []byte) (any, error) {
				var c AppConfig
				err := yaml.Unmarshal(b, &c)
				return c, err
			},
			want: DefaultAppConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.decode(tt.embedded)
			if err != nil {
				t.Fatalf("embedded yaml does not parse: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("embedded = %+v\nhardcoded = %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultPlatformerConfig().Validate(); err != nil {
		t.Errorf("default platformer config invalid: %v", err)
	}
	if err := DefaultComparisonConfig().Validate(); err != nil {
		t.Errorf("default comparison config invalid: %v", err)
	}
}

func TestLoadPlatformerCustomPathOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	data := "physics:\n  speed: 9\nquiz:\n  choices: 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer failed: %v", err)
	}
	if cfg.Physics.Speed != 9 || cfg.Quiz.Choices != 4 {
		t.Errorf("overrides not applied: speed=%v choices=%d", cfg.Physics.Speed, cfg.Quiz.Choices)
	}
	if cfg.Physics.Gravity != 0.8 || cfg.Player.Width != 40 {
		t.Errorf("unset fields should keep defaults: gravity=%v width=%v", cfg.Physics.Gravity, cfg.Player.Width)
	}
}

func TestLoadPlatformerRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  jump_force: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadPlatformer(path)
	if err == nil || !strings.Contains(err.Error(), "jump_force") {
		t.Errorf("expected jump_force error, got %v", err)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := LoadComparison(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadAppFromLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	data := "session:\n  delay: 2s\n  fail_marker: nope\ninput:\n  hold_ticks: 0\n"
	if err := os.WriteFile(filepath.Join("configs", "app.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadApp("")
	if err != nil {
		t.Fatalf("LoadApp failed: %v", err)
	}
	if cfg.Session.Delay != 2*time.Second {
		t.Errorf("Delay = %v, expected 2s", cfg.Session.Delay)
	}
	if cfg.Session.FailMarker != "nope" {
		t.Errorf("FailMarker = %q", cfg.Session.FailMarker)
	}
	if cfg.Session.StartingPoints != 1234 {
		t.Errorf("StartingPoints = %d, expected default 1234", cfg.Session.StartingPoints)
	}
	if cfg.Input.HoldTicks != 1 {
		t.Errorf("HoldTicks = %d, expected clamp to 1", cfg.Input.HoldTicks)
	}
	if len(cfg.Leaderboard.Seed) != 5 {
		t.Errorf("leaderboard seed has %d rows, expected 5", len(cfg.Leaderboard.Seed))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlatformerConfig)
		ok     bool
	}{
		{"default", func(*PlatformerConfig) {}, true},
		{"zero gravity", func(c *PlatformerConfig) { c.Physics.Gravity = 0 }, false},
		{"upward speed", func(c *PlatformerConfig) { c.Physics.Speed = -1 }, false},
		{"empty operands", func(c *PlatformerConfig) { c.Quiz.OperandMin = 10 }, false},
		{"narrow distractors", func(c *PlatformerConfig) { c.Quiz.DistractorMax = 2 }, false},
		{"bad render", func(c *PlatformerConfig) { c.Render.CellH = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok expected %v", err, tt.ok)
			}
		})
	}
}
