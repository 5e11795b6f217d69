package platformer

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/mathkids/internal/core"
)

//go:embed levels/meadow.yaml
var defaultLevelYAML []byte

// yamlLevel is the on-disk level format.
type yamlLevel struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Size    yamlSize     `yaml:"size"`
	Objects []yamlObject `yaml:"objects"`
}

type yamlSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// yamlObject is one object, or a row of them when Repeat > 1.
// Repeated objects are laid out left to right, W apart.
type yamlObject struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Repeat int     `yaml:"repeat,omitempty"`
}

// ParseLevel parses and validates a YAML level.
func ParseLevel(data []byte) (*Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := &Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Width:  yl.Size.W,
		Height: yl.Size.H,
	}

	for i, yo := range yl.Objects {
		kind, ok := ParseKind(yo.Kind)
		if !ok {
			return nil, fmt.Errorf("object %d: unknown kind %q", i, yo.Kind)
		}
		n := max(yo.Repeat, 1)
		for j := 0; j < n; j++ {
			level.Objects = append(level.Objects, Object{
				ID:   len(level.Objects),
				Kind: kind,
				Box:  core.NewBox(yo.X+float64(j)*yo.W, yo.Y, yo.W, yo.H),
			})
		}
	}

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", yl.ID, err)
	}
	return level, nil
}

// LoadLevel reads a level file, or returns the built-in level when path is empty.
func LoadLevel(path string) (*Level, error) {
	if path == "" {
		return DefaultLevel()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", path, err)
	}
	return level, nil
}

// DefaultLevel returns the built-in level.
func DefaultLevel() (*Level, error) {
	return ParseLevel(defaultLevelYAML)
}
