package phantom

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// MaxPrecision is the largest number of decimal digits [Config.Round] keeps.
const MaxPrecision = 15

// Config holds editor-wide settings. It is passed explicitly to [New] and
// [Load].
type Config struct {
	// Precision is the number of decimal digits kept for coordinates and
	// radii created by the phantom (new fibers, inserted points, loaded
	// records).
	Precision int `yaml:"precision"`
	// Palette supplies the colors of new fibers and regions, in order.
	Palette Palette `yaml:"palette"`
	// DefaultTangents is the tangent mode of new fibers and of records that
	// don't name one.
	DefaultTangents string `yaml:"default_tangents"`
}

// DefaultConfig returns the Phantomas editor settings: one decimal digit,
// its 40-color palette and symmetric tangents.
func DefaultConfig() Config {
	return Config{
		Precision:       1,
		Palette:         DefaultPalette(),
		DefaultTangents: Symmetric.String(),
	}
}

// ParseConfig parses a YAML document. Keys that are absent keep their
// [DefaultConfig] values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML document from r, like [ParseConfig]. An empty
// input yields the default configuration.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return fmt.Errorf("precision %d not in [0, %d]: %w", c.Precision, MaxPrecision, ErrInvalidConfig)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("empty palette: %w", ErrInvalidConfig)
	}
	for i, col := range c.Palette {
		if col > 0xffffff {
			return fmt.Errorf("palette entry %d (%#x) is not a 24-bit color: %w", i, uint32(col), ErrInvalidConfig)
		}
	}
	if _, err := ParseTangentMode(c.DefaultTangents); err != nil {
		return fmt.Errorf("default_tangents: %w: %w", err, ErrInvalidConfig)
	}
	return nil
}

// Round rounds v to Precision decimal digits.
func (c Config) Round(v float64) float64 {
	p := math.Pow10(c.Precision)
	return math.Round(v*p) / p
}

// TangentMode returns the parsed DefaultTangents, or [Symmetric] if it is
// invalid.
func (c Config) TangentMode() TangentMode {
	m, err := ParseTangentMode(c.DefaultTangents)
	if err != nil {
		return Symmetric
	}
	return m
}
