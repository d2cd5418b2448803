// Package config loads the reflex configuration file and builds the logger.
//
// A file is optional. Values are layered as preset defaults, then the file,
// then whatever the command line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/reflex/pkg/game"
	"github.com/taigrr/reflex/pkg/math3d"
)

// EnvPath names a config file used when no -config flag is given.
const EnvPath = "REFLEX_CONFIG"

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	Game    GameConfig    `toml:"game" yaml:"game"`
	Display DisplayConfig `toml:"display" yaml:"display"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// GameConfig picks a variant and overrides individual values of its preset.
// Nil fields keep the preset value.
type GameConfig struct {
	Variant string `toml:"variant" yaml:"variant"`

	BoundZ         *float64  `toml:"bound_z" yaml:"bound_z"`
	ContactRadius  *float64  `toml:"contact_radius" yaml:"contact_radius"`
	BounceSpeed    *float64  `toml:"bounce_speed" yaml:"bounce_speed"`
	BaseSpeed      *float64  `toml:"base_speed" yaml:"base_speed"`
	SwingDuration  *float64  `toml:"swing_duration" yaml:"swing_duration"`
	RespawnDelay   *float64  `toml:"respawn_delay" yaml:"respawn_delay"`
	MaxPitches     *int      `toml:"max_pitches" yaml:"max_pitches"`
	SpeedIncrement *float64  `toml:"speed_increment" yaml:"speed_increment"`
	TrackScore     *bool     `toml:"track_score" yaml:"track_score"`
	OrientedTip    *bool     `toml:"oriented_tip" yaml:"oriented_tip"`
	SpawnHeight    *float64  `toml:"spawn_height" yaml:"spawn_height"`
	BatAnchor      []float64 `toml:"bat_anchor" yaml:"bat_anchor"` // x, y, z
}

type DisplayConfig struct {
	FPS        int    `toml:"fps" yaml:"fps"`
	Background string `toml:"background" yaml:"background"` // "R,G,B"
	BatModel   string `toml:"bat_model" yaml:"bat_model"`   // optional .glb
	Shake      bool   `toml:"shake" yaml:"shake"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // console or json
	File   string `toml:"file" yaml:"file"`     // empty disables logging
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Variant: game.VariantScoring.String(),
		},
		Display: DisplayConfig{
			FPS:        60,
			Background: "30,30,40",
			Shake:      true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Path picks the config file: the flag value if set, else $REFLEX_CONFIG.
// An empty result means run on defaults.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Load reads the file at path on top of Default. The format follows the
// extension: .toml, or .yaml and .yml. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(data, filepath.Ext(path), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data in the format named by ext into cfg.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q (use .toml or .yaml)", ErrUnsupportedFormat, ext)
	}
}

// Validate checks the display and logging sections and that the game
// section produces a valid game.Config.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Game.Resolve(); err != nil {
		errs = append(errs, err)
	}
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		errs = append(errs, fmt.Errorf("display.fps must be within 1..240, got %d", c.Display.FPS))
	}
	if _, err := c.Display.BackgroundRGB(); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Resolve applies the overrides to the variant preset and validates the result.
func (g GameConfig) Resolve() (game.Config, error) {
	v, err := game.ParseVariant(g.Variant)
	if err != nil {
		return game.Config{}, fmt.Errorf("game.variant: %w", err)
	}
	cfg := game.ConfigFor(v)

	set(&cfg.BoundZ, g.BoundZ)
	set(&cfg.ContactRadius, g.ContactRadius)
	set(&cfg.BounceSpeed, g.BounceSpeed)
	set(&cfg.BaseSpeed, g.BaseSpeed)
	set(&cfg.SwingDuration, g.SwingDuration)
	set(&cfg.RespawnDelay, g.RespawnDelay)
	set(&cfg.MaxPitches, g.MaxPitches)
	set(&cfg.SpeedIncrement, g.SpeedIncrement)
	set(&cfg.TrackScore, g.TrackScore)
	set(&cfg.OrientedTip, g.OrientedTip)
	set(&cfg.SpawnHeight, g.SpawnHeight)

	if g.BatAnchor != nil {
		if len(g.BatAnchor) != 3 {
			return game.Config{}, fmt.Errorf("game.bat_anchor needs 3 components, got %d", len(g.BatAnchor))
		}
		cfg.BatAnchor = math3d.V3(g.BatAnchor[0], g.BatAnchor[1], g.BatAnchor[2])
	}

	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// BackgroundRGB parses the "R,G,B" background colour.
func (d DisplayConfig) BackgroundRGB() ([3]uint8, error) {
	var rgb [3]uint8
	parts := strings.Split(d.Background, ",")
	if len(parts) != 3 {
		return rgb, fmt.Errorf("display.background %q is not R,G,B", d.Background)
	}
	for i, p := range parts {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &n); err != nil || n < 0 || n > 255 {
			return rgb, fmt.Errorf("display.background %q: component %d out of range", d.Background, i+1)
		}
		rgb[i] = uint8(n)
	}
	return rgb, nil
}
