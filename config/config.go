// Package config loads application settings from a TOML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lixenwraith/astral/parameter"
	"github.com/lixenwraith/astral/render"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned for unreadable or out-of-range settings
var ErrInvalidConfig = errors.New("config: invalid")

// EnvPrefix prefixes every environment override
const EnvPrefix = "ASTRAL_"

// MazeConfig holds layout generator settings
type MazeConfig struct {
	Braiding float64 `toml:"braiding"` // 0 perfect maze, 1 no dead ends
	Seed     int64   `toml:"seed"`     // 0 picks a new seed per layout
	Density  float64 `toml:"density"`  // scatter obstacle probability
}

// Config holds the application's configuration values
type Config struct {
	GridSize        int        `toml:"grid_size"`
	CellWidth       int        `toml:"cell_width"`
	StepsPerFrame   int        `toml:"steps_per_frame"`
	FrameIntervalMs int        `toml:"frame_interval_ms"`
	Audio           bool       `toml:"audio"`
	Debug           bool       `toml:"debug"`
	MetricsAddr     string     `toml:"metrics_addr"` // empty disables the endpoint
	ColorMode       string     `toml:"color_mode"`
	Maze            MazeConfig `toml:"maze"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		GridSize:        parameter.DefaultGridSize,
		CellWidth:       parameter.DefaultCellWidth,
		StepsPerFrame:   parameter.DefaultStepsPerFrame,
		FrameIntervalMs: int(parameter.FrameUpdateInterval / time.Millisecond),
		Audio:           true,
		ColorMode:       string(render.ColorTrue),
		Maze: MazeConfig{
			Braiding: parameter.DefaultMazeBraiding,
			Density:  parameter.DefaultScatterDensity,
		},
	}
}

// FrameInterval returns the frame period as a duration
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Load builds the configuration in order: defaults, TOML file, .env file, environment
// Missing files are skipped; the result is validated
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = vals
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, envFile, err)
		}
	}

	// Process environment wins over .env
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, strict.String())
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"GRID_SIZE":         &c.GridSize,
		"CELL_WIDTH":        &c.CellWidth,
		"STEPS_PER_FRAME":   &c.StepsPerFrame,
		"FRAME_INTERVAL_MS": &c.FrameIntervalMs,
	}
	for key, dst := range ints {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s must be an integer: %v", ErrInvalidConfig, EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"AUDIO": &c.Audio,
		"DEBUG": &c.Debug,
	}
	for key, dst := range bools {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s must be a boolean: %v", ErrInvalidConfig, EnvPrefix, key, err)
			}
			*dst = b
		}
	}

	floats := map[string]*float64{
		"MAZE_BRAIDING": &c.Maze.Braiding,
		"MAZE_DENSITY":  &c.Maze.Density,
	}
	for key, dst := range floats {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s must be a number: %v", ErrInvalidConfig, EnvPrefix, key, err)
			}
			*dst = f
		}
	}

	if v, ok := lookup(EnvPrefix + "MAZE_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sMAZE_SEED must be an integer: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.Maze.Seed = seed
	}
	if v, ok := lookup(EnvPrefix + "METRICS_ADDR"); ok {
		c.MetricsAddr = v
	}
	if v, ok := lookup(EnvPrefix + "COLOR_MODE"); ok {
		c.ColorMode = v
	}
	return nil
}

// Validate checks every field against its allowed range
func (c Config) Validate() error {
	switch {
	case c.GridSize < 1 || c.GridSize > parameter.MaxGridSize:
		return fmt.Errorf("%w: grid_size %d outside 1..%d", ErrInvalidConfig, c.GridSize, parameter.MaxGridSize)
	case c.CellWidth < 1 || c.CellWidth > parameter.MaxCellWidth:
		return fmt.Errorf("%w: cell_width %d outside 1..%d", ErrInvalidConfig, c.CellWidth, parameter.MaxCellWidth)
	case c.StepsPerFrame < 1 || c.StepsPerFrame > parameter.MaxStepsPerFrame:
		return fmt.Errorf("%w: steps_per_frame %d outside 1..%d", ErrInvalidConfig, c.StepsPerFrame, parameter.MaxStepsPerFrame)
	case c.FrameIntervalMs < 1:
		return fmt.Errorf("%w: frame_interval_ms must be positive, got %d", ErrInvalidConfig, c.FrameIntervalMs)
	case c.Maze.Braiding < 0 || c.Maze.Braiding > 1:
		return fmt.Errorf("%w: maze.braiding %g outside 0..1", ErrInvalidConfig, c.Maze.Braiding)
	case c.Maze.Density < 0 || c.Maze.Density > 1:
		return fmt.Errorf("%w: maze.density %g outside 0..1", ErrInvalidConfig, c.Maze.Density)
	}
	if _, err := render.ParseColorMode(c.ColorMode); err != nil {
		return fmt.Errorf("%w: color_mode: %v", ErrInvalidConfig, err)
	}
	return nil
}
