// Package config provides YAML-based configuration for the console and the
// games it runs. The level seed is deliberately not configurable: it is a
// build-time constant that fixes every layout.
package config

import (
	"fmt"
	"strings"
)

// Config is the whole configuration document.
type Config struct {
	Console ConsoleConfig         `yaml:"console"`
	Games   map[string]GameConfig `yaml:"games"`
}

// ConsoleConfig tunes the frame engine and the terminal front-end.
type ConsoleConfig struct {
	FrameRate     int `yaml:"frame_rate"`     // refresh interrupts per second
	QueueCapacity int `yaml:"queue_capacity"` // render queue bytes
	HoldFrames    int `yaml:"hold_frames"`    // frames a key press stays held in the TUI
}

// GameConfig holds the parameters one registered game reads.
type GameConfig struct {
	Level      LevelConfig  `yaml:"level"`
	Player     PlayerConfig `yaml:"player"`
	Meanies    MeanieConfig `yaml:"meanies"`
	Collection string       `yaml:"collection"` // "mutable" or "side-set"
	Snake      SnakeConfig  `yaml:"snake"`
}

// LevelConfig is the tile grid geometry.
type LevelConfig struct {
	RowWidth int `yaml:"row_width"`
	Rows     int `yaml:"rows"`
	OffsetX  int `yaml:"offset_x"`
	OffsetY  int `yaml:"offset_y"`
}

// PlayerConfig defines the controllable entity. Zero sizes and speeds keep
// the built-in defaults.
type PlayerConfig struct {
	StartX      int `yaml:"start_x"`
	StartY      int `yaml:"start_y"`
	Width       int `yaml:"width"`
	Speed       int `yaml:"speed"`
	FieldWidth  int `yaml:"field_width"`
	FieldHeight int `yaml:"field_height"`
}

// MeanieConfig defines steering and the spawn list. Zero width, speed and
// retries keep the built-in defaults; a nil TurnThreshold does too, while an
// explicit 0 resets the sense after every turn.
type MeanieConfig struct {
	Width         int           `yaml:"width"`
	Speed         int           `yaml:"speed"`
	Retries       int           `yaml:"retries"`
	TurnThreshold *int          `yaml:"turn_threshold"`
	OnThreshold   string        `yaml:"on_threshold"` // "reverse" or "random"
	Spawns        []SpawnConfig `yaml:"spawns"`
}

// SpawnConfig places one meanie.
type SpawnConfig struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	DX    int    `yaml:"dx"`
	DY    int    `yaml:"dy"`
	Sense string `yaml:"sense"` // "clockwise" or "widdershins"
}

// SnakeConfig defines the grid snake.
type SnakeConfig struct {
	StartX      int `yaml:"start_x"` // tile column
	StartY      int `yaml:"start_y"` // tile row
	MoveEvery   int `yaml:"move_every"`
	MaxSegments int `yaml:"max_segments"`
}

// Game returns the configuration for id, falling back to the built-in one.
func (c Config) Game(id string) GameConfig {
	if gc, ok := c.Games[id]; ok {
		return gc
	}
	return Default().Games[id]
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if c.Console.FrameRate <= 0 || c.Console.FrameRate > 240 {
		return fmt.Errorf("config: console.frame_rate %d out of range 1..240", c.Console.FrameRate)
	}
	if c.Console.QueueCapacity < 4 {
		return fmt.Errorf("config: console.queue_capacity %d too small", c.Console.QueueCapacity)
	}
	for id, g := range c.Games {
		if err := g.validate(); err != nil {
			return fmt.Errorf("config: games.%s: %w", id, err)
		}
	}
	return nil
}

func (g GameConfig) validate() error {
	if g.Level.RowWidth <= 0 || g.Level.Rows <= 0 {
		return fmt.Errorf("level %dx%d is empty", g.Level.RowWidth, g.Level.Rows)
	}
	for _, r := range []struct {
		name     string
		val, max int
	}{
		{"player.start_x", g.Player.StartX, 255},
		{"player.start_y", g.Player.StartY, 255},
		{"player.width", g.Player.Width, 127},
		{"player.speed", g.Player.Speed, 127},
		{"player.field_width", g.Player.FieldWidth, 255},
		{"player.field_height", g.Player.FieldHeight, 255},
		{"meanies.width", g.Meanies.Width, 127},
		{"meanies.speed", g.Meanies.Speed, 127},
		{"meanies.retries", g.Meanies.Retries, 8},
	} {
		if r.val < 0 || r.val > r.max {
			return fmt.Errorf("%s %d out of range 0..%d", r.name, r.val, r.max)
		}
	}
	if t := g.Meanies.TurnThreshold; t != nil && (*t < 0 || *t > 255) {
		return fmt.Errorf("meanies.turn_threshold %d out of range 0..255", *t)
	}
	switch strings.ToLower(g.Collection) {
	case "", "mutable", "side-set":
	default:
		return fmt.Errorf("unknown collection strategy %q", g.Collection)
	}
	switch strings.ToLower(g.Meanies.OnThreshold) {
	case "", "reverse", "random":
	default:
		return fmt.Errorf("unknown meanies.on_threshold %q", g.Meanies.OnThreshold)
	}
	for i, s := range g.Meanies.Spawns {
		switch strings.ToLower(s.Sense) {
		case "", "clockwise", "widdershins":
		default:
			return fmt.Errorf("meanies.spawns[%d]: unknown sense %q", i, s.Sense)
		}
		if s.X < 0 || s.X > 255 || s.Y < 0 || s.Y > 255 {
			return fmt.Errorf("meanies.spawns[%d]: position (%d,%d) out of range 0..255", i, s.X, s.Y)
		}
		if s.DX < -127 || s.DX > 127 || s.DY < -127 || s.DY > 127 {
			return fmt.Errorf("meanies.spawns[%d]: velocity (%d,%d) out of range -127..127", i, s.DX, s.DY)
		}
	}
	return nil
}
