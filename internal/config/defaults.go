package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

func heartmanLevel() LevelConfig {
	return LevelConfig{RowWidth: 0x20, Rows: 28, OffsetX: 2, OffsetY: 1}
}

func heartmanPlayer() PlayerConfig {
	return PlayerConfig{StartX: 16, StartY: 0, Width: 6, Speed: 1, FieldWidth: 224, FieldHeight: 208}
}

func heartmanSpawns() []SpawnConfig {
	return []SpawnConfig{
		{X: 128, Y: 188, DX: -1, DY: 0, Sense: "widdershins"},
		{X: 74, Y: 196, DX: 1, DY: 0, Sense: "clockwise"},
		{X: 74, Y: 88, DX: 0, DY: -1, Sense: "widdershins"},
	}
}

// Default returns the hard-coded configuration, used when no YAML is found.
func Default() Config {
	return Config{
		Console: ConsoleConfig{
			FrameRate:     60,
			QueueCapacity: 64,
			HoldFrames:    8,
		},
		Games: map[string]GameConfig{
			"heartman": {
				Level:  heartmanLevel(),
				Player: heartmanPlayer(),
				Meanies: MeanieConfig{
					Width: 6, Speed: 1, Retries: 3, TurnThreshold: intPtr(50), OnThreshold: "reverse",
					Spawns: heartmanSpawns(),
				},
				Collection: "mutable",
			},
			"heartman_plus": {
				Level:  heartmanLevel(),
				Player: heartmanPlayer(),
				Meanies: MeanieConfig{
					Width: 6, Speed: 1, Retries: 5, TurnThreshold: intPtr(5), OnThreshold: "random",
					Spawns: heartmanSpawns(),
				},
				Collection: "side-set",
			},
			"snake": {
				Level: heartmanLevel(),
				Snake: SnakeConfig{StartX: 2, StartY: 11, MoveEvery: 8, MaxSegments: 63},
			},
		},
	}
}

func intPtr(v int) *int { return &v }
