package heartman

import (
	"strings"

	"github.com/vovakirdan/tilearcade/internal/agent"
	"github.com/vovakirdan/tilearcade/internal/config"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/level"
)

func geometry(c config.LevelConfig) level.Geometry {
	if c.RowWidth <= 0 || c.Rows <= 0 {
		return level.DefaultGeometry
	}
	return level.Geometry{RowWidth: c.RowWidth, Rows: c.Rows, OffsetX: c.OffsetX, OffsetY: c.OffsetY}
}

func playerStart(c config.PlayerConfig) core.Position {
	return core.Pos(uint8(c.StartX), uint8(c.StartY))
}

func playerPolicy(c config.PlayerConfig) agent.PlayerPolicy {
	p := agent.DefaultPlayerPolicy
	if c.Width > 0 {
		p.Width = int8(c.Width)
	}
	if c.Speed > 0 {
		p.Speed = int8(c.Speed)
	}
	if c.FieldWidth > 0 {
		p.FieldWidth = uint8(c.FieldWidth)
	}
	if c.FieldHeight > 0 {
		p.FieldHeight = uint8(c.FieldHeight)
	}
	return p
}

func meaniePolicy(c config.MeanieConfig) agent.MeaniePolicy {
	p := agent.DefaultMeaniePolicy
	if c.Width > 0 {
		p.Width = int8(c.Width)
	}
	if c.Speed > 0 {
		p.Speed = int8(c.Speed)
	}
	if c.Retries > 0 {
		p.Retries = c.Retries
	}
	if c.TurnThreshold != nil {
		p.TurnThreshold = *c.TurnThreshold
	}
	if strings.EqualFold(c.OnThreshold, "random") {
		p.OnThreshold = agent.Random
	}
	return p
}

func spawnMeanies(spawns []config.SpawnConfig) []agent.Meanie {
	out := make([]agent.Meanie, 0, len(spawns))
	for _, s := range spawns {
		o := core.Clockwise
		if strings.EqualFold(s.Sense, "widdershins") {
			o = core.Widdershins
		}
		out = append(out, agent.Meanie{
			Pos:         core.Pos(uint8(s.X), uint8(s.Y)),
			Vel:         core.D(int8(s.DX), int8(s.DY)),
			Orientation: o,
		})
	}
	return out
}
