package system

import (
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Collision rows run top to bottom, so the last row becomes y = 0.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	height := len(cfg.Layers.Collision)
	width := 0
	for _, row := range cfg.Layers.Collision {
		if len(row) > width {
			width = len(row)
		}
	}

	tiles := make([][]entity.Tile, height)
	for r, row := range cfg.Layers.Collision {
		y := height - 1 - r
		tiles[y] = make([]entity.Tile, width)
		for x, char := range row {
			if x >= width {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "ground":
				tileType = entity.TileGround
			case "hazard":
				tileType = entity.TileHazard
			case "secret":
				tileType = entity.TileSecret
			default:
				tileType = entity.TileEmpty
			}

			tiles[y][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
				Tag:   entity.Tag(mapping.Tag),
			}
		}
	}

	stage := &entity.Stage{
		ID:     cfg.ID,
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Spawn:  entity.Vec2{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
	}
	for _, c := range cfg.Checkpoints {
		stage.Checkpoints = append(stage.Checkpoints, entity.Vec2{X: c.X, Y: c.Y})
	}
	for _, h := range cfg.Hazards {
		stage.Hazards = append(stage.Hazards, entity.HazardZone{Tag: entity.Tag(h.Tag), Rect: toRect(h.Rect)})
	}
	for _, p := range cfg.Pickups {
		stage.Pickups = append(stage.Pickups, entity.PickupSpawn{Kind: p.Type, Pos: entity.Vec2{X: p.X, Y: p.Y}})
	}
	for _, r := range cfg.SecretWalls {
		stage.SecretWalls = append(stage.SecretWalls, toRect(r))
	}
	return stage
}

func toRect(r config.RectConfig) entity.Rect {
	return entity.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
