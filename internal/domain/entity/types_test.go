package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestStage() *Stage {
	// 3x3 stage, row 0 is the floor
	tiles := [][]Tile{
		{{Type: TileGround, Solid: true}, {Type: TileGround, Solid: true}, {Type: TileGround, Solid: true}},
		{{Type: TileEmpty}, {Type: TileHazard, Tag: "Hazard"}, {Type: TileSecret, Solid: true}},
		{{Type: TileEmpty}, {Type: TileEmpty}, {Type: TileSecret, Solid: true}},
	}

	return &Stage{
		ID:     "test",
		Width:  3,
		Height: 3,
		Tiles:  tiles,
		Spawn:  Vec2{0.5, 1.5},
	}
}

func TestStage_GetTile(t *testing.T) {
	stage := createTestStage()

	tests := []struct {
		name      string
		tx, ty    int
		wantType  TileType
		wantSolid bool
	}{
		{"floor", 0, 0, TileGround, true},
		{"empty", 0, 1, TileEmpty, false},
		{"spikes", 1, 1, TileHazard, false},
		{"secret", 2, 2, TileSecret, true},
		{"out of bounds left", -1, 1, TileGround, true},
		{"out of bounds top", 1, 3, TileGround, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := stage.GetTile(tt.tx, tt.ty)
			assert.Equal(t, tt.wantType, tile.Type)
			assert.Equal(t, tt.wantSolid, tile.Solid)
		})
	}
}

func TestStage_ClearTiles(t *testing.T) {
	stage := createTestStage()

	n := stage.ClearTiles(TileSecret)

	assert.Equal(t, 2, n)
	assert.Equal(t, Tile{}, stage.GetTile(2, 1))
	assert.Equal(t, Tile{}, stage.GetTile(2, 2))
	assert.True(t, stage.GetTile(2, 0).Solid, "ground is untouched")
	assert.Equal(t, 0, stage.ClearTiles(TileSecret))
}
