package entity

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileGround
	TileHazard
	TileSecret
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
	Tag   Tag
}

// Stage is a grid of unit tiles. Tiles[y][x], y grows upward.
type Stage struct {
	ID          string
	Width       int
	Height      int
	Tiles       [][]Tile
	Spawn       Vec2
	Checkpoints []Vec2
	Hazards     []HazardZone
	Pickups     []PickupSpawn
	SecretWalls []Rect
}

// HazardZone is a tagged region that respawns the player
type HazardZone struct {
	Tag  Tag
	Rect Rect
}

// PickupSpawn places a pickup of the given kind
type PickupSpawn struct {
	Kind string
	Pos  Vec2
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileGround, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// ClearTiles empties every tile of type t and returns how many were cleared
func (s *Stage) ClearTiles(t TileType) int {
	n := 0
	for y := range s.Tiles {
		for x := range s.Tiles[y] {
			if s.Tiles[y][x].Type == t {
				s.Tiles[y][x] = Tile{}
				n++
			}
		}
	}
	return n
}
