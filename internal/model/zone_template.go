package model

// TileSpec is a special tile marker. Tiles without a spec are plain floor.
type TileSpec uint8

const (
	TileWall           TileSpec = 0
	TileChairDown      TileSpec = 1
	TileChairLeft      TileSpec = 2
	TileChairRight     TileSpec = 3
	TileChairUp        TileSpec = 4
	TileChairDownRight TileSpec = 5
	TileChairUpLeft    TileSpec = 6
	TileChairAll       TileSpec = 7
	TileChest          TileSpec = 9
	TileBankVault      TileSpec = 16
	TileNpcBoundary    TileSpec = 17
	TileMapEdge        TileSpec = 18
	TileFakeWall       TileSpec = 19
	TileBoard1         TileSpec = 20
	TileBoard8         TileSpec = 27
	TileJukebox        TileSpec = 28
	TileJump           TileSpec = 29
	TileWater          TileSpec = 30
	TileArena          TileSpec = 32
	TileSpikes         TileSpec = 35
)

// BlocksPlayer reports whether a character may not stand on the tile.
func (s TileSpec) BlocksPlayer() bool {
	switch {
	case s == TileWall, s == TileChest, s == TileBankVault, s == TileMapEdge, s == TileJukebox:
		return true
	case s >= TileChairDown && s <= TileChairAll:
		return true
	case s >= TileBoard1 && s <= TileBoard8:
		return true
	}
	return false
}

// BlocksNpc reports whether a creature may not stand on the tile.
func (s TileSpec) BlocksNpc() bool {
	return s == TileNpcBoundary || s.BlocksPlayer()
}

// Tile is a single special tile of a zone.
type Tile struct {
	Coords Coords   `yaml:"coords" msgpack:"coords"`
	Spec   TileSpec `yaml:"spec" msgpack:"spec"`
}

// ZoneTemplate is the immutable static description of a zone.
// Width and Height are the maximum tile coordinates, inclusive.
// Hash and Size are derived from the serialized form and are not part of it.
type ZoneTemplate struct {
	ID     int32           `yaml:"id" msgpack:"id"`
	Name   string          `yaml:"name" msgpack:"name"`
	Width  int32           `yaml:"width" msgpack:"width"`
	Height int32           `yaml:"height" msgpack:"height"`
	Spawns []SpawnTemplate `yaml:"spawns" msgpack:"spawns"`
	Tiles  []Tile          `yaml:"tiles" msgpack:"tiles"`

	Hash [4]byte `yaml:"-" msgpack:"-"`
	Size int32   `yaml:"-" msgpack:"-"`
}

// InBounds reports whether c lies inside the zone.
func (t *ZoneTemplate) InBounds(c Coords) bool {
	return c.X >= 0 && c.Y >= 0 && c.X <= t.Width && c.Y <= t.Height
}

// Clamp pulls c inside the zone bounds.
func (t *ZoneTemplate) Clamp(c Coords) Coords {
	c.X = max(0, min(c.X, t.Width))
	c.Y = max(0, min(c.Y, t.Height))
	return c
}
