package model

// Coords is a tile position inside a zone.
type Coords struct {
	X int32 `msgpack:"x" yaml:"x"`
	Y int32 `msgpack:"y" yaml:"y"`
}

// NewCoords creates Coords with the given tile position.
func NewCoords(x, y int32) Coords {
	return Coords{X: x, Y: y}
}

// Step returns the adjacent tile in direction d.
// Unknown directions leave the coordinates unchanged.
func (c Coords) Step(d Direction) Coords {
	switch d {
	case DirectionDown:
		c.Y++
	case DirectionLeft:
		c.X--
	case DirectionUp:
		c.Y--
	case DirectionRight:
		c.X++
	}
	return c
}

// Distance returns the Manhattan distance between two tiles.
func (c Coords) Distance(other Coords) int32 {
	return abs32(c.X-other.X) + abs32(c.Y-other.Y)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is a cardinal facing. Values match the client protocol.
type Direction uint8

const (
	DirectionDown Direction = iota
	DirectionLeft
	DirectionUp
	DirectionRight
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= DirectionRight
}

func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}
