package player

import "github.com/udisondev/zonesrv/internal/model"

// Character is the live state of a connected character.
// Owned by its Session; never shared across goroutines.
type Character struct {
	ID        int32
	Name      string
	MapID     int32
	Coords    model.Coords
	Direction model.Direction
	ClassID   int32
	GuildTag  string
	Level     int32
	Gender    uint8
	HairStyle uint8
	HairColor uint8
	Skin      uint8
	HP        int32
	MaxHP     int32
	TP        int32
	MaxTP     int32
	Sitting   bool
	Invisible bool
}

// MapInfo returns the public snapshot shown to other characters.
func (c *Character) MapInfo() model.CharacterMapInfo {
	return model.CharacterMapInfo{
		Name:      c.Name,
		PlayerID:  c.ID,
		MapID:     c.MapID,
		Coords:    c.Coords,
		Direction: c.Direction,
		ClassID:   c.ClassID,
		GuildTag:  c.GuildTag,
		Level:     c.Level,
		Gender:    c.Gender,
		HairStyle: c.HairStyle,
		HairColor: c.HairColor,
		Skin:      c.Skin,
		HP:        c.HP,
		MaxHP:     c.MaxHP,
		TP:        c.TP,
		MaxTP:     c.MaxTP,
		Sitting:   c.Sitting,
		Invisible: c.Invisible,
	}
}
