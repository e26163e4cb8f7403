package model

// CharacterMapInfo is the public snapshot of a character as other clients see it.
// Produced by the player session; the zone only relays it.
type CharacterMapInfo struct {
	Name      string    `msgpack:"name"`
	PlayerID  int32     `msgpack:"player_id"`
	MapID     int32     `msgpack:"map_id"`
	Coords    Coords    `msgpack:"coords"`
	Direction Direction `msgpack:"direction"`
	ClassID   int32     `msgpack:"class_id"`
	GuildTag  string    `msgpack:"guild_tag"`
	Level     int32     `msgpack:"level"`
	Gender    uint8     `msgpack:"gender"`
	HairStyle uint8     `msgpack:"hair_style"`
	HairColor uint8     `msgpack:"hair_color"`
	Skin      uint8     `msgpack:"skin"`
	HP        int32     `msgpack:"hp"`
	MaxHP     int32     `msgpack:"max_hp"`
	TP        int32     `msgpack:"tp"`
	MaxTP     int32     `msgpack:"max_tp"`
	Sitting   bool      `msgpack:"sitting"`
	Invisible bool      `msgpack:"invisible"`
}

// NpcMapInfo is the public snapshot of a creature instance.
type NpcMapInfo struct {
	Index     int32     `msgpack:"index"`
	ID        int32     `msgpack:"id"`
	Coords    Coords    `msgpack:"coords"`
	Direction Direction `msgpack:"direction"`
}

// ItemMapInfo is the public snapshot of a ground item.
type ItemMapInfo struct {
	UID    int32  `msgpack:"uid"`
	ID     int32  `msgpack:"id"`
	Coords Coords `msgpack:"coords"`
	Amount int32  `msgpack:"amount"`
}

// NearbyInfo is everything an observer can see around itself.
type NearbyInfo struct {
	Items      []ItemMapInfo      `msgpack:"items"`
	Npcs       []NpcMapInfo       `msgpack:"npcs"`
	Characters []CharacterMapInfo `msgpack:"characters"`
}

// MapInfo answers a client's explicit request for specific characters and npcs.
type MapInfo struct {
	Characters []CharacterMapInfo `msgpack:"characters"`
	Npcs       []NpcMapInfo       `msgpack:"npcs"`
}

// Empty reports whether the reply carries nothing worth sending.
func (m MapInfo) Empty() bool {
	return len(m.Characters) == 0 && len(m.Npcs) == 0
}
