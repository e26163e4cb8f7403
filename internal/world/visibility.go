package world

import "github.com/udisondev/zonesrv/internal/model"

// DefaultSeeDistance is the interest radius in tiles (Manhattan distance).
const DefaultSeeDistance int32 = 11

// Visibility is the single interest rule of the server.
// Every broadcast and every nearby query goes through the same InRange,
// otherwise a client could see an entity it was never told about.
type Visibility struct {
	seeDistance int32
}

// NewVisibility creates a Visibility with the given radius.
// Non-positive radius falls back to DefaultSeeDistance.
func NewVisibility(seeDistance int32) Visibility {
	if seeDistance <= 0 {
		seeDistance = DefaultSeeDistance
	}
	return Visibility{seeDistance: seeDistance}
}

// SeeDistance returns the interest radius in tiles.
func (v Visibility) SeeDistance() int32 {
	if v.seeDistance <= 0 {
		return DefaultSeeDistance
	}
	return v.seeDistance
}

// InRange reports whether b is nearby a. Symmetric by construction.
func (v Visibility) InRange(a, b model.Coords) bool {
	return a.Distance(b) <= v.SeeDistance()
}

// NearbyItems returns map info of the items visible from observer.
func (v Visibility) NearbyItems(observer model.Coords, items []*model.Item) []model.ItemMapInfo {
	nearby := make([]model.ItemMapInfo, 0, len(items))
	for _, item := range items {
		if v.InRange(observer, item.Coords) {
			nearby = append(nearby, item.MapInfo())
		}
	}
	return nearby
}

// NearbyNpcs returns map info of the alive npcs visible from observer.
// Dead instances keep their last coordinates but are never reported.
func (v Visibility) NearbyNpcs(observer model.Coords, npcs []*model.Npc) []model.NpcMapInfo {
	nearby := make([]model.NpcMapInfo, 0, len(npcs))
	for _, npc := range npcs {
		if npc.Alive && v.InRange(observer, npc.Coords) {
			nearby = append(nearby, npc.MapInfo())
		}
	}
	return nearby
}

// NearbyCharacters filters character snapshots visible from the observer.
// The observer itself is always part of the result.
func (v Visibility) NearbyCharacters(observerID int32, observer model.Coords, characters []model.CharacterMapInfo) []model.CharacterMapInfo {
	nearby := make([]model.CharacterMapInfo, 0, len(characters))
	for _, c := range characters {
		if c.PlayerID == observerID || v.InRange(observer, c.Coords) {
			nearby = append(nearby, c)
		}
	}
	return nearby
}
