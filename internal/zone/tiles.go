package zone

import (
	"context"

	"github.com/udisondev/zonesrv/internal/model"
)

// walkableForNpc reports whether a creature may stand on c.
func (z *Zone) walkableForNpc(c model.Coords) bool {
	if !z.tpl.InBounds(c) {
		return false
	}
	spec, ok := z.tiles[c]
	return !ok || !spec.BlocksNpc()
}

// walkableForPlayer reports whether a character may step onto c.
func (z *Zone) walkableForPlayer(c model.Coords) bool {
	if !z.tpl.InBounds(c) {
		return false
	}
	spec, ok := z.tiles[c]
	return !ok || !spec.BlocksPlayer()
}

// occupiedTiles returns tiles held by alive creatures and by characters.
// Characters whose position cannot be read do not block any tile.
func (z *Zone) occupiedTiles(ctx context.Context) map[model.Coords]struct{} {
	occupied := make(map[model.Coords]struct{}, len(z.npcs)+len(z.characters))
	for _, npc := range z.npcs {
		if npc.Alive {
			occupied[npc.Coords] = struct{}{}
		}
	}
	if len(z.characters) > 0 {
		for _, c := range queryAll(ctx, z, "coords", z.handles(0), handleCoords) {
			occupied[c] = struct{}{}
		}
	}
	return occupied
}
