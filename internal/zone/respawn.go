package zone

import (
	"context"
	"time"

	"github.com/udisondev/zonesrv/internal/model"
)

const (
	// maxPlacementAttempts bounds the search for a free tile. After the
	// bound the last candidate is taken as is: a badly walled map gets odd
	// placement rather than creatures that never come back.
	maxPlacementAttempts = 200

	// occupancyAttempts is how many attempts also require a free tile.
	occupancyAttempts = 100

	// wanderRadius is the per-axis jitter around the spawn origin.
	wanderRadius = 2

	// instantSpawnBacklog backdates initial deaths so every delay has elapsed.
	instantSpawnBacklog = 24 * time.Hour
)

var randomDirections = [...]model.Direction{
	model.DirectionDown,
	model.DirectionLeft,
	model.DirectionUp,
	model.DirectionRight,
}

// populate creates the dead instances of every spawn. Runs once, on the first tick.
func (z *Zone) populate(now time.Time) {
	z.populated = true

	deadSince := now
	if z.cfg.InstantSpawn {
		deadSince = now.Add(-instantSpawnBacklog)
	}

	for spawnIndex, spawn := range z.tpl.Spawns {
		tpl, ok := z.lookupNpc(spawn.NpcID)
		if !ok {
			z.log.Error("spawn references unknown npc",
				"npc_id", spawn.NpcID,
				"coords", spawn.Coords,
				"spawn", spawnIndex)
			continue
		}

		for range spawn.Amount {
			z.npcs = append(z.npcs, &model.Npc{
				Index:      int32(len(z.npcs)),
				ID:         spawn.NpcID,
				SpawnIndex: spawnIndex,
				Coords:     spawn.Coords,
				Direction:  model.DirectionDown,
				MaxHP:      tpl.MaxHP,
				DeadSince:  deadSince,
			})
		}
	}

	z.log.Info("npcs populated", "count", len(z.npcs), "instant", z.cfg.InstantSpawn)
}

func (z *Zone) lookupNpc(id int32) (*model.NpcTemplate, bool) {
	if z.cfg.Npcs == nil {
		return nil, false
	}
	return z.cfg.Npcs.NpcTemplate(id)
}

// spawnNpcs revives every dead instance whose respawn delay has elapsed.
// Character positions are read only when at least one instance is due.
func (z *Zone) spawnNpcs(ctx context.Context, now time.Time) {
	if !z.populated {
		z.populate(now)
	}

	var occupied map[model.Coords]struct{}
	revived := 0

	for _, npc := range z.npcs {
		spawn := z.tpl.Spawns[npc.SpawnIndex]
		if !npc.RespawnDue(now, spawn.Delay()) {
			continue
		}
		if occupied == nil {
			occupied = z.occupiedTiles(ctx)
		}

		coords, direction, valid := z.placeNpc(spawn, occupied)
		npc.Revive(coords, direction)
		occupied[coords] = struct{}{}
		revived++

		if !valid {
			z.log.Warn("npc placed without a valid tile",
				"index", npc.Index,
				"npc_id", npc.ID,
				"origin", spawn.Coords,
				"coords", coords)
		}
	}

	if revived > 0 {
		z.metrics.respawned(revived)
		z.log.Debug("npcs respawned", "count", revived)
	}
	z.metrics.aliveNpcs(z.aliveNpcCount())
}

// placeNpc picks the revival tile and facing of one instance. valid is
// false when no attempt passed the checks and the last candidate was taken.
func (z *Zone) placeNpc(spawn model.SpawnTemplate, occupied map[model.Coords]struct{}) (coords model.Coords, direction model.Direction, valid bool) {
	if spawn.SpawnType.Fixed() {
		return spawn.Coords, spawn.SpawnType.FixedDirection(), true
	}

	var candidate model.Coords
	for attempt := 1; attempt <= maxPlacementAttempts; attempt++ {
		candidate = z.jitter(spawn.Coords)
		if !z.walkableForNpc(candidate) {
			continue
		}
		if _, taken := occupied[candidate]; taken && attempt <= occupancyAttempts {
			continue
		}
		return candidate, z.randomDirection(), true
	}
	return candidate, z.randomDirection(), false
}

// jitter samples a tile within wanderRadius of origin, clamped to the map.
func (z *Zone) jitter(origin model.Coords) model.Coords {
	c := model.Coords{
		X: origin.X + z.rng.Int32N(2*wanderRadius+1) - wanderRadius,
		Y: origin.Y + z.rng.Int32N(2*wanderRadius+1) - wanderRadius,
	}
	return z.tpl.Clamp(c)
}

func (z *Zone) randomDirection() model.Direction {
	return randomDirections[z.rng.IntN(len(randomDirections))]
}

func (z *Zone) aliveNpcCount() int {
	n := 0
	for _, npc := range z.npcs {
		if npc.Alive {
			n++
		}
	}
	return n
}
