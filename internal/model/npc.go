package model

import "time"

// Npc is one creature instance spawned from a zone spawn template.
// Index is stable for the instance lifetime: it survives death and respawn,
// so clients can reconcile their local view against it.
//
// Npc is owned by the zone goroutine and carries no locking.
type Npc struct {
	Index      int32
	ID         int32 // npc template id
	SpawnIndex int
	Coords     Coords
	Direction  Direction
	HP         int32
	MaxHP      int32
	Alive      bool
	DeadSince  time.Time
}

// Kill marks the instance dead at the given time.
// Coordinates are kept until the next respawn.
func (n *Npc) Kill(at time.Time) {
	n.Alive = false
	n.HP = 0
	n.DeadSince = at
}

// Revive brings the instance back at coords with full health.
func (n *Npc) Revive(coords Coords, direction Direction) {
	n.Alive = true
	n.HP = n.MaxHP
	n.Coords = coords
	n.Direction = direction
}

// RespawnDue reports whether a dead instance may be revived at now.
func (n *Npc) RespawnDue(now time.Time, delay time.Duration) bool {
	if n.Alive {
		return false
	}
	return now.Sub(n.DeadSince) >= delay
}

// MapInfo returns the public snapshot sent to clients.
func (n *Npc) MapInfo() NpcMapInfo {
	return NpcMapInfo{
		Index:     n.Index,
		ID:        n.ID,
		Coords:    n.Coords,
		Direction: n.Direction,
	}
}
