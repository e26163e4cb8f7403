package model

import "time"

// SpawnType selects how a spawn places and orients its creatures.
type SpawnType uint8

// SpawnTypeFixed keeps creatures on the spawn tile with a fixed facing.
// Any other value makes them wander around the origin.
const SpawnTypeFixed SpawnType = 7

// Fixed reports whether the spawn uses the fixed-facing mode.
func (t SpawnType) Fixed() bool {
	return t == SpawnTypeFixed
}

// FixedDirection derives the facing of a fixed spawn from the low bits of its type.
func (t SpawnType) FixedDirection() Direction {
	return Direction(t & 0x03)
}

// SpawnTemplate describes where, how many and how often a creature type
// regenerates inside a zone.
type SpawnTemplate struct {
	NpcID        int32     `yaml:"npc_id" msgpack:"npc_id"`
	Coords       Coords    `yaml:"coords" msgpack:"coords"`
	Amount       int32     `yaml:"amount" msgpack:"amount"`
	RespawnDelay int32     `yaml:"respawn_delay" msgpack:"respawn_delay"` // seconds
	SpawnType    SpawnType `yaml:"spawn_type" msgpack:"spawn_type"`
}

// Delay returns the respawn delay as a duration.
func (s SpawnTemplate) Delay() time.Duration {
	return time.Duration(s.RespawnDelay) * time.Second
}
