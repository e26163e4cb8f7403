package model

// NpcTemplate is a static creature definition from the npc database.
// Loaded once at startup and never mutated afterwards.
type NpcTemplate struct {
	ID     int32
	Name   string
	Level  int32
	MaxHP  int32
	Boss   bool
	Behave int32 // 0 = passive, 1 = aggressive
}
