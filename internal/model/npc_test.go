package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNpc_KillAndRevive(t *testing.T) {
	npc := &Npc{Index: 3, ID: 1000, HP: 10, MaxHP: 57, Alive: true}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	npc.Kill(at)
	assert.False(t, npc.Alive)
	assert.Zero(t, npc.HP)
	assert.Equal(t, at, npc.DeadSince)

	npc.Revive(NewCoords(4, 5), DirectionLeft)
	assert.True(t, npc.Alive)
	assert.Equal(t, int32(57), npc.HP)
	assert.Equal(t, NewCoords(4, 5), npc.Coords)
	assert.Equal(t, DirectionLeft, npc.Direction)
}

func TestNpc_RespawnDue(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	npc := &Npc{DeadSince: at}

	tests := []struct {
		name  string
		now   time.Time
		delay time.Duration
		want  bool
	}{
		{"before delay", at.Add(4 * time.Second), 5 * time.Second, false},
		{"exactly at delay", at.Add(5 * time.Second), 5 * time.Second, true},
		{"zero delay", at, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, npc.RespawnDue(tt.now, tt.delay))
		})
	}

	npc.Alive = true
	assert.False(t, npc.RespawnDue(at.Add(time.Hour), 0), "alive npcs never respawn")
}

func TestNpc_MapInfo(t *testing.T) {
	npc := &Npc{Index: 7, ID: 170, Coords: NewCoords(1, 2), Direction: DirectionUp, HP: 3}

	assert.Equal(t, NpcMapInfo{Index: 7, ID: 170, Coords: NewCoords(1, 2), Direction: DirectionUp}, npc.MapInfo())
}
