package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpawnType(t *testing.T) {
	assert.True(t, SpawnTypeFixed.Fixed())
	assert.False(t, SpawnType(0).Fixed())
	assert.False(t, SpawnType(3).Fixed())

	// Facing comes from the two low bits.
	assert.Equal(t, DirectionRight, SpawnTypeFixed.FixedDirection())
	assert.Equal(t, DirectionDown, SpawnType(4).FixedDirection())
	assert.Equal(t, DirectionUp, SpawnType(2).FixedDirection())
}

func TestSpawnTemplate_Delay(t *testing.T) {
	s := SpawnTemplate{RespawnDelay: 90}
	assert.Equal(t, 90*time.Second, s.Delay())
}
