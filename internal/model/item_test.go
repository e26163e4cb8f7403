package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_MapInfo(t *testing.T) {
	item := &Item{UID: 11, ID: 57, Amount: 1000, Coords: NewCoords(8, 9)}

	assert.Equal(t, ItemMapInfo{UID: 11, ID: 57, Coords: NewCoords(8, 9), Amount: 1000}, item.MapInfo())
}

func TestMapInfo_Empty(t *testing.T) {
	assert.True(t, MapInfo{}.Empty())
	assert.False(t, MapInfo{Npcs: []NpcMapInfo{{Index: 1}}}.Empty())
}
