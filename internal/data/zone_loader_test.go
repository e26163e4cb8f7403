package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonesrv/internal/model"
)

const aevenYAML = `
id: 5
name: Aeven
width: 40
height: 30
spawns:
  - npc_id: 170
    coords: {x: 10, y: 10}
    amount: 3
    respawn_delay: 5
    spawn_type: 0
  - npc_id: 1
    coords: {x: 20, y: 4}
    amount: 1
    respawn_delay: 60
    spawn_type: 7
tiles:
  - coords: {x: 0, y: 0}
    spec: 0
  - coords: {x: 11, y: 10}
    spec: 17
`

func writeZone(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestYAMLZoneRepoLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "aeven.yaml", aevenYAML)
	writeZone(t, dir, "first.yml", "id: 1\nname: First\nwidth: 8\nheight: 8\n")
	writeZone(t, dir, "README.txt", "not a zone")

	zones, err := NewYAMLZoneRepo(dir).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, int32(1), zones[0].ID)
	aeven := zones[1]
	assert.Equal(t, "Aeven", aeven.Name)
	assert.Equal(t, int32(40), aeven.Width)
	require.Len(t, aeven.Spawns, 2)
	assert.Equal(t, model.NewCoords(10, 10), aeven.Spawns[0].Coords)
	assert.Equal(t, int32(3), aeven.Spawns[0].Amount)
	assert.True(t, aeven.Spawns[1].SpawnType.Fixed())
	require.Len(t, aeven.Tiles, 2)
	assert.Equal(t, model.TileNpcBoundary, aeven.Tiles[1].Spec)

	assert.NotZero(t, aeven.Size)
	assert.NotEqual(t, [4]byte{}, aeven.Hash)
}

func TestLoadZoneFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadZoneFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	writeZone(t, dir, "bad.yaml", "id: [1, 2")
	_, err = LoadZoneFile(filepath.Join(dir, "bad.yaml"))
	assert.Error(t, err)

	writeZone(t, dir, "neg.yaml", "id: 2\nwidth: -1\nheight: 3\n")
	_, err = LoadZoneFile(filepath.Join(dir, "neg.yaml"))
	assert.Error(t, err)
}

func TestSealZoneStable(t *testing.T) {
	tpl := &model.ZoneTemplate{
		ID: 9, Width: 10, Height: 10,
		Spawns: []model.SpawnTemplate{{NpcID: 3, Coords: model.NewCoords(2, 2), Amount: 1}},
	}

	first, err := SealZone(tpl)
	require.NoError(t, err)
	hash, size := tpl.Hash, tpl.Size

	second, err := SealZone(tpl)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, hash, tpl.Hash)
	assert.Equal(t, size, tpl.Size)
	assert.Equal(t, int32(len(first)), size)

	decoded, err := DecodeZone(first)
	require.NoError(t, err)
	assert.Equal(t, tpl.Hash, decoded.Hash)
	assert.Equal(t, tpl.Spawns, decoded.Spawns)

	tpl.Spawns[0].Amount = 2
	_, err = SealZone(tpl)
	require.NoError(t, err)
	assert.NotEqual(t, hash, tpl.Hash, "hash must follow content")
}

type stubNpcRepo struct {
	templates []*model.NpcTemplate
	err       error
}

func (s stubNpcRepo) LoadAllTemplates(context.Context) ([]*model.NpcTemplate, error) {
	return s.templates, s.err
}

func TestLoadNpcTable(t *testing.T) {
	repo := stubNpcRepo{templates: []*model.NpcTemplate{
		{ID: 1, Name: "Crow", MaxHP: 10},
		{ID: 170, Name: "Sheep", MaxHP: 25},
	}}

	table, err := LoadNpcTable(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	tpl, ok := table.NpcTemplate(170)
	require.True(t, ok)
	assert.Equal(t, "Sheep", tpl.Name)

	_, ok = table.NpcTemplate(999)
	assert.False(t, ok)

	var nilTable *NpcTable
	_, ok = nilTable.NpcTemplate(1)
	assert.False(t, ok)

	_, err = LoadNpcTable(context.Background(), stubNpcRepo{err: assert.AnError})
	assert.ErrorIs(t, err, assert.AnError)
}
