package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadZoneServerMissingFile(t *testing.T) {
	cfg, err := LoadZoneServer(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultZoneServer(), cfg)
}

func TestLoadZoneServerOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoneserver.yaml")
	body := `
log_level: debug
world:
  see_distance: 14
  call_timeout: 500ms
npcs:
  instant_spawn: true
  respawn_tick: 250ms
database:
  host: db
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadZoneServer(path)
	require.NoError(t, err)

	assert.Equal(t, int32(14), cfg.World.SeeDistance)
	assert.Equal(t, 500*time.Millisecond, cfg.World.CallTimeout)
	assert.Equal(t, 16, cfg.World.BroadcastFanout, "untouched keys keep defaults")
	assert.True(t, cfg.Npcs.InstantSpawn)
	assert.Equal(t, 250*time.Millisecond, cfg.Npcs.RespawnTick)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "postgres://zonesrv:zonesrv@db:5432/zonesrv?sslmode=disable", cfg.Database.DSN())
}

func TestLoadZoneServerInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoneserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  see_distance: 0\n"), 0o600))

	_, err := LoadZoneServer(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("world: [oops"), 0o600))
	_, err = LoadZoneServer(path)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultZoneServer()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	cfg.LogLevel = "WARN"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())

	cfg.LogLevel = "error"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())

	cfg.LogLevel = "verbose"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
