package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ZoneServer holds all configuration for the zone server.
type ZoneServer struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Database
	Database DatabaseConfig `yaml:"database"`

	World   WorldConfig   `yaml:"world"`
	Npcs    NpcsConfig    `yaml:"npcs"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// WorldConfig controls zone actors.
type WorldConfig struct {
	// SeeDistance is the interest radius in tiles.
	SeeDistance int32 `yaml:"see_distance"`

	// CallTimeout bounds every call from a zone to a player session.
	CallTimeout time.Duration `yaml:"call_timeout"`

	// BroadcastFanout limits concurrent session calls per command.
	BroadcastFanout int `yaml:"broadcast_fanout"`

	// ZonesDir, if set, loads zone templates from YAML files instead of the database.
	ZonesDir string `yaml:"zones_dir"`
}

// NpcsConfig controls the respawn engine.
type NpcsConfig struct {
	// InstantSpawn makes every creature spawn on the first tick after startup.
	InstantSpawn bool          `yaml:"instant_spawn"`
	RespawnTick  time.Duration `yaml:"respawn_tick"`
}

// MetricsConfig controls the Prometheus endpoint. Empty Listen disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultZoneServer returns ZoneServer config with sensible defaults.
func DefaultZoneServer() ZoneServer {
	return ZoneServer{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "zonesrv",
			Password: "zonesrv",
			DBName:   "zonesrv",
			SSLMode:  "disable",
		},
		World: WorldConfig{
			SeeDistance:     11,
			CallTimeout:     2 * time.Second,
			BroadcastFanout: 16,
		},
		Npcs: NpcsConfig{
			InstantSpawn: false,
			RespawnTick:  time.Second,
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9108",
		},
	}
}

// LoadZoneServer loads zone server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadZoneServer(path string) (ZoneServer, error) {
	cfg := DefaultZoneServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the zone actors cannot run with.
func (c ZoneServer) Validate() error {
	if c.World.SeeDistance <= 0 {
		return fmt.Errorf("world.see_distance must be positive, got %d", c.World.SeeDistance)
	}
	if c.World.CallTimeout <= 0 {
		return fmt.Errorf("world.call_timeout must be positive, got %s", c.World.CallTimeout)
	}
	if c.World.BroadcastFanout <= 0 {
		return fmt.Errorf("world.broadcast_fanout must be positive, got %d", c.World.BroadcastFanout)
	}
	if c.Npcs.RespawnTick <= 0 {
		return fmt.Errorf("npcs.respawn_tick must be positive, got %s", c.Npcs.RespawnTick)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c ZoneServer) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
