package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/zonesrv/internal/data"
	"github.com/udisondev/zonesrv/internal/model"
)

// ZoneRepository reads and writes zone templates with their spawns and tiles.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository creates a new zone repository.
func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

// LoadAll loads every zone template ordered by id. Returned templates are sealed.
func (r *ZoneRepository) LoadAll(ctx context.Context) ([]*model.ZoneTemplate, error) {
	rows, err := r.pool.Query(ctx, `SELECT zone_id, name, width, height FROM zones ORDER BY zone_id`)
	if err != nil {
		return nil, fmt.Errorf("loading zones: %w", err)
	}

	var (
		zones []*model.ZoneTemplate
		byID  = make(map[int32]*model.ZoneTemplate)
	)
	for rows.Next() {
		var z model.ZoneTemplate
		if err := rows.Scan(&z.ID, &z.Name, &z.Width, &z.Height); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning zone row: %w", err)
		}
		zones = append(zones, &z)
		byID[z.ID] = &z
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone rows: %w", err)
	}

	if err := r.loadSpawns(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.loadTiles(ctx, byID); err != nil {
		return nil, err
	}

	for _, z := range zones {
		if _, err := data.SealZone(z); err != nil {
			return nil, err
		}
	}
	return zones, nil
}

func (r *ZoneRepository) loadSpawns(ctx context.Context, byID map[int32]*model.ZoneTemplate) error {
	rows, err := r.pool.Query(ctx, `
		SELECT zone_id, npc_id, x, y, amount, respawn_delay, spawn_type
		FROM zone_spawns
		ORDER BY zone_id, position
	`)
	if err != nil {
		return fmt.Errorf("loading zone spawns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			zoneID    int32
			spawnType int16
			s         model.SpawnTemplate
		)
		if err := rows.Scan(&zoneID, &s.NpcID, &s.Coords.X, &s.Coords.Y, &s.Amount, &s.RespawnDelay, &spawnType); err != nil {
			return fmt.Errorf("scanning zone spawn row: %w", err)
		}
		s.SpawnType = model.SpawnType(spawnType)

		if z, ok := byID[zoneID]; ok {
			z.Spawns = append(z.Spawns, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating zone spawn rows: %w", err)
	}
	return nil
}

func (r *ZoneRepository) loadTiles(ctx context.Context, byID map[int32]*model.ZoneTemplate) error {
	rows, err := r.pool.Query(ctx, `
		SELECT zone_id, x, y, spec
		FROM zone_tiles
		ORDER BY zone_id, y, x
	`)
	if err != nil {
		return fmt.Errorf("loading zone tiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			zoneID int32
			spec   int16
			t      model.Tile
		)
		if err := rows.Scan(&zoneID, &t.Coords.X, &t.Coords.Y, &spec); err != nil {
			return fmt.Errorf("scanning zone tile row: %w", err)
		}
		t.Spec = model.TileSpec(spec)

		if z, ok := byID[zoneID]; ok {
			z.Tiles = append(z.Tiles, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating zone tile rows: %w", err)
	}
	return nil
}

// Save replaces a zone template with its spawns and tiles in one transaction.
func (r *ZoneRepository) Save(ctx context.Context, z *model.ZoneTemplate) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM zones WHERE zone_id = $1`, z.ID); err != nil {
			return fmt.Errorf("deleting zone: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO zones (zone_id, name, width, height) VALUES ($1, $2, $3, $4)`,
			z.ID, z.Name, z.Width, z.Height,
		); err != nil {
			return fmt.Errorf("inserting zone: %w", err)
		}

		batch := &pgx.Batch{}
		for i, s := range z.Spawns {
			batch.Queue(`
				INSERT INTO zone_spawns (zone_id, position, npc_id, x, y, amount, respawn_delay, spawn_type)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, z.ID, i, s.NpcID, s.Coords.X, s.Coords.Y, s.Amount, s.RespawnDelay, int16(s.SpawnType))
		}
		for _, t := range z.Tiles {
			batch.Queue(`INSERT INTO zone_tiles (zone_id, x, y, spec) VALUES ($1, $2, $3, $4)`,
				z.ID, t.Coords.X, t.Coords.Y, int16(t.Spec))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting spawns and tiles: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving zone %d: %w", z.ID, err)
	}
	return nil
}
