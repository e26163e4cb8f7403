package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/zonesrv/internal/db/migrations"
)

// RunMigrations applies the embedded migrations using the connection
// settings of pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB, err := sql.Open("pgx", stdlib.RegisterConnConfig(pool.Config().ConnConfig))
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
