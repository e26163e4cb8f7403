package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/zonesrv/internal/model"
)

// NpcRepository reads and writes npc templates.
type NpcRepository struct {
	pool *pgxpool.Pool
}

// NewNpcRepository creates a new NPC repository
func NewNpcRepository(pool *pgxpool.Pool) *NpcRepository {
	return &NpcRepository{pool: pool}
}

// LoadAllTemplates loads all NPC templates
func (r *NpcRepository) LoadAllTemplates(ctx context.Context) ([]*model.NpcTemplate, error) {
	query := `
		SELECT template_id, name, level, max_hp, boss, behave
		FROM npc_templates
		ORDER BY template_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all npc templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*model.NpcTemplate, 0, 100)
	for rows.Next() {
		var t model.NpcTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Level, &t.MaxHP, &t.Boss, &t.Behave); err != nil {
			return nil, fmt.Errorf("scanning npc template row: %w", err)
		}
		templates = append(templates, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating npc template rows: %w", err)
	}

	return templates, nil
}

// Create inserts a new npc template.
func (r *NpcRepository) Create(ctx context.Context, t *model.NpcTemplate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO npc_templates (template_id, name, level, max_hp, boss, behave)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.Name, t.Level, t.MaxHP, t.Boss, t.Behave)
	if err != nil {
		return fmt.Errorf("creating npc template %d: %w", t.ID, err)
	}
	return nil
}
