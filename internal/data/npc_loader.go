package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/zonesrv/internal/model"
)

// NpcRepository loads the static npc database.
type NpcRepository interface {
	LoadAllTemplates(ctx context.Context) ([]*model.NpcTemplate, error)
}

// NpcTable is a read-only registry of all npc templates.
// Built once at startup and shared by every zone without locking.
type NpcTable struct {
	byID map[int32]*model.NpcTemplate
}

// NewNpcTable builds a table from templates. Later duplicates win.
func NewNpcTable(templates []*model.NpcTemplate) *NpcTable {
	t := &NpcTable{byID: make(map[int32]*model.NpcTemplate, len(templates))}
	for _, tpl := range templates {
		t.byID[tpl.ID] = tpl
	}
	return t
}

// LoadNpcTable reads every template from repo.
func LoadNpcTable(ctx context.Context, repo NpcRepository) (*NpcTable, error) {
	templates, err := repo.LoadAllTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading npc templates: %w", err)
	}

	table := NewNpcTable(templates)
	slog.Info("loaded NPC templates", "count", table.Len())
	return table, nil
}

// NpcTemplate returns the template with the given id.
func (t *NpcTable) NpcTemplate(id int32) (*model.NpcTemplate, bool) {
	if t == nil {
		return nil, false
	}
	tpl, ok := t.byID[id]
	return tpl, ok
}

// Len returns the number of templates.
func (t *NpcTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}
