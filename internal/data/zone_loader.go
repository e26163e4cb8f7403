package data

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/zonesrv/internal/model"
)

// YAMLZoneRepo loads zone templates from a directory of *.yaml files.
// One file per zone.
type YAMLZoneRepo struct {
	dir string
}

// NewYAMLZoneRepo creates a YAMLZoneRepo reading from dir.
func NewYAMLZoneRepo(dir string) *YAMLZoneRepo {
	return &YAMLZoneRepo{dir: dir}
}

// LoadAll parses every zone file in the directory, ordered by zone id.
func (r *YAMLZoneRepo) LoadAll(_ context.Context) ([]*model.ZoneTemplate, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("reading zones dir %s: %w", r.dir, err)
	}

	zones := make([]*model.ZoneTemplate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		tpl, err := LoadZoneFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		zones = append(zones, tpl)
	}

	slices.SortFunc(zones, func(a, b *model.ZoneTemplate) int {
		return cmp.Compare(a.ID, b.ID)
	})

	slog.Info("loaded zone templates", "count", len(zones), "dir", r.dir)
	return zones, nil
}

// LoadZoneFile parses and seals a single YAML zone template.
func LoadZoneFile(path string) (*model.ZoneTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone %s: %w", path, err)
	}

	var tpl model.ZoneTemplate
	if err := yaml.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("parsing zone %s: %w", path, err)
	}
	if tpl.Width < 0 || tpl.Height < 0 {
		return nil, fmt.Errorf("zone %s: negative dimensions %dx%d", path, tpl.Width, tpl.Height)
	}

	if _, err := SealZone(&tpl); err != nil {
		return nil, fmt.Errorf("sealing zone %s: %w", path, err)
	}
	return &tpl, nil
}
