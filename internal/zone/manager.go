package zone

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
)

// TemplateRepository provides the static zone templates.
type TemplateRepository interface {
	LoadAll(ctx context.Context) ([]*model.ZoneTemplate, error)
}

// Manager is the world directory: it owns one Zone per template and
// routes player movement between them.
type Manager struct {
	cfg Config

	mu    sync.RWMutex
	zones map[int32]*Zone
}

// NewManager creates an empty manager. Zones created by it share cfg.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:   cfg,
		zones: make(map[int32]*Zone),
	}
}

// LoadZones creates a zone for every template of repo.
func (m *Manager) LoadZones(ctx context.Context, repo TemplateRepository) error {
	templates, err := repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading zone templates: %w", err)
	}

	for _, tpl := range templates {
		if _, err := m.Add(tpl); err != nil {
			return err
		}
	}

	slog.Info("zones loaded", "count", len(templates))
	return nil
}

// Add creates the zone for tpl. Must be called before Run.
func (m *Manager) Add(tpl *model.ZoneTemplate) (*Zone, error) {
	z, err := New(tpl, m.cfg)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.zones[tpl.ID]; exists {
		return nil, fmt.Errorf("zone %d already loaded", tpl.ID)
	}
	m.zones[tpl.ID] = z
	return z, nil
}

// Zone returns the zone with the given id.
func (m *Manager) Zone(id int32) (*Zone, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z, ok := m.zones[id]
	return z, ok
}

// IDs returns the loaded zone ids in ascending order.
func (m *Manager) IDs() []int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int32, 0, len(m.zones))
	for id := range m.zones {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of zones.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)
}

// Run runs every zone until ctx is canceled.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.RLock()
	zones := make([]*Zone, 0, len(m.zones))
	for _, z := range m.zones {
		zones = append(zones, z)
	}
	m.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, z := range zones {
		g.Go(func() error {
			return z.Run(gctx)
		})
	}

	slog.Info("zones running", "count", len(zones))
	return g.Wait()
}

func (m *Manager) lookup(id int32) (*Zone, error) {
	z, ok := m.Zone(id)
	if !ok {
		return nil, fmt.Errorf("zone %d: %w", id, ErrZoneNotFound)
	}
	return z, nil
}

// Enter puts a player into zone mapID.
func (m *Manager) Enter(mapID int32, handle PlayerHandle) error {
	z, err := m.lookup(mapID)
	if err != nil {
		return err
	}
	return z.Enter(handle.PlayerID(), handle)
}

// Leave removes a player from zone mapID.
func (m *Manager) Leave(ctx context.Context, mapID, playerID int32, warpAnimation *protocol.WarpAnimation) error {
	z, err := m.lookup(mapID)
	if err != nil {
		return err
	}
	return z.Leave(ctx, playerID, warpAnimation)
}

// DropPlayer force-removes a disconnected player from zone mapID.
func (m *Manager) DropPlayer(mapID, playerID int32, coords model.Coords) error {
	z, err := m.lookup(mapID)
	if err != nil {
		return err
	}
	return z.DropPlayer(playerID, coords)
}

// MovableHandle is a PlayerHandle whose session position can be changed by the server.
type MovableHandle interface {
	PlayerHandle
	Relocate(ctx context.Context, mapID int32, coords model.Coords) error
}

// Warp moves a player from zone from to coords dest of zone to. The
// remove notice in the source zone carries warpAnimation. When the session
// cannot be relocated the player re-enters the source zone.
func (m *Manager) Warp(ctx context.Context, handle MovableHandle, from, to int32, dest model.Coords, warpAnimation *protocol.WarpAnimation) error {
	src, err := m.lookup(from)
	if err != nil {
		return err
	}
	dst, err := m.lookup(to)
	if err != nil {
		return err
	}
	if !dst.Template().InBounds(dest) {
		return fmt.Errorf("warp to zone %d at %v: %w", to, dest, ErrBlocked)
	}

	playerID := handle.PlayerID()
	if err := src.Leave(ctx, playerID, warpAnimation); err != nil {
		return fmt.Errorf("leaving zone %d: %w", from, err)
	}
	if err := handle.Relocate(ctx, to, dest); err != nil {
		// The session still stands in the source zone, put it back there.
		if enterErr := src.Enter(playerID, handle); enterErr != nil {
			slog.Error("player left without a zone",
				"player", playerID,
				"zone", from,
				"error", enterErr)
		}
		return fmt.Errorf("relocating player %d: %w", playerID, err)
	}
	return dst.Enter(playerID, handle)
}
