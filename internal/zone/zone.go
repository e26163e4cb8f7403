package zone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/udisondev/zonesrv/internal/data"
	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
	"github.com/udisondev/zonesrv/internal/world"
)

// Default actor settings, overridden by Config.
const (
	defaultCallTimeout = 2 * time.Second
	defaultFanout      = 16
	defaultRespawnTick = time.Second
)

// PlayerHandle is the zone's only view of a player session.
// Every call may fail or stall: the zone bounds them with its call timeout
// and treats failures as "skip this player". Send never blocks.
type PlayerHandle interface {
	PlayerID() int32
	Send(family protocol.Family, action protocol.Action, payload []byte)
	Coords(ctx context.Context) (model.Coords, error)
	CharacterMapInfo(ctx context.Context) (model.CharacterMapInfo, error)
}

// NpcDatabase resolves creature types referenced by spawn templates.
type NpcDatabase interface {
	NpcTemplate(id int32) (*model.NpcTemplate, bool)
}

// Config holds zone actor settings shared by all zones of a process.
type Config struct {
	Visibility   world.Visibility
	CallTimeout  time.Duration
	Fanout       int
	RespawnTick  time.Duration
	InstantSpawn bool
	Npcs         NpcDatabase
	Metrics      *Metrics

	// Now and Rand are replaceable for tests.
	Now  func() time.Time
	Rand *rand.Rand
}

func (c Config) withDefaults() Config {
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}
	if c.Fanout <= 0 {
		c.Fanout = defaultFanout
	}
	if c.RespawnTick <= 0 {
		c.RespawnTick = defaultRespawnTick
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Zone is the actor owning one map: its creatures, ground items and the
// handles of the characters standing in it. All state below mailbox is
// touched only by the Run goroutine.
type Zone struct {
	id      int32
	tpl     *model.ZoneTemplate
	encoded []byte
	cfg     Config
	log     *slog.Logger
	metrics zoneMetrics

	mailbox *mailbox
	done    chan struct{}
	running atomic.Bool

	rng        *rand.Rand
	tiles      map[model.Coords]model.TileSpec
	npcs       []*model.Npc
	populated  bool
	items      []*model.Item
	characters map[int32]PlayerHandle
}

// New creates a zone for tpl. The template is sealed (hash/size computed) if needed.
func New(tpl *model.ZoneTemplate, cfg Config) (*Zone, error) {
	if tpl == nil {
		return nil, errors.New("creating zone: nil template")
	}

	encoded, err := data.SealZone(tpl)
	if err != nil {
		return nil, fmt.Errorf("creating zone %d: %w", tpl.ID, err)
	}

	cfg = cfg.withDefaults()
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	tiles := make(map[model.Coords]model.TileSpec, len(tpl.Tiles))
	for _, t := range tpl.Tiles {
		tiles[t.Coords] = t.Spec
	}

	return &Zone{
		id:         tpl.ID,
		tpl:        tpl,
		encoded:    encoded,
		cfg:        cfg,
		log:        slog.With("zone", tpl.ID),
		metrics:    cfg.Metrics.forZone(tpl.ID),
		mailbox:    newMailbox(),
		done:       make(chan struct{}),
		rng:        rng,
		tiles:      tiles,
		characters: make(map[int32]PlayerHandle),
	}, nil
}

// ID returns the zone (map) id.
func (z *Zone) ID() int32 {
	return z.id
}

// Template returns the static template. Must not be modified.
func (z *Zone) Template() *model.ZoneTemplate {
	return z.tpl
}

// Done is closed once Run has returned.
func (z *Zone) Done() <-chan struct{} {
	return z.done
}

// Run processes commands and respawn ticks until ctx is canceled.
// The first tick is queued immediately and populates the creature table.
func (z *Zone) Run(ctx context.Context) error {
	if !z.running.CompareAndSwap(false, true) {
		return fmt.Errorf("zone %d: already running", z.id)
	}
	defer close(z.done)

	ticker := time.NewTicker(z.cfg.RespawnTick)
	defer ticker.Stop()

	z.log.Info("zone started",
		"name", z.tpl.Name,
		"width", z.tpl.Width,
		"height", z.tpl.Height,
		"spawns", len(z.tpl.Spawns))

	z.mailbox.push(tickCommand{})

	for {
		select {
		case <-ctx.Done():
			dropped := z.mailbox.close()
			z.log.Info("zone stopped", "dropped_commands", dropped, "players", len(z.characters))
			return nil

		case <-ticker.C:
			z.mailbox.push(tickCommand{})

		case <-z.mailbox.ready():
			z.drain(ctx)
		}
	}
}

// drain handles queued commands one at a time, in arrival order.
func (z *Zone) drain(ctx context.Context) {
	for ctx.Err() == nil {
		cmd, ok := z.mailbox.pop()
		if !ok {
			return
		}
		z.dispatch(ctx, cmd)
	}
}

func (z *Zone) dispatch(ctx context.Context, cmd command) {
	start := time.Now()

	switch c := cmd.(type) {
	case enterCommand:
		z.enter(ctx, c)
	case leaveCommand:
		z.leave(ctx, c)
	case dropPlayerCommand:
		z.dropPlayer(ctx, c)
	case faceCommand:
		z.face(ctx, c)
	case walkCommand:
		z.walk(ctx, c)
	case characterMapInfoCommand:
		z.characterMapInfo(ctx, c)
	case nearbyInfoCommand:
		z.nearbyInfo(ctx, c)
	case mapInfoCommand:
		z.mapInfo(ctx, c)
	case hashAndSizeCommand:
		c.respond <- reply[HashAndSize]{val: HashAndSize{Hash: z.tpl.Hash, Size: z.tpl.Size}}
	case serializeCommand:
		c.respond <- reply[[]byte]{val: append([]byte(nil), z.encoded...)}
	case tickCommand:
		z.spawnNpcs(ctx, z.cfg.Now())
	default:
		z.log.Error("unknown command", "type", fmt.Sprintf("%T", cmd))
		return
	}

	z.metrics.commandDone(cmd.kind(), time.Since(start))
	z.metrics.players(len(z.characters))
}
