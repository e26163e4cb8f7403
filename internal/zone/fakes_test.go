package zone

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonesrv/internal/data"
	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
	"github.com/udisondev/zonesrv/internal/world"
)

var errHandleGone = errors.New("session gone")

// fakeHandle is an in-memory PlayerHandle.
type fakeHandle struct {
	id int32

	mu      sync.Mutex
	info    model.CharacterMapInfo
	err     error
	stall   bool
	moveErr error
	packets []protocol.Packet
}

func newFakeHandle(id, x, y int32) *fakeHandle {
	return &fakeHandle{
		id: id,
		info: model.CharacterMapInfo{
			Name:     "char",
			PlayerID: id,
			MapID:    1,
			Coords:   model.NewCoords(x, y),
			HP:       10,
			MaxHP:    10,
		},
	}
}

func (h *fakeHandle) PlayerID() int32 { return h.id }

func (h *fakeHandle) Send(family protocol.Family, action protocol.Action, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.packets = append(h.packets, protocol.Packet{Family: family, Action: action, Payload: payload})
}

func (h *fakeHandle) Coords(ctx context.Context) (model.Coords, error) {
	info, err := h.CharacterMapInfo(ctx)
	return info.Coords, err
}

func (h *fakeHandle) CharacterMapInfo(ctx context.Context) (model.CharacterMapInfo, error) {
	h.mu.Lock()
	stall, err, info := h.stall, h.err, h.info
	h.mu.Unlock()

	if stall {
		<-ctx.Done()
		return model.CharacterMapInfo{}, ctx.Err()
	}
	if err != nil {
		return model.CharacterMapInfo{}, err
	}
	return info, nil
}

func (h *fakeHandle) Relocate(_ context.Context, mapID int32, coords model.Coords) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.moveErr != nil {
		return h.moveErr
	}
	h.info.MapID = mapID
	h.info.Coords = coords
	return nil
}

func (h *fakeHandle) moveTo(x, y int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.info.Coords = model.NewCoords(x, y)
}

func (h *fakeHandle) fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *fakeHandle) hang() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stall = true
}

// received returns packets of the given category.
func (h *fakeHandle) received(family protocol.Family, action protocol.Action) []protocol.Packet {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []protocol.Packet
	for _, p := range h.packets {
		if p.Family == family && p.Action == action {
			out = append(out, p)
		}
	}
	return out
}

func (h *fakeHandle) packetCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.packets)
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

const (
	testNpcID    int32 = 1000
	testNpcMaxHP int32 = 57
)

func testNpcTable() *data.NpcTable {
	return data.NewNpcTable([]*model.NpcTemplate{
		{ID: testNpcID, Name: "Rat", Level: 1, MaxHP: testNpcMaxHP},
		{ID: testNpcID + 1, Name: "Guard", Level: 20, MaxHP: 300},
	})
}

func testTemplate(spawns ...model.SpawnTemplate) *model.ZoneTemplate {
	return &model.ZoneTemplate{
		ID:     1,
		Name:   "test",
		Width:  100,
		Height: 100,
		Spawns: spawns,
	}
}

func testConfig(clock *fakeClock) Config {
	return Config{
		Visibility:  world.NewVisibility(world.DefaultSeeDistance),
		CallTimeout: 50 * time.Millisecond,
		Fanout:      4,
		RespawnTick: time.Hour,
		Npcs:        testNpcTable(),
		Now:         clock.Now,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	}
}

// newTestZone creates a zone that is driven synchronously through dispatch.
func newTestZone(t *testing.T, tpl *model.ZoneTemplate, cfg Config) *Zone {
	t.Helper()
	z, err := New(tpl, cfg)
	require.NoError(t, err)
	return z
}

// ask dispatches a reply-carrying command on the calling goroutine.
func ask[T any](z *Zone, build func(chan<- reply[T]) command) (T, error) {
	respond := make(chan reply[T], 1)
	z.dispatch(context.Background(), build(respond))
	r := <-respond
	return r.val, r.err
}

func (z *Zone) testEnter(h *fakeHandle) {
	z.dispatch(context.Background(), enterCommand{playerID: h.id, handle: h})
}

func (z *Zone) testTick() {
	z.dispatch(context.Background(), tickCommand{})
}

func (z *Zone) testNearby(t *testing.T, playerID int32) model.NearbyInfo {
	t.Helper()
	info, err := ask(z, func(r chan<- reply[model.NearbyInfo]) command {
		return nearbyInfoCommand{playerID: playerID, respond: r}
	})
	require.NoError(t, err)
	return info
}

func (z *Zone) testLeave(playerID int32, anim *protocol.WarpAnimation) error {
	_, err := ask(z, func(r chan<- reply[struct{}]) command {
		return leaveCommand{playerID: playerID, warpAnimation: anim, respond: r}
	})
	return err
}

func characterIDs(infos []model.CharacterMapInfo) []int32 {
	ids := make([]int32, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.PlayerID)
	}
	return ids
}
