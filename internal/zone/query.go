package zone

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
)

// located is a character handle paired with the coords it reported.
type located struct {
	handle PlayerHandle
	coords model.Coords
}

// handles snapshots the character table, skipping exclude (0 = none).
func (z *Zone) handles(exclude int32) []PlayerHandle {
	out := make([]PlayerHandle, 0, len(z.characters))
	for id, h := range z.characters {
		if id == exclude {
			continue
		}
		out = append(out, h)
	}
	return out
}

// queryAll runs call against every handle with bounded fan-out.
// Each call has its own timeout; a failed call drops that handle from the
// result and is logged, it never fails the whole query.
func queryAll[T any](ctx context.Context, z *Zone, op string, handles []PlayerHandle, call func(context.Context, PlayerHandle) (T, error)) map[int32]T {
	var (
		mu      sync.Mutex
		results = make(map[int32]T, len(handles))
	)

	var g errgroup.Group
	g.SetLimit(z.cfg.Fanout)

	for _, h := range handles {
		g.Go(func() error {
			v, err := callHandle(ctx, z, op, h, call)
			if err != nil {
				return nil
			}
			mu.Lock()
			results[h.PlayerID()] = v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// callHandle performs one bounded call on a handle.
func callHandle[T any](ctx context.Context, z *Zone, op string, h PlayerHandle, call func(context.Context, PlayerHandle) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, z.cfg.CallTimeout)
	defer cancel()

	v, err := call(callCtx, h)
	if err != nil {
		z.log.Warn("player handle call failed",
			"op", op,
			"player", h.PlayerID(),
			"error", err)
		z.metrics.handleFailure(op)
	}
	return v, err
}

func handleCoords(ctx context.Context, h PlayerHandle) (model.Coords, error) {
	return h.Coords(ctx)
}

func handleMapInfo(ctx context.Context, h PlayerHandle) (model.CharacterMapInfo, error) {
	return h.CharacterMapInfo(ctx)
}

// charactersNear returns the handles of characters within sight of origin.
// Characters whose position cannot be read are left out.
func (z *Zone) charactersNear(ctx context.Context, origin model.Coords, exclude int32) []located {
	handles := z.handles(exclude)
	if len(handles) == 0 {
		return nil
	}

	coords := queryAll(ctx, z, "coords", handles, handleCoords)

	near := make([]located, 0, len(coords))
	for _, h := range handles {
		c, ok := coords[h.PlayerID()]
		if !ok || !z.cfg.Visibility.InRange(origin, c) {
			continue
		}
		near = append(near, located{handle: h, coords: c})
	}
	return near
}

// notify encodes notice once and enqueues it to every target.
func (z *Zone) notify(targets []located, family protocol.Family, action protocol.Action, notice any) {
	if len(targets) == 0 {
		return
	}

	payload, err := protocol.Marshal(notice)
	if err != nil {
		z.log.Error("encoding notice failed",
			"family", family,
			"action", action,
			"error", err)
		return
	}

	for _, t := range targets {
		t.handle.Send(family, action, payload)
	}
	z.metrics.noticesSent(family, len(targets))
}
