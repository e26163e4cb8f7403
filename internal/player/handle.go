package player

import (
	"context"

	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
)

// Handle is the shared reference to a Session used by zones and the
// world directory. Copies refer to the same session.
type Handle struct {
	id int32
	s  *Session
}

// PlayerID returns the character id. Never blocks.
func (h *Handle) PlayerID() int32 {
	return h.id
}

// Send queues a notice. payload may be shared with other receivers.
func (h *Handle) Send(family protocol.Family, action protocol.Action, payload []byte) {
	h.s.enqueue(protocol.Packet{Family: family, Action: action, Payload: payload})
}

// Coords returns the current position.
func (h *Handle) Coords(ctx context.Context) (model.Coords, error) {
	return query(ctx, h.s, func(c *Character) model.Coords {
		return c.Coords
	})
}

// CharacterMapInfo returns the public snapshot of the character.
func (h *Handle) CharacterMapInfo(ctx context.Context) (model.CharacterMapInfo, error) {
	return query(ctx, h.s, func(c *Character) model.CharacterMapInfo {
		return c.MapInfo()
	})
}

// IsInRange reports whether coords is within sight of the character.
func (h *Handle) IsInRange(ctx context.Context, coords model.Coords) (bool, error) {
	vis := h.s.vis
	return query(ctx, h.s, func(c *Character) bool {
		return vis.InRange(c.Coords, coords)
	})
}

// SetCoords moves the character within its map.
func (h *Handle) SetCoords(ctx context.Context, coords model.Coords) error {
	_, err := query(ctx, h.s, func(c *Character) struct{} {
		c.Coords = coords
		return struct{}{}
	})
	return err
}

// SetDirection changes the facing.
func (h *Handle) SetDirection(ctx context.Context, d model.Direction) error {
	_, err := query(ctx, h.s, func(c *Character) struct{} {
		c.Direction = d
		return struct{}{}
	})
	return err
}

// Relocate moves the character to another map.
func (h *Handle) Relocate(ctx context.Context, mapID int32, coords model.Coords) error {
	_, err := query(ctx, h.s, func(c *Character) struct{} {
		c.MapID = mapID
		c.Coords = coords
		return struct{}{}
	})
	return err
}

// query runs fn on the session goroutine and returns its result.
func query[T any](ctx context.Context, s *Session, fn func(*Character) T) (T, error) {
	var zero T

	select {
	case <-s.closeCh:
		return zero, ErrHandleClosed
	default:
	}

	out := make(chan T, 1)
	req := func(c *Character) { out <- fn(c) }

	select {
	case s.requests <- req:
	case <-s.closeCh:
		return zero, ErrHandleClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case v := <-out:
		return v, nil
	case <-s.closeCh:
		return zero, ErrHandleClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
