package zone

import (
	"context"

	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
)

// command is one message on the zone mailbox.
type command interface {
	kind() string
}

type reply[T any] struct {
	val T
	err error
}

// HashAndSize identifies the serialized zone for client cache validation.
type HashAndSize struct {
	Hash [4]byte
	Size int32
}

type enterCommand struct {
	playerID int32
	handle   PlayerHandle
}

type leaveCommand struct {
	playerID      int32
	warpAnimation *protocol.WarpAnimation
	respond       chan<- reply[struct{}]
}

type dropPlayerCommand struct {
	playerID int32
	coords   model.Coords
}

type faceCommand struct {
	playerID  int32
	direction model.Direction
}

type walkCommand struct {
	playerID  int32
	from      model.Coords
	direction model.Direction
	respond   chan<- reply[model.Coords]
}

type characterMapInfoCommand struct {
	playerID int32
	respond  chan<- reply[model.CharacterMapInfo]
}

type nearbyInfoCommand struct {
	playerID int32
	respond  chan<- reply[model.NearbyInfo]
}

type mapInfoCommand struct {
	requester  int32 // receives a MapInfo/Reply packet when non-zero
	playerIDs  []int32
	npcIndexes []int32
	respond    chan<- reply[model.MapInfo]
}

type hashAndSizeCommand struct {
	respond chan<- reply[HashAndSize]
}

type serializeCommand struct {
	respond chan<- reply[[]byte]
}

// tickCommand drives the respawn engine through the same queue as every
// other mutation, so ticks and commands share one total order.
type tickCommand struct{}

func (enterCommand) kind() string            { return "enter" }
func (leaveCommand) kind() string            { return "leave" }
func (dropPlayerCommand) kind() string       { return "drop_player" }
func (faceCommand) kind() string             { return "face" }
func (walkCommand) kind() string             { return "walk" }
func (characterMapInfoCommand) kind() string { return "get_character_map_info" }
func (nearbyInfoCommand) kind() string       { return "get_nearby_info" }
func (mapInfoCommand) kind() string          { return "get_map_info" }
func (hashAndSizeCommand) kind() string      { return "get_hash_and_size" }
func (serializeCommand) kind() string        { return "serialize" }
func (tickCommand) kind() string             { return "tick" }

func (z *Zone) send(cmd command) error {
	if !z.mailbox.push(cmd) {
		return ErrZoneClosed
	}
	return nil
}

// request enqueues a command carrying a one-shot reply channel and waits for the answer.
func request[T any](ctx context.Context, z *Zone, build func(chan<- reply[T]) command) (T, error) {
	var zero T
	respond := make(chan reply[T], 1)

	if err := z.send(build(respond)); err != nil {
		return zero, err
	}

	select {
	case r := <-respond:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-z.done:
		return zero, ErrZoneClosed
	}
}

// Enter adds a player to the zone and announces it to nearby characters.
// Fire-and-forget: only enqueue failures are reported.
func (z *Zone) Enter(playerID int32, handle PlayerHandle) error {
	return z.send(enterCommand{playerID: playerID, handle: handle})
}

// Leave removes a player and plays warpAnimation (nil for none) to nearby characters.
// Returns ErrPlayerNotFound if the player is not in the zone.
func (z *Zone) Leave(ctx context.Context, playerID int32, warpAnimation *protocol.WarpAnimation) error {
	_, err := request(ctx, z, func(respond chan<- reply[struct{}]) command {
		return leaveCommand{playerID: playerID, warpAnimation: warpAnimation, respond: respond}
	})
	return err
}

// DropPlayer force-removes a player (disconnect). The remove notice is routed
// around coords because the player's session may already be gone.
func (z *Zone) DropPlayer(playerID int32, coords model.Coords) error {
	return z.send(dropPlayerCommand{playerID: playerID, coords: coords})
}

// Face broadcasts a facing change of playerID.
func (z *Zone) Face(playerID int32, direction model.Direction) error {
	return z.send(faceCommand{playerID: playerID, direction: direction})
}

// Walk validates a step from `from` in direction and broadcasts it.
// Returns the destination tile, or ErrBlocked.
func (z *Zone) Walk(ctx context.Context, playerID int32, from model.Coords, direction model.Direction) (model.Coords, error) {
	return request(ctx, z, func(respond chan<- reply[model.Coords]) command {
		return walkCommand{playerID: playerID, from: from, direction: direction, respond: respond}
	})
}

// GetCharacterMapInfo returns the public snapshot of one character in the zone.
func (z *Zone) GetCharacterMapInfo(ctx context.Context, playerID int32) (model.CharacterMapInfo, error) {
	return request(ctx, z, func(respond chan<- reply[model.CharacterMapInfo]) command {
		return characterMapInfoCommand{playerID: playerID, respond: respond}
	})
}

// GetNearbyInfo returns items, npcs and characters visible to playerID.
func (z *Zone) GetNearbyInfo(ctx context.Context, playerID int32) (model.NearbyInfo, error) {
	return request(ctx, z, func(respond chan<- reply[model.NearbyInfo]) command {
		return nearbyInfoCommand{playerID: playerID, respond: respond}
	})
}

// GetMapInfo returns snapshots of the requested characters and alive npcs.
// Unknown ids and indexes are skipped.
func (z *Zone) GetMapInfo(ctx context.Context, playerIDs, npcIndexes []int32) (model.MapInfo, error) {
	return request(ctx, z, func(respond chan<- reply[model.MapInfo]) command {
		return mapInfoCommand{playerIDs: playerIDs, npcIndexes: npcIndexes, respond: respond}
	})
}

// SendMapInfo answers a client map info request: the result of GetMapInfo
// is sent to requester as a MapInfo/Reply packet.
func (z *Zone) SendMapInfo(ctx context.Context, requester int32, playerIDs, npcIndexes []int32) error {
	_, err := request(ctx, z, func(respond chan<- reply[model.MapInfo]) command {
		return mapInfoCommand{requester: requester, playerIDs: playerIDs, npcIndexes: npcIndexes, respond: respond}
	})
	return err
}

// GetHashAndSize returns the zone file checksum and size.
func (z *Zone) GetHashAndSize(ctx context.Context) (HashAndSize, error) {
	return request(ctx, z, func(respond chan<- reply[HashAndSize]) command {
		return hashAndSizeCommand{respond: respond}
	})
}

// Serialize returns the zone template in its serialized form.
func (z *Zone) Serialize(ctx context.Context) ([]byte, error) {
	return request(ctx, z, func(respond chan<- reply[[]byte]) command {
		return serializeCommand{respond: respond}
	})
}
