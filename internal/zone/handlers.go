package zone

import (
	"context"
	"fmt"

	"github.com/udisondev/zonesrv/internal/model"
	"github.com/udisondev/zonesrv/internal/protocol"
)

func (z *Zone) enter(ctx context.Context, c enterCommand) {
	if _, exists := z.characters[c.playerID]; exists {
		z.log.Warn("player entered twice, replacing handle", "player", c.playerID)
	}

	info, err := callHandle(ctx, z, "character_map_info", c.handle, handleMapInfo)
	if err != nil {
		// Still inserted: the player is in the zone even if nobody saw it arrive.
		z.characters[c.playerID] = c.handle
		return
	}

	targets := z.charactersNear(ctx, info.Coords, c.playerID)
	z.characters[c.playerID] = c.handle

	z.notify(targets, protocol.FamilyPlayers, protocol.ActionAgree, protocol.PlayersAgree{Character: info})
	z.log.Debug("player entered", "player", c.playerID, "coords", info.Coords, "notified", len(targets))
}

func (z *Zone) leave(ctx context.Context, c leaveCommand) {
	h, ok := z.characters[c.playerID]
	if !ok {
		c.respond <- reply[struct{}]{err: ErrPlayerNotFound}
		return
	}
	delete(z.characters, c.playerID)

	coords, err := callHandle(ctx, z, "coords", h, handleCoords)
	if err == nil {
		targets := z.charactersNear(ctx, coords, c.playerID)
		z.notify(targets, protocol.FamilyAvatar, protocol.ActionRemove, protocol.AvatarRemove{
			PlayerID:      c.playerID,
			WarpAnimation: c.warpAnimation,
		})
	}

	c.respond <- reply[struct{}]{}
	z.log.Debug("player left", "player", c.playerID)
}

func (z *Zone) dropPlayer(ctx context.Context, c dropPlayerCommand) {
	if _, ok := z.characters[c.playerID]; !ok {
		z.log.Warn("drop of unknown player", "player", c.playerID)
		return
	}
	delete(z.characters, c.playerID)

	targets := z.charactersNear(ctx, c.coords, c.playerID)
	z.notify(targets, protocol.FamilyAvatar, protocol.ActionRemove, protocol.AvatarRemove{PlayerID: c.playerID})
	z.log.Debug("player dropped", "player", c.playerID, "coords", c.coords)
}

func (z *Zone) face(ctx context.Context, c faceCommand) {
	h, ok := z.characters[c.playerID]
	if !ok {
		z.log.Warn("face from unknown player", "player", c.playerID)
		return
	}
	if !c.direction.Valid() {
		z.log.Warn("face with invalid direction", "player", c.playerID, "direction", uint8(c.direction))
		return
	}

	coords, err := callHandle(ctx, z, "coords", h, handleCoords)
	if err != nil {
		return
	}

	targets := z.charactersNear(ctx, coords, c.playerID)
	z.notify(targets, protocol.FamilyFace, protocol.ActionPlayer, protocol.FacePlayer{
		PlayerID:  c.playerID,
		Direction: c.direction,
	})
}

func (z *Zone) walk(ctx context.Context, c walkCommand) {
	if _, ok := z.characters[c.playerID]; !ok {
		c.respond <- reply[model.Coords]{err: ErrPlayerNotFound}
		return
	}
	if !c.direction.Valid() {
		c.respond <- reply[model.Coords]{err: fmt.Errorf("direction %d: %w", c.direction, ErrBlocked)}
		return
	}

	dest := c.from.Step(c.direction)
	if !z.walkableForPlayer(dest) {
		c.respond <- reply[model.Coords]{err: ErrBlocked}
		return
	}

	targets := z.charactersNear(ctx, dest, c.playerID)
	z.notify(targets, protocol.FamilyWalk, protocol.ActionPlayer, protocol.WalkPlayer{
		PlayerID:  c.playerID,
		Direction: c.direction,
		Coords:    dest,
	})

	c.respond <- reply[model.Coords]{val: dest}
}

func (z *Zone) characterMapInfo(ctx context.Context, c characterMapInfoCommand) {
	h, ok := z.characters[c.playerID]
	if !ok {
		c.respond <- reply[model.CharacterMapInfo]{err: ErrPlayerNotFound}
		return
	}

	info, err := callHandle(ctx, z, "character_map_info", h, handleMapInfo)
	if err != nil {
		err = fmt.Errorf("player %d map info: %w", c.playerID, err)
	}
	c.respond <- reply[model.CharacterMapInfo]{val: info, err: err}
}

func (z *Zone) nearbyInfo(ctx context.Context, c nearbyInfoCommand) {
	if _, ok := z.characters[c.playerID]; !ok {
		c.respond <- reply[model.NearbyInfo]{err: ErrPlayerNotFound}
		return
	}

	infos := queryAll(ctx, z, "character_map_info", z.handles(0), handleMapInfo)

	observer, ok := infos[c.playerID]
	if !ok {
		c.respond <- reply[model.NearbyInfo]{err: fmt.Errorf("player %d map info: %w", c.playerID, ErrPlayerUnreachable)}
		return
	}

	characters := make([]model.CharacterMapInfo, 0, len(infos))
	for _, info := range infos {
		characters = append(characters, info)
	}

	vis := z.cfg.Visibility
	c.respond <- reply[model.NearbyInfo]{val: model.NearbyInfo{
		Items:      vis.NearbyItems(observer.Coords, z.items),
		Npcs:       vis.NearbyNpcs(observer.Coords, z.npcs),
		Characters: vis.NearbyCharacters(c.playerID, observer.Coords, characters),
	}}
}

func (z *Zone) mapInfo(ctx context.Context, c mapInfoCommand) {
	var requester PlayerHandle
	if c.requester != 0 {
		h, ok := z.characters[c.requester]
		if !ok {
			c.respond <- reply[model.MapInfo]{err: ErrPlayerNotFound}
			return
		}
		requester = h
	}

	var result model.MapInfo

	handles := make([]PlayerHandle, 0, len(c.playerIDs))
	for _, id := range c.playerIDs {
		if h, ok := z.characters[id]; ok {
			handles = append(handles, h)
		}
	}
	if len(handles) > 0 {
		infos := queryAll(ctx, z, "character_map_info", handles, handleMapInfo)
		for _, id := range c.playerIDs {
			if info, ok := infos[id]; ok {
				result.Characters = append(result.Characters, info)
			}
		}
	}

	for _, idx := range c.npcIndexes {
		if idx < 0 || int(idx) >= len(z.npcs) {
			continue
		}
		if npc := z.npcs[idx]; npc.Alive {
			result.Npcs = append(result.Npcs, npc.MapInfo())
		}
	}

	if requester != nil {
		z.notify([]located{{handle: requester}}, protocol.FamilyMapInfo, protocol.ActionReply, protocol.MapInfoReply{
			Characters: result.Characters,
			Npcs:       result.Npcs,
		})
	}

	c.respond <- reply[model.MapInfo]{val: result}
}
