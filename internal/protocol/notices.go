package protocol

import "github.com/udisondev/zonesrv/internal/model"

// WarpAnimation is the effect played when a character leaves a zone.
type WarpAnimation uint8

const (
	WarpAnimationNone   WarpAnimation = 0
	WarpAnimationScroll WarpAnimation = 1
	WarpAnimationAdmin  WarpAnimation = 2
)

// PlayersAgree announces a character that entered the observer's view.
// Family: Players, Action: Agree.
type PlayersAgree struct {
	Character model.CharacterMapInfo `msgpack:"character"`
}

// AvatarRemove removes a character from the observer's view.
// Family: Avatar, Action: Remove. WarpAnimation is nil for forced drops.
type AvatarRemove struct {
	PlayerID      int32          `msgpack:"player_id"`
	WarpAnimation *WarpAnimation `msgpack:"warp_animation"`
}

// FacePlayer tells the observer a character turned.
// Family: Face, Action: Player.
type FacePlayer struct {
	PlayerID  int32           `msgpack:"player_id"`
	Direction model.Direction `msgpack:"direction"`
}

// WalkPlayer tells the observer a character stepped onto Coords.
// Family: Walk, Action: Player.
type WalkPlayer struct {
	PlayerID  int32           `msgpack:"player_id"`
	Direction model.Direction `msgpack:"direction"`
	Coords    model.Coords    `msgpack:"coords"`
}

// MapInfoReply answers an explicit map info request.
// Family: MapInfo, Action: Reply.
type MapInfoReply struct {
	Characters []model.CharacterMapInfo `msgpack:"characters"`
	Npcs       []model.NpcMapInfo       `msgpack:"npcs"`
}
