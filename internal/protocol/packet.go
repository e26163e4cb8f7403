package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Family groups server notices by subject. Receivers dispatch on Family+Action.
type Family uint8

const (
	FamilyPlayers Family = 22
	FamilyAvatar  Family = 4
	FamilyFace    Family = 5
	FamilyWalk    Family = 6
	FamilyMapInfo Family = 31
)

func (f Family) String() string {
	switch f {
	case FamilyPlayers:
		return "players"
	case FamilyAvatar:
		return "avatar"
	case FamilyFace:
		return "face"
	case FamilyWalk:
		return "walk"
	case FamilyMapInfo:
		return "map_info"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}

// Action is the verb of a notice within its Family.
type Action uint8

const (
	ActionRemove Action = 2
	ActionAgree  Action = 4
	ActionReply  Action = 3
	ActionPlayer Action = 8
)

func (a Action) String() string {
	switch a {
	case ActionRemove:
		return "remove"
	case ActionAgree:
		return "agree"
	case ActionReply:
		return "reply"
	case ActionPlayer:
		return "player"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Packet is one tagged notice on its way to a session.
// Payload is shared between all receivers of a broadcast and must not be modified.
type Packet struct {
	Family  Family
	Action  Action
	Payload []byte
}

// Marshal encodes a notice body.
func Marshal(v any) ([]byte, error) {
	buf, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	return buf, nil
}

// Unmarshal decodes a notice body produced by Marshal.
func Unmarshal(buf []byte, v any) error {
	if err := msgpack.Unmarshal(buf, v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}
