package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarRemoveKeepsAnimationTag(t *testing.T) {
	anim := WarpAnimationScroll

	buf, err := Marshal(AvatarRemove{PlayerID: 7, WarpAnimation: &anim})
	require.NoError(t, err)

	var got AvatarRemove
	require.NoError(t, Unmarshal(buf, &got))
	assert.Equal(t, int32(7), got.PlayerID)
	require.NotNil(t, got.WarpAnimation)
	assert.Equal(t, WarpAnimationScroll, *got.WarpAnimation)

	buf, err = Marshal(AvatarRemove{PlayerID: 7})
	require.NoError(t, err)

	got = AvatarRemove{}
	require.NoError(t, Unmarshal(buf, &got))
	assert.Nil(t, got.WarpAnimation)
}

func TestUnmarshalGarbage(t *testing.T) {
	var face FacePlayer
	err := Unmarshal([]byte{0xc1}, &face)
	assert.Error(t, err)
}

func TestFamilyActionNames(t *testing.T) {
	assert.Equal(t, "players", FamilyPlayers.String())
	assert.Equal(t, "agree", ActionAgree.String())
	assert.Equal(t, "family(200)", Family(200).String())

	p := Packet{Family: FamilyWalk, Action: ActionPlayer}
	assert.Equal(t, "walk", p.Family.String())
}
