package data

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/zonesrv/internal/model"
)

// EncodeZone returns the serialized form of a zone template, as sent to
// clients that miss it in their cache. Hash and Size are not part of it.
func EncodeZone(t *model.ZoneTemplate) ([]byte, error) {
	buf, err := msgpack.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding zone %d: %w", t.ID, err)
	}
	return buf, nil
}

// DecodeZone parses a serialized zone template and seals it.
func DecodeZone(buf []byte) (*model.ZoneTemplate, error) {
	var t model.ZoneTemplate
	if err := msgpack.Unmarshal(buf, &t); err != nil {
		return nil, fmt.Errorf("decoding zone: %w", err)
	}
	t.Hash = ZoneHash(buf)
	t.Size = int32(len(buf))
	return &t, nil
}

// ZoneHash is the client cache key of a serialized zone: first 4 bytes of blake2b-256.
func ZoneHash(buf []byte) [4]byte {
	sum := blake2b.Sum256(buf)
	var h [4]byte
	copy(h[:], sum[:4])
	return h
}

// SealZone computes Hash and Size of t and returns its serialized form.
// Sealing twice yields the same result.
func SealZone(t *model.ZoneTemplate) ([]byte, error) {
	buf, err := EncodeZone(t)
	if err != nil {
		return nil, err
	}
	t.Hash = ZoneHash(buf)
	t.Size = int32(len(buf))
	return buf, nil
}
