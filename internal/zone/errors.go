package zone

import "errors"

var (
	// ErrPlayerNotFound is returned when a command names a player that is not in the zone.
	// Expected under disconnect races.
	ErrPlayerNotFound = errors.New("player not found in zone")

	// ErrZoneClosed is returned for commands sent to a zone that stopped.
	ErrZoneClosed = errors.New("zone closed")

	// ErrZoneNotFound is returned by Manager for unknown zone ids.
	ErrZoneNotFound = errors.New("zone not found")

	// ErrPlayerUnreachable is returned when the player's own handle did not answer in time.
	ErrPlayerUnreachable = errors.New("player handle unreachable")

	// ErrBlocked is returned when a walk targets a tile the character cannot enter.
	ErrBlocked = errors.New("tile blocked")
)
