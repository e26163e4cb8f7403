package model

// Item is a stack lying on the ground of a zone.
type Item struct {
	UID    int32
	ID     int32
	Amount int32
	Coords Coords
}

// MapInfo returns the public snapshot sent to clients.
func (i *Item) MapInfo() ItemMapInfo {
	return ItemMapInfo{
		UID:    i.UID,
		ID:     i.ID,
		Coords: i.Coords,
		Amount: i.Amount,
	}
}
