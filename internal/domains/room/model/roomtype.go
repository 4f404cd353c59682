package model

import "innkeep/shared/model"

const (
	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room_type"

	FieldName        = "name"
	FieldCapacity    = "capacity"
	FieldNightlyRate = "nightly_rate"
)

// RoomType carries the rate card; bookings price off its nightly rate at the
// moment the reservation is made.
type RoomType struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Capacity    int     `db:"capacity"`
	NightlyRate float64 `db:"nightly_rate"`

	model.Metadata
}
