package model

import (
	"strings"

	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldNumber     = "number"
	FieldFloor      = "floor"
	FieldStatus     = "status"
	FieldRoomTypeID = "room_type_id"
	FieldImage      = "image"
)

// Status is the operational room flag, distinct from booking status. It is
// flipped as a side effect of check-in, check-out and cancellation, or by
// housekeeping closing a cleaning task.
type Status string

const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusDirty       Status = "dirty"
	StatusMaintenance Status = "maintenance"
)

// ParseStatus converts a string into a room Status case-insensitively,
// rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusVacant:
		return StatusVacant, nil
	case StatusOccupied:
		return StatusOccupied, nil
	case StatusDirty:
		return StatusDirty, nil
	case StatusMaintenance:
		return StatusMaintenance, nil
	default:
		return constant.Empty, failure.BadRequestFromString("unknown room status: " + s) //nolint:wrapcheck
	}
}

func (s Status) String() string {
	return string(s)
}

type Room struct {
	ID         string `db:"id"`
	Number     string `db:"number"`
	Floor      int    `db:"floor"`
	Status     Status `db:"status"`
	RoomTypeID string `db:"room_type_id"`
	Image      string `db:"image"`

	// Read-only columns joined from room_types.
	TypeName    string  `db:"type_name"    table:"room_types" column:"name"`
	Capacity    int     `db:"capacity"     table:"room_types"`
	NightlyRate float64 `db:"nightly_rate" table:"room_types"`

	model.Metadata
}

func (r Room) GetJoinQuery() string {
	return "JOIN room_types ON rooms.room_type_id = room_types.id"
}
