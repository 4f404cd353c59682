package model

import (
	"time"

	"innkeep/shared/model"
)

const (
	TableName  = "digital_keys"
	EntityName = "digital_key"

	FieldID        = "id"
	FieldToken     = "token"
	FieldBookingID = "booking_id"
	FieldRoomID    = "room_id"
	FieldExpiresAt = "expires_at"
	FieldRevoked   = "revoked"
)

// DigitalKey is a room-access credential tied to a checked-in booking. Keys
// expire on their own; revocation is the hard kill used at check-out.
type DigitalKey struct {
	ID        string    `db:"id"`
	Token     string    `db:"token"`
	BookingID string    `db:"booking_id"`
	RoomID    string    `db:"room_id"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`

	model.Metadata
}

// Usable reports whether the key still opens the door at the given moment.
func (k DigitalKey) Usable(now time.Time) bool {
	return !k.Revoked && now.Before(k.ExpiresAt)
}
