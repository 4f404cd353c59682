package model

import (
	"strings"
	"time"

	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldCode         = "code"
	FieldRoomID       = "room_id"
	FieldGuestID      = "guest_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldAdults       = "adults"
	FieldChildren     = "children"
	FieldTotalAmount  = "total_amount"
	FieldPrepaid      = "prepaid"
	FieldStatus       = "status"
	FieldCheckedInAt  = "checked_in_at"
	FieldCheckedOutAt = "checked_out_at"
)

// Status is the booking lifecycle state. The machine only moves forward:
// reserved -> checked_in -> checked_out, or reserved -> cancelled.
type Status string

const (
	StatusReserved   Status = "reserved"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus converts a string into a Status, case-insensitively. Unknown
// values are rejected rather than falling back to a default.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusReserved:
		return StatusReserved, nil
	case StatusCheckedIn:
		return StatusCheckedIn, nil
	case StatusCheckedOut:
		return StatusCheckedOut, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return constant.Empty, failure.BadRequestFromString("unknown booking status: " + s) //nolint:wrapcheck
	}
}

// IsActive reports whether the booking counts toward room availability.
func (s Status) IsActive() bool {
	return s == StatusReserved || s == StatusCheckedIn
}

// IsTerminal reports whether no further transition may leave this state.
func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

type Booking struct {
	ID           string     `db:"id"`
	Code         string     `db:"code"`
	RoomID       string     `db:"room_id"`
	GuestID      string     `db:"guest_id"`
	CheckInDate  time.Time  `db:"check_in_date"`
	CheckOutDate time.Time  `db:"check_out_date"`
	Adults       int        `db:"adults"`
	Children     int        `db:"children"`
	TotalAmount  float64    `db:"total_amount"`
	Prepaid      bool       `db:"prepaid"`
	Status       Status     `db:"status"`
	CheckedInAt  *time.Time `db:"checked_in_at"`
	CheckedOutAt *time.Time `db:"checked_out_at"`
	model.Metadata
}

// Nights returns the number of billable nights for the stay. Same-day ranges
// never reach here (rejected at validation), but a sub-day span still bills
// one night.
func (b *Booking) Nights() int {
	nights := int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / constant.HoursPerDay)
	if nights < 1 {
		nights = 1
	}

	return nights
}

// Overlaps reports whether the stay intersects [start, end) under the
// half-open rule: the checkout day itself is free, so back-to-back stays on
// the same room do not collide.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.CheckInDate.Before(end) && start.Before(b.CheckOutDate)
}

// Covers reports whether the given day falls inside the stay.
func (b *Booking) Covers(day time.Time) bool {
	return !day.Before(b.CheckInDate) && day.Before(b.CheckOutDate)
}
