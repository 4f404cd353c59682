package model

import (
	"time"

	"innkeep/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID        = "id"
	FieldNumber    = "number"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldIssuedAt  = "issued_at"
	FieldPaid      = "paid"
	FieldPaidAt    = "paid_at"
)

// Invoice is written at check-out for the booking total. Prepaid bookings
// produce an invoice already marked paid.
type Invoice struct {
	ID        string     `db:"id"`
	Number    string     `db:"number"`
	BookingID string     `db:"booking_id"`
	Amount    float64    `db:"amount"`
	IssuedAt  time.Time  `db:"issued_at"`
	Paid      bool       `db:"paid"`
	PaidAt    *time.Time `db:"paid_at"`

	model.Metadata
}
