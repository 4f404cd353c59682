// Package events publishes booking lifecycle changes to Kafka so downstream
// consumers (channel managers, guest notifications) can react without being
// in the request path.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/kafka"
	"innkeep/shared/timezone"
)

const (
	TypeBookingCreated    = "booking.created"
	TypeBookingCheckedIn  = "booking.checked_in"
	TypeBookingCheckedOut = "booking.checked_out"
	TypeBookingCancelled  = "booking.cancelled"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	Code       string    `json:"code"`
	RoomID     string    `json:"room_id"`
	GuestID    string    `json:"guest_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

type publisherImpl struct {
	producer kafka.Client
	cfg      *config.Config
}

func NewPublisher(producer kafka.Client, cfg *config.Config) Publisher {
	return &publisherImpl{
		producer: producer,
		cfg:      cfg,
	}
}

// PublishBookingEvent writes the event keyed by booking ID, so all events of
// one booking land on the same partition in order.
func (p *publisherImpl) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	err := p.producer.SendMessages(ctx, p.cfg.Kafka.Topic.BookingEvents, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Str("bookingID", event.BookingID).Msg("failed to publish booking event")

		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}
