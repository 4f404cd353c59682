package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/kafka"
	kafkaMocks "innkeep/infras/kafka/mocks"
	"innkeep/internal/events"
)

func newPublisher(ctrl *gomock.Controller) (events.Publisher, *kafkaMocks.MockClient) {
	mockClient := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	return events.NewPublisher(mockClient, cfg), mockClient
}

func TestPublisher_PublishBookingEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("event round-trips through the wire encoding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		publisher, mockClient := newPublisher(ctrl)

		var published kafka.Message

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published = messages[0]
				return nil
			})

		event := events.BookingEvent{
			Type:      events.TypeBookingCreated,
			BookingID: "booking-id",
			Code:      "BK-7HJ2M9QK",
			RoomID:    "room-id",
			GuestID:   "guest-id",
			Status:    "reserved",
		}

		err := publisher.PublishBookingEvent(ctx, event)
		require.NoError(t, err)

		assert.Equal(t, "booking-id", published.Key)

		wireMsg, err := published.ToKafkaMessage()
		require.NoError(t, err)

		var decoded events.BookingEvent
		require.NoError(t, json.Unmarshal(wireMsg.Value, &decoded))

		assert.Equal(t, events.TypeBookingCreated, decoded.Type)
		assert.Equal(t, "booking-id", decoded.BookingID)
		assert.Equal(t, "BK-7HJ2M9QK", decoded.Code)
		assert.Equal(t, "reserved", decoded.Status)
		assert.False(t, decoded.OccurredAt.IsZero())
	})

	t.Run("producer failure surfaces as an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		publisher, mockClient := newPublisher(ctrl)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			Return(errors.New("broker unreachable"))

		err := publisher.PublishBookingEvent(ctx, events.BookingEvent{
			Type:      events.TypeBookingCancelled,
			BookingID: "booking-id",
		})

		assert.Error(t, err)
	})
}
