package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	bookingModel "innkeep/internal/domains/booking/model"
	bookingMocks "innkeep/internal/domains/booking/mocks"
	keyMocks "innkeep/internal/domains/digitalkey/mocks"
	"innkeep/internal/domains/digitalkey/model"
	"innkeep/internal/domains/digitalkey/model/dto"
	"innkeep/internal/domains/digitalkey/service"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

func newService(ctrl *gomock.Controller) (service.DigitalKey, *keyMocks.MockDigitalKey, *bookingMocks.MockBooking) {
	mockRepo := keyMocks.NewMockDigitalKey(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)

	cfg := &config.Config{}
	cfg.Hotel.KeyTTLHours = 72

	svc := service.New(mockRepo, mockBookingRepo, cfg, mocks.NewOtel())

	return svc, mockRepo, mockBookingRepo
}

func TestDigitalKeyService_Issue(t *testing.T) {
	req := dto.IssueKeyRequest{BookingID: "booking-id"}

	t.Run("checked-in booking gets a key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockBookingRepo := newService(ctrl)

		mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{ID: "booking-id", RoomID: "room-id", Status: bookingModel.StatusCheckedIn}, nil)

		var issued model.DigitalKey

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key model.DigitalKey) error {
				issued = key
				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		res, err := svc.Issue(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "room-id", issued.RoomID)
		assert.NotEmpty(t, issued.Token)
		assert.False(t, issued.Revoked)
		assert.WithinDuration(t, timezone.Now().Add(72*time.Hour), issued.ExpiresAt, time.Minute)
		assert.Equal(t, issued.Token, res.Token)
	})

	for _, status := range []bookingModel.Status{bookingModel.StatusReserved, bookingModel.StatusCheckedOut, bookingModel.StatusCancelled} {
		t.Run("no key for a "+status.String()+" booking", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, mockBookingRepo := newService(ctrl)

			mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
				Return(bookingModel.Booking{ID: "booking-id", Status: status}, nil)

			_, err := svc.Issue(context.Background(), req)

			assert.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockBookingRepo := newService(ctrl)

		mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := svc.Issue(context.Background(), req)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestDigitalKeyService_Revoke(t *testing.T) {
	t.Run("active key is revoked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.DigitalKey{ID: "key-id"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldRevoked])
				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		assert.NoError(t, svc.Revoke(ctx, "key-id"))
	})

	t.Run("revoking twice is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.DigitalKey{ID: "key-id", Revoked: true}, nil)

		assert.NoError(t, svc.Revoke(context.Background(), "key-id"))
	})

	t.Run("unknown key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DigitalKey{}, nil)

		err := svc.Revoke(context.Background(), "key-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestDigitalKeyService_Validate(t *testing.T) {
	tests := []struct {
		name       string
		key        model.DigitalKey
		wantValid  bool
		wantReason string
	}{
		{
			name:      "live key",
			key:       model.DigitalKey{ID: "key-id", RoomID: "room-id", ExpiresAt: timezone.Now().Add(time.Hour)},
			wantValid: true,
		},
		{
			name:       "expired key",
			key:        model.DigitalKey{ID: "key-id", RoomID: "room-id", ExpiresAt: timezone.Now().Add(-time.Hour)},
			wantValid:  false,
			wantReason: dto.KeyInvalidReasonExpired,
		},
		{
			name:       "revoked key",
			key:        model.DigitalKey{ID: "key-id", RoomID: "room-id", ExpiresAt: timezone.Now().Add(time.Hour), Revoked: true},
			wantValid:  false,
			wantReason: dto.KeyInvalidReasonRevoked,
		},
		{
			name:       "revoked and expired key reports revoked",
			key:        model.DigitalKey{ID: "key-id", RoomID: "room-id", ExpiresAt: timezone.Now().Add(-time.Hour), Revoked: true},
			wantValid:  false,
			wantReason: dto.KeyInvalidReasonRevoked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newService(ctrl)

			mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.key, nil)

			res, err := svc.Validate(context.Background(), "token")

			assert.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantReason, res.Reason)

			if tt.wantValid {
				assert.Equal(t, "room-id", res.RoomID)
			} else {
				assert.Empty(t, res.RoomID)
			}
		})
	}

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DigitalKey{}, nil)

		_, err := svc.Validate(context.Background(), "token")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}
