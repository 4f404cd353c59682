package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	bookingMocks "innkeep/internal/domains/booking/mocks"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/service"
	keyMocks "innkeep/internal/domains/digitalkey/mocks"
	guestMocks "innkeep/internal/domains/guest/mocks"
	taskMocks "innkeep/internal/domains/housekeeping/mocks"
	housekeepingModel "innkeep/internal/domains/housekeeping/model"
	invoiceMocks "innkeep/internal/domains/invoice/mocks"
	invoiceModel "innkeep/internal/domains/invoice/model"
	roomMocks "innkeep/internal/domains/room/mocks"
	roomModel "innkeep/internal/domains/room/model"
	eventMocks "innkeep/internal/events/mocks"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type serviceMocks struct {
	repo      *bookingMocks.MockBooking
	roomRepo  *roomMocks.MockRoom
	guestRepo *guestMocks.MockGuest
	keyRepo   *keyMocks.MockDigitalKey
	taskRepo  *taskMocks.MockTask
	invoice   *invoiceMocks.MockInvoice
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
}

func newService(ctrl *gomock.Controller) (service.Booking, *serviceMocks) {
	m := &serviceMocks{
		repo:      bookingMocks.NewMockBooking(ctrl),
		roomRepo:  roomMocks.NewMockRoom(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
		keyRepo:   keyMocks.NewMockDigitalKey(ctrl),
		taskRepo:  taskMocks.NewMockTask(ctrl),
		invoice:   invoiceMocks.NewMockInvoice(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Hotel.CodePrefix = "BK"
	cfg.Hotel.InvoicePrefix = "INV"

	svc := service.New(m.repo, m.roomRepo, m.guestRepo, m.keyRepo, m.taskRepo, m.invoice, m.publisher, cfg, m.cache, mocks.NewOtel())

	// Event publishing and cache invalidation run off the request path.
	m.publisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return svc, m
}

func newTx(t *testing.T, commit bool) *sqlx.Tx {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	dbMock.ExpectBegin()

	if commit {
		dbMock.ExpectCommit()
	} else {
		dbMock.ExpectRollback()
	}

	tx, err := sqlx.NewDb(db, "sqlmock").Beginx()
	require.NoError(t, err)

	return tx
}

func reservedBooking() model.Booking {
	checkIn := timezone.Today().AddDate(0, 0, 1)

	return model.Booking{
		ID:           "booking-id",
		Code:         "BK-7HJ2M9QK",
		RoomID:       "room-id",
		GuestID:      "guest-id",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 3),
		Adults:       2,
		TotalAmount:  300,
		Status:       model.StatusReserved,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		RoomID:       "room-id",
		GuestID:      "guest-id",
		CheckInDate:  "2026-09-01",
		CheckOutDate: "2026-09-04",
		Adults:       2,
	}

	room := roomModel.Room{
		ID:          "room-id",
		Number:      "101",
		Status:      roomModel.StatusVacant,
		NightlyRate: 100,
	}

	t.Run("successful creation prices three nights", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		tx := newTx(t, true)

		m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
		m.roomRepo.EXPECT().LockTx(gomock.Any(), tx, "room-id").Return(room, nil)
		m.repo.EXPECT().FindOverlapping(gomock.Any(), tx, "room-id", gomock.Any(), gomock.Any()).Return(nil, nil)

		var inserted model.Booking

		m.repo.EXPECT().
			InsertTx(gomock.Any(), tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				inserted = b
				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		res, err := svc.Create(ctx, validReq)

		assert.NoError(t, err)
		assert.Equal(t, float64(300), inserted.TotalAmount)
		assert.Equal(t, model.StatusReserved, inserted.Status)
		assert.NotEmpty(t, inserted.Code)
		assert.Equal(t, inserted.Code, res.Code)
		assert.Equal(t, "reserved", res.Status)
	})

	t.Run("check-out not after check-in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newService(ctrl)

		req := validReq
		req.CheckOutDate = req.CheckInDate

		_, err := svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindInvalidDateRange))
	})

	t.Run("guest does not exist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})

	t.Run("room does not exist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		tx := newTx(t, false)

		m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
		m.roomRepo.EXPECT().LockTx(gomock.Any(), tx, "room-id").
			Return(roomModel.Room{}, fmt.Errorf("failed to lock room: %w", sql.ErrNoRows))

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		tx := newTx(t, false)

		m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
		m.roomRepo.EXPECT().LockTx(gomock.Any(), tx, "room-id").Return(room, nil)
		m.repo.EXPECT().FindOverlapping(gomock.Any(), tx, "room-id", gomock.Any(), gomock.Any()).
			Return([]model.Booking{reservedBooking()}, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindRoomUnavailable))
	})

	t.Run("insert error rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		tx := newTx(t, false)

		m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
		m.roomRepo.EXPECT().LockTx(gomock.Any(), tx, "room-id").Return(room, nil)
		m.repo.EXPECT().FindOverlapping(gomock.Any(), tx, "room-id", gomock.Any(), gomock.Any()).Return(nil, nil)
		m.repo.EXPECT().InsertTx(gomock.Any(), tx, gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
	})
}

func TestBookingService_CheckIn(t *testing.T) {
	t.Run("reserved booking checks in and occupies the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		tx := newTx(t, true)

		booking := reservedBooking()

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)

		m.repo.EXPECT().
			UpdateTx(gomock.Any(), tx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])
				assert.NotNil(t, fields[model.FieldCheckedInAt])
				return nil
			})

		m.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), tx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])
				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		assert.NoError(t, svc.CheckIn(ctx, booking.ID))
	})

	for _, status := range []model.Status{model.StatusCheckedIn, model.StatusCheckedOut, model.StatusCancelled} {
		t.Run("rejects check-in from "+status.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)

			booking := reservedBooking()
			booking.Status = status

			m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			err := svc.CheckIn(context.Background(), booking.ID)

			assert.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := svc.CheckIn(context.Background(), "nonexistent-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestBookingService_CheckOut(t *testing.T) {
	t.Run("checked-in booking checks out with invoice, dirty room and cleaning task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		tx := newTx(t, true)

		booking := reservedBooking()
		booking.Status = model.StatusCheckedIn
		booking.Prepaid = true

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.invoice.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)

		m.repo.EXPECT().
			UpdateTx(gomock.Any(), tx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCheckedOut, fields[model.FieldStatus])
				assert.NotNil(t, fields[model.FieldCheckedOutAt])
				return nil
			})

		m.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), tx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusDirty, fields[roomModel.FieldStatus])
				return nil
			})

		m.keyRepo.EXPECT().RevokeByBookingTx(gomock.Any(), tx, booking.ID, gomock.Any()).Return(nil)

		m.invoice.EXPECT().
			InsertTx(gomock.Any(), tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, inv invoiceModel.Invoice) error {
				assert.Equal(t, booking.TotalAmount, inv.Amount)
				assert.Equal(t, booking.ID, inv.BookingID)
				assert.True(t, inv.Paid)
				assert.NotNil(t, inv.PaidAt)
				return nil
			})

		m.taskRepo.EXPECT().
			InsertTx(gomock.Any(), tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, task housekeepingModel.Task) error {
				assert.Equal(t, booking.RoomID, task.RoomID)
				assert.Equal(t, housekeepingModel.KindCleaning, task.Kind)
				assert.Equal(t, housekeepingModel.StatusOpen, task.Status)
				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		assert.NoError(t, svc.CheckOut(ctx, booking.ID))
	})

	for _, status := range []model.Status{model.StatusReserved, model.StatusCheckedOut, model.StatusCancelled} {
		t.Run("rejects check-out from "+status.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)

			booking := reservedBooking()
			booking.Status = status

			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			err := svc.CheckOut(context.Background(), booking.ID)

			assert.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("reserved booking cancels and vacates an occupied room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		booking := reservedBooking()

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				return nil
			})
		m.repo.EXPECT().CountActiveCovering(gomock.Any(), booking.RoomID, booking.ID, gomock.Any()).Return(0, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: booking.RoomID, Status: roomModel.StatusOccupied}, nil)
		m.roomRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusVacant, fields[roomModel.FieldStatus])
				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		assert.NoError(t, svc.Cancel(ctx, booking.ID))
	})

	t.Run("room stays occupied while another booking covers today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		booking := reservedBooking()

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.repo.EXPECT().CountActiveCovering(gomock.Any(), booking.RoomID, booking.ID, gomock.Any()).Return(1, nil)

		assert.NoError(t, svc.Cancel(context.Background(), booking.ID))
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		booking := reservedBooking()
		booking.Status = model.StatusCancelled

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		assert.NoError(t, svc.Cancel(context.Background(), booking.ID))
	})

	for _, status := range []model.Status{model.StatusCheckedIn, model.StatusCheckedOut} {
		t.Run("rejects cancel from "+status.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)

			booking := reservedBooking()
			booking.Status = status

			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			err := svc.Cancel(context.Background(), booking.ID)

			assert.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	t.Run("cache miss reads from repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		booking := reservedBooking()

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		res, err := svc.Get(context.Background(), booking.ID)

		assert.NoError(t, err)
		assert.Equal(t, booking.ID, res.ID)
		assert.Equal(t, booking.Code, res.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "nonexistent-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	m.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	m.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Booking{reservedBooking()}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Bookings, 1)
}
