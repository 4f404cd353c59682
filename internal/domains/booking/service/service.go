package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/repository"
	keyRepo "innkeep/internal/domains/digitalkey/repository"
	guestModel "innkeep/internal/domains/guest/model"
	guestRepo "innkeep/internal/domains/guest/repository"
	housekeepingModel "innkeep/internal/domains/housekeeping/model"
	taskRepo "innkeep/internal/domains/housekeeping/repository"
	invoiceModel "innkeep/internal/domains/invoice/model"
	invoiceRepo "innkeep/internal/domains/invoice/repository"
	roomModel "innkeep/internal/domains/room/model"
	roomRepo "innkeep/internal/domains/room/repository"
	"innkeep/internal/events"
	"innkeep/shared"
	"innkeep/shared/cache"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	cacheRoomPrefix    = "room"
	cacheInvoicePrefix = "invoice"
	cacheTaskPrefix    = "task"

	codeLength        = 8
	maxCodeGeneration = 5
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	roomRepo    roomRepo.Room
	guestRepo   guestRepo.Guest
	keyRepo     keyRepo.DigitalKey
	taskRepo    taskRepo.Task
	invoiceRepo invoiceRepo.Invoice
	publisher   events.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	keyRepo keyRepo.DigitalKey,
	taskRepo taskRepo.Task,
	invoiceRepo invoiceRepo.Invoice,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		guestRepo:   guestRepo,
		keyRepo:     keyRepo,
		taskRepo:    taskRepo,
		invoiceRepo: invoiceRepo,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	guestExists, err := s.guestRepo.Exist(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest existence")

		return res, fmt.Errorf("failed to check guest existence: %w", err)
	}

	if !guestExists {
		return res, failure.NotFound(guestModel.EntityName) //nolint:wrapcheck
	}

	booking.Code, err = s.uniqueCode(ctx, s.cfg.Hotel.CodePrefix, model.FieldCode)
	if err != nil {
		return res, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	room, err := s.roomRepo.LockTx(ctx, tx, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, failure.NotFound(roomModel.EntityName) //nolint:wrapcheck
		}

		return res, err
	}

	overlapping, err := s.repo.FindOverlapping(ctx, tx, room.ID, booking.CheckInDate, booking.CheckOutDate)
	if err != nil {
		return res, err
	}

	if len(overlapping) > 0 {
		return res, failure.RoomUnavailable(room.Number) //nolint:wrapcheck
	}

	booking.TotalAmount = room.NightlyRate * float64(booking.Nights())

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		// The exclusion constraint is the backstop for writers that bypassed
		// the row lock; surface it as the same conflict the overlap check gives.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return res, failure.RoomUnavailable(room.Number) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking")

		return res, fmt.Errorf("failed to commit booking: %w", err)
	}

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingCreated,
		BookingID: booking.ID,
		Code:      booking.Code,
		RoomID:    booking.RoomID,
		GuestID:   booking.GuestID,
		Status:    booking.Status.String(),
	})

	res.FromModel(booking)

	return res, nil
}

// uniqueCode draws prefixed random codes until one is free. Collisions on an
// 8-char alphabet are vanishingly rare, so a handful of attempts is plenty.
func (s *serviceImpl) uniqueCode(ctx context.Context, prefix, field string) (string, error) {
	for range maxCodeGeneration {
		code := shared.GenerateCode(prefix, codeLength)

		taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    field,
					Value:    code,
					Operator: gDto.FilterOperatorEq,
					Table:    model.TableName,
				},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check code uniqueness")

			return constant.Empty, fmt.Errorf("failed to check code uniqueness: %w", err)
		}

		if !taken {
			return code, nil
		}
	}

	return constant.Empty, failure.InternalError(errors.New("failed to generate a unique code")) //nolint:wrapcheck
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusReserved {
		return failure.InvalidTransition(booking.Status.String(), "check in") //nolint:wrapcheck
	}

	now := timezone.Now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        model.StatusCheckedIn,
		model.FieldCheckedInAt:   now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check in booking")

		return fmt.Errorf("failed to check in booking: %w", err)
	}

	err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
		roomModel.FieldStatus:    roomModel.StatusOccupied,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to occupy room")

		return fmt.Errorf("failed to occupy room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit check-in")

		return fmt.Errorf("failed to commit check-in: %w", err)
	}

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingCheckedIn,
		BookingID: booking.ID,
		Code:      booking.Code,
		RoomID:    booking.RoomID,
		GuestID:   booking.GuestID,
		Status:    model.StatusCheckedIn.String(),
	})

	return nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusCheckedIn {
		return failure.InvalidTransition(booking.Status.String(), "check out") //nolint:wrapcheck
	}

	invoiceNumber, err := s.uniqueInvoiceNumber(ctx)
	if err != nil {
		return err
	}

	now := timezone.Now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        model.StatusCheckedOut,
		model.FieldCheckedOutAt:  now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check out booking")

		return fmt.Errorf("failed to check out booking: %w", err)
	}

	// Dirty regardless of what housekeeping thinks. The cleaning task below
	// is what eventually flips it back to vacant.
	err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
		roomModel.FieldStatus:    roomModel.StatusDirty,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to mark room dirty")

		return fmt.Errorf("failed to mark room dirty: %w", err)
	}

	if err = s.keyRepo.RevokeByBookingTx(ctx, tx, booking.ID, user); err != nil {
		return err
	}

	invoice := invoiceModel.Invoice{
		ID:        uuid.NewString(),
		Number:    invoiceNumber,
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		IssuedAt:  now,
		Paid:      booking.Prepaid,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
	if booking.Prepaid {
		invoice.PaidAt = &now
	}

	if err = s.invoiceRepo.InsertTx(ctx, tx, invoice); err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		return fmt.Errorf("failed to create invoice: %w", err)
	}

	task := housekeepingModel.Task{
		ID:     uuid.NewString(),
		RoomID: booking.RoomID,
		Kind:   housekeepingModel.KindCleaning,
		Notes:  "post check-out cleaning for booking " + booking.Code,
		Status: housekeepingModel.StatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.taskRepo.InsertTx(ctx, tx, task); err != nil {
		log.Error().Err(err).Msg("failed to create cleaning task")

		return fmt.Errorf("failed to create cleaning task: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit check-out")

		return fmt.Errorf("failed to commit check-out: %w", err)
	}

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingCheckedOut,
		BookingID: booking.ID,
		Code:      booking.Code,
		RoomID:    booking.RoomID,
		GuestID:   booking.GuestID,
		Status:    model.StatusCheckedOut.String(),
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheInvoicePrefix)
		shared.InvalidateCaches(c, s.cache, cacheTaskPrefix)
	}()

	return nil
}

func (s *serviceImpl) uniqueInvoiceNumber(ctx context.Context) (string, error) {
	for range maxCodeGeneration {
		number := shared.GenerateCode(s.cfg.Hotel.InvoicePrefix, codeLength)

		taken, err := s.invoiceRepo.Exist(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    invoiceModel.FieldNumber,
					Value:    number,
					Operator: gDto.FilterOperatorEq,
					Table:    invoiceModel.TableName,
				},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check invoice number uniqueness")

			return constant.Empty, fmt.Errorf("failed to check invoice number uniqueness: %w", err)
		}

		if !taken {
			return number, nil
		}
	}

	return constant.Empty, failure.InternalError(errors.New("failed to generate a unique invoice number")) //nolint:wrapcheck
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	// Cancelling twice is a no-op, not an error.
	if booking.Status == model.StatusCancelled {
		return nil
	}

	if booking.Status != model.StatusReserved {
		return failure.InvalidTransition(booking.Status.String(), "cancel") //nolint:wrapcheck
	}

	now := timezone.Now()

	err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	// The room only goes vacant when nothing else occupies it today. A later
	// reservation on the same room must not flip a currently occupied room.
	remaining, err := s.repo.CountActiveCovering(ctx, booking.RoomID, booking.ID, timezone.Today())
	if err != nil {
		return err
	}

	if remaining == 0 {
		room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room after cancellation")

			return fmt.Errorf("failed to get room after cancellation: %w", err)
		}

		if room.Status == roomModel.StatusOccupied {
			err = s.roomRepo.Update(ctx, map[string]any{
				roomModel.FieldStatus:    roomModel.StatusVacant,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: user,
			}, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to vacate room")

				return fmt.Errorf("failed to vacate room: %w", err)
			}
		}
	}

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingCancelled,
		BookingID: booking.ID,
		Code:      booking.Code,
		RoomID:    booking.RoomID,
		GuestID:   booking.GuestID,
		Status:    model.StatusCancelled.String(),
	})

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	return booking, nil
}

// afterWrite publishes the lifecycle event and drops stale cache entries,
// both off the request path.
func (s *serviceImpl) afterWrite(ctx context.Context, event events.BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.PublishBookingEvent(c, event); err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish booking event")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, event.BookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheRoomPrefix)
	}()
}
