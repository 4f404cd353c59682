package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	bookingModel "innkeep/internal/domains/booking/model"
	bookingRepo "innkeep/internal/domains/booking/repository"
	"innkeep/internal/domains/digitalkey/model"
	"innkeep/internal/domains/digitalkey/model/dto"
	"innkeep/internal/domains/digitalkey/repository"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type DigitalKey interface {
	Issue(ctx context.Context, req dto.IssueKeyRequest) (dto.DigitalKeyResponse, error)
	Revoke(ctx context.Context, id string) error
	Validate(ctx context.Context, token string) (dto.ValidateKeyResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.GetKeysResponse, error)
}

type serviceImpl struct {
	repo        repository.DigitalKey
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.DigitalKey, bookingRepo bookingRepo.Booking, cfg *config.Config, otel otel.Otel) DigitalKey {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

// Issue mints a key for a checked-in booking. A guest who has not arrived,
// or already left, gets nothing.
func (s *serviceImpl) Issue(ctx context.Context, req dto.IssueKeyRequest) (res dto.DigitalKeyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Issue")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(bookingModel.EntityName) //nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusCheckedIn {
		return res, failure.InvalidTransition(booking.Status.String(), "issue a key for") //nolint:wrapcheck
	}

	now := timezone.Now()

	key := model.DigitalKey{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		ExpiresAt: now.Add(time.Duration(s.cfg.Hotel.KeyTTLHours) * time.Hour),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.Insert(ctx, key); err != nil {
		log.Error().Err(err).Msg("failed to issue digital key")

		return res, fmt.Errorf("failed to issue digital key: %w", err)
	}

	res.FromModel(key)

	return res, nil
}

// Revoke disables the key. Revoking an already revoked key succeeds quietly.
func (s *serviceImpl) Revoke(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revoke")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	key, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get digital key")

		return fmt.Errorf("failed to get digital key: %w", err)
	}

	if key.ID == constant.Empty {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	if key.Revoked {
		return nil
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldRevoked:       true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to revoke digital key")

		return fmt.Errorf("failed to revoke digital key: %w", err)
	}

	return nil
}

func (s *serviceImpl) Validate(ctx context.Context, token string) (res dto.ValidateKeyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Validate")
	defer scope.End()
	defer scope.TraceIfError(err)

	key, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldToken,
				Value:    token,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to look up digital key")

		return res, fmt.Errorf("failed to look up digital key: %w", err)
	}

	if key.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	res.Valid = key.Usable(timezone.Now())

	switch {
	case res.Valid:
		res.RoomID = key.RoomID
	case key.Revoked:
		res.Reason = dto.KeyInvalidReasonRevoked
	default:
		res.Reason = dto.KeyInvalidReasonExpired
	}

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.GetKeysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	keys, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get digital keys")

		return res, fmt.Errorf("failed to get digital keys: %w", err)
	}

	res.FromModels(keys)

	return res, nil
}
