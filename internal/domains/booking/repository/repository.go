package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/internal/domains/booking/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/logger"
	gRepo "innkeep/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	FindOverlapping(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error)
	CountActiveCovering(ctx context.Context, roomID, excludeID string, day time.Time) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const overlapQuery = `
SELECT id, code, room_id, guest_id, check_in_date, check_out_date, adults, children,
       total_amount, prepaid, status, checked_in_at, checked_out_at,
       created_at, modified_at, created_by, modified_by
FROM bookings
WHERE room_id = $1
  AND status IN ('reserved', 'checked_in')
  AND check_in_date < $3
  AND check_out_date > $2`

// FindOverlapping returns active bookings for the room intersecting the
// half-open range [checkIn, checkOut). It runs on the caller's transaction so
// the availability check and the subsequent insert observe the same snapshot.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapping")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, overlapQuery)

	var bookings []model.Booking

	if err := tx.SelectContext(ctx, &bookings, overlapQuery, roomID, checkIn, checkOut); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return bookings, nil
}

const activeCoveringQuery = `
SELECT COUNT(id)
FROM bookings
WHERE room_id = $1
  AND id != $2
  AND status IN ('reserved', 'checked_in')
  AND check_in_date <= $3
  AND check_out_date > $3`

// CountActiveCovering counts active bookings for the room, other than the
// excluded one, whose stay covers the given day. Used to decide whether a
// room goes vacant after a cancellation.
func (repo *repositoryImpl) CountActiveCovering(ctx context.Context, roomID, excludeID string, day time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountActiveCovering")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, activeCoveringQuery)

	var count int

	if err := repo.db.Read.GetContext(ctx, &count, activeCoveringQuery, roomID, excludeID, day); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}

	return count, nil
}
