package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/internal/domains/digitalkey/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/logger"
	gRepo "innkeep/shared/repository"
)

type DigitalKey interface {
	Insert(ctx context.Context, model model.DigitalKey) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.DigitalKey, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DigitalKey, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	RevokeByBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.DigitalKey]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) DigitalKey {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.DigitalKey](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

const revokeByBookingQuery = `
UPDATE digital_keys
SET revoked = TRUE, modified_at = NOW(), modified_by = $2
WHERE booking_id = $1
  AND revoked = FALSE`

// RevokeByBookingTx kills every live key of the booking on the caller's
// transaction, so check-out either completes fully or not at all.
func (repo *repositoryImpl) RevokeByBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID, user string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".digital_key.RevokeByBookingTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, revokeByBookingQuery)

	if _, err := tx.ExecContext(ctx, revokeByBookingQuery, bookingID, user); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to revoke digital keys: %w", err)
	}

	return nil
}
