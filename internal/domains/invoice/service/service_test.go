package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	invoiceMocks "innkeep/internal/domains/invoice/mocks"
	"innkeep/internal/domains/invoice/model"
	"innkeep/internal/domains/invoice/service"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

func newService(ctrl *gomock.Controller) (service.Invoice, *invoiceMocks.MockInvoice, *cacheMocks.MockRedisCache) {
	mockRepo := invoiceMocks.NewMockInvoice(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run off the request path.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func unpaidInvoice() model.Invoice {
	return model.Invoice{
		ID:        "invoice-id",
		Number:    "INV-7HJ2M9QK",
		BookingID: "booking-id",
		Amount:    300,
		IssuedAt:  timezone.Now(),
	}
}

func TestInvoiceService_MarkPaid(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

	t.Run("unpaid invoice is settled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unpaidInvoice(), nil)

		var fields map[string]any

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				fields = updated
				return nil
			})

		err := svc.MarkPaid(ctx, "invoice-id")

		assert.NoError(t, err)
		assert.Equal(t, true, fields[model.FieldPaid])
		assert.NotNil(t, fields[model.FieldPaidAt])
	})

	t.Run("paying twice is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		paid := unpaidInvoice()
		paid.Paid = true

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paid, nil)

		err := svc.MarkPaid(ctx, "invoice-id")

		assert.NoError(t, err)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

		err := svc.MarkPaid(ctx, "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestInvoiceService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unpaidInvoice(), nil)

		res, err := svc.Get(ctx, "invoice-id")

		assert.NoError(t, err)
		assert.Equal(t, "INV-7HJ2M9QK", res.Number)
		assert.Equal(t, float64(300), res.Amount)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

		_, err := svc.Get(ctx, "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestInvoiceService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("lists invoices with totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Invoice{unpaidInvoice()}, nil)

		res, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Invoices, 1)
	})
}
