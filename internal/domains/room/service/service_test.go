package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	s3Mocks "innkeep/infras/s3/mocks"
	roomMocks "innkeep/internal/domains/room/mocks"
	"innkeep/internal/domains/room/model"
	"innkeep/internal/domains/room/model/dto"
	"innkeep/internal/domains/room/service"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

type serviceMocks struct {
	repo         *roomMocks.MockRoom
	roomTypeRepo *roomMocks.MockRoomType
	cache        *cacheMocks.MockRedisCache
	s3           *s3Mocks.MockS3
}

func newService(ctrl *gomock.Controller) (service.Room, *serviceMocks) {
	m := &serviceMocks{
		repo:         roomMocks.NewMockRoom(ctrl),
		roomTypeRepo: roomMocks.NewMockRoomType(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run off the request path.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.roomTypeRepo, cfg, m.cache, mocks.NewOtel(), m.s3)

	return svc, m
}

func TestRoomService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

	t.Run("room without image is created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		var inserted model.Room

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				inserted = room
				return nil
			})

		err := svc.Create(ctx, dto.CreateRoomRequest{Number: "101", Floor: 1, RoomTypeID: "room-type-id"})

		assert.NoError(t, err)
		assert.Equal(t, "101", inserted.Number)
		assert.Equal(t, model.StatusVacant, inserted.Status)
	})

	t.Run("unknown room type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Create(ctx, dto.CreateRoomRequest{Number: "101", RoomTypeID: "missing-id"})

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_UpdateStatus(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

	t.Run("valid status is applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		var fields map[string]any

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				fields = updated
				return nil
			})

		err := svc.UpdateStatus(ctx, "room-id", "maintenance")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newService(ctrl)

		err := svc.UpdateStatus(ctx, "room-id", "refurbishing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.UpdateStatus(ctx, "missing-id", "vacant")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", Number: "101", Status: model.StatusVacant, NightlyRate: 100}, nil)

		res, err := svc.Get(ctx, "room-id")

		assert.NoError(t, err)
		assert.Equal(t, "101", res.Number)
		assert.Equal(t, float64(100), res.NightlyRate)
	})

	t.Run("unknown room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(ctx, "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_DeleteRoomType(t *testing.T) {
	ctx := context.Background()

	t.Run("unreferenced room type is deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.roomTypeRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.DeleteRoomType(ctx, "room-type-id")

		assert.NoError(t, err)
	})

	t.Run("room type still assigned to rooms", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.DeleteRoomType(ctx, "room-type-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown room type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.DeleteRoomType(ctx, "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}
