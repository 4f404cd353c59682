package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	taskMocks "innkeep/internal/domains/housekeeping/mocks"
	"innkeep/internal/domains/housekeeping/model"
	"innkeep/internal/domains/housekeeping/model/dto"
	"innkeep/internal/domains/housekeeping/service"
	roomMocks "innkeep/internal/domains/room/mocks"
	roomModel "innkeep/internal/domains/room/model"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

func newService(ctrl *gomock.Controller) (service.Task, *taskMocks.MockTask, *roomMocks.MockRoom) {
	mockRepo := taskMocks.NewMockTask(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run off the request path.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockRoomRepo
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

	t.Run("cleaning task is created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockRoomRepo := newService(ctrl)

		mockRoomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		var inserted model.Task

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task model.Task) error {
				inserted = task
				return nil
			})

		err := svc.Create(ctx, dto.CreateTaskRequest{RoomID: "room-id", Kind: "cleaning"})

		assert.NoError(t, err)
		assert.Equal(t, model.KindCleaning, inserted.Kind)
		assert.Equal(t, model.StatusOpen, inserted.Status)
	})

	t.Run("maintenance task takes the room out of service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockRoomRepo := newService(ctrl)

		mockRoomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		var fields map[string]any

		mockRoomRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				fields = updated
				return nil
			})

		err := svc.Create(ctx, dto.CreateTaskRequest{RoomID: "room-id", Kind: "maintenance"})

		assert.NoError(t, err)
		assert.Equal(t, roomModel.StatusMaintenance, fields[roomModel.FieldStatus])
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _ := newService(ctrl)

		err := svc.Create(ctx, dto.CreateTaskRequest{RoomID: "room-id", Kind: "inspection"})

		assert.Error(t, err)
	})

	t.Run("unknown room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockRoomRepo := newService(ctrl)

		mockRoomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Create(ctx, dto.CreateTaskRequest{RoomID: "missing-id", Kind: "cleaning"})

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

	t.Run("finishing a cleaning vacates the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockRoomRepo := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Kind: model.KindCleaning, Status: model.StatusOpen}, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		var fields map[string]any

		mockRoomRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				fields = updated
				return nil
			})

		err := svc.Update(ctx, dto.UpdateTaskRequest{Status: "done"}, "task-id")

		assert.NoError(t, err)
		assert.Equal(t, roomModel.StatusVacant, fields[roomModel.FieldStatus])
	})

	t.Run("finishing a maintenance task leaves the room alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Kind: model.KindMaintenance, Status: model.StatusOpen}, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(ctx, dto.UpdateTaskRequest{Status: "done"}, "task-id")

		assert.NoError(t, err)
	})

	t.Run("unknown task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Task{}, nil)

		err := svc.Update(ctx, dto.UpdateTaskRequest{Notes: "check minibar"}, "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("existing task is deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(ctx, "task-id")

		assert.NoError(t, err)
	})

	t.Run("unknown task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _ := newService(ctrl)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(ctx, "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}
