package dto

import (
	"github.com/google/uuid"

	"innkeep/internal/domains/housekeeping/model"
	"innkeep/shared"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateTaskRequest struct {
	RoomID   string `json:"room_id"  validate:"required,uuid4"`
	Kind     string `json:"kind"     validate:"required"`
	Notes    string `json:"notes"    validate:"omitempty,max=500"`
	Assignee string `json:"assignee" validate:"omitempty,max=100"`
}

func (c *CreateTaskRequest) ToModel(kind model.Kind, user string) model.Task {
	return model.Task{
		ID:       uuid.NewString(),
		RoomID:   c.RoomID,
		Kind:     kind,
		Notes:    c.Notes,
		Status:   model.StatusOpen,
		Assignee: c.Assignee,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTaskRequest struct {
	Notes    string `db:"notes"    json:"notes"    validate:"omitempty,max=500"`
	Status   string `db:"status"   json:"status"   validate:"omitempty"`
	Assignee string `db:"assignee" json:"assignee" validate:"omitempty,max=100"`
}

type TaskResponse struct {
	ID       string `json:"id"`
	RoomID   string `json:"room_id"`
	Kind     string `json:"kind"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
	gDto.Metadata
}

func (r *TaskResponse) FromModel(model model.Task) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Kind = model.Kind.String()
	r.Notes = model.Notes
	r.Status = model.Status.String()
	r.Assignee = model.Assignee
	r.Metadata.FromModel(model.Metadata)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTasksResponse) FromModels(models []model.Task, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tasks = make([]TaskResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod)
	}
}
