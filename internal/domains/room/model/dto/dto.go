package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"innkeep/internal/domains/room/model"
	"innkeep/shared"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateRoomRequest struct {
	Number     string `json:"number"       validate:"required,max=10"`
	Floor      int    `json:"floor"        validate:"min=0"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid4"`

	Image     *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-" validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user, imageURL string) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		Number:     c.Number,
		Floor:      c.Floor,
		Status:     model.StatusVacant,
		RoomTypeID: c.RoomTypeID,
		Image:      imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number     string `db:"number"       json:"number"       validate:"omitempty,max=10"`
	Floor      int    `db:"floor"        json:"floor"        validate:"omitempty,min=0"`
	Status     string `db:"status"       json:"status"       validate:"omitempty"`
	RoomTypeID string `db:"room_type_id" json:"room_type_id" validate:"omitempty,uuid4"`

	Image     *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-" validate:"omitempty"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=vacant occupied dirty maintenance"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	Floor       int     `json:"floor"`
	Status      string  `json:"status"`
	RoomTypeID  string  `json:"room_type_id"`
	TypeName    string  `json:"type_name"`
	Capacity    int     `json:"capacity"`
	NightlyRate float64 `json:"nightly_rate"`
	Image       string  `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Floor = model.Floor
	r.Status = model.Status.String()
	r.RoomTypeID = model.RoomTypeID
	r.TypeName = model.TypeName
	r.Capacity = model.Capacity
	r.NightlyRate = model.NightlyRate
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
