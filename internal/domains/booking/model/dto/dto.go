package dto

import (
	"time"

	"github.com/google/uuid"

	"innkeep/internal/domains/booking/model"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"        validate:"required,uuid4"`
	GuestID      string `json:"guest_id"       validate:"required,uuid4"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Adults       int    `json:"adults"         validate:"required,min=1"`
	Children     int    `json:"children"       validate:"min=0"`
	Prepaid      bool   `json:"prepaid"`
}

// ToModel builds a reserved booking from the request. The confirmation code
// and total amount are filled in by the service once the room is known.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.DayFormat, c.CheckInDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("invalid check-in date: " + c.CheckInDate) //nolint:wrapcheck
	}

	checkOut, err := timezone.Parse(constant.DayFormat, c.CheckOutDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("invalid check-out date: " + c.CheckOutDate) //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return model.Booking{}, failure.InvalidDateRange("check-out date must be after check-in date") //nolint:wrapcheck
	}

	return model.Booking{
		ID:           uuid.NewString(),
		RoomID:       c.RoomID,
		GuestID:      c.GuestID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       c.Adults,
		Children:     c.Children,
		Prepaid:      c.Prepaid,
		Status:       model.StatusReserved,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BookingResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	RoomID       string  `json:"room_id"`
	GuestID      string  `json:"guest_id"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Adults       int     `json:"adults"`
	Children     int     `json:"children"`
	TotalAmount  float64 `json:"total_amount"`
	Prepaid      bool    `json:"prepaid"`
	Status       string  `json:"status"`
	CheckedInAt  string  `json:"checked_in_at,omitempty"`
	CheckedOutAt string  `json:"checked_out_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.RoomID = model.RoomID
	r.GuestID = model.GuestID
	r.CheckInDate = model.CheckInDate.Format(constant.DayFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DayFormat)
	r.Adults = model.Adults
	r.Children = model.Children
	r.TotalAmount = model.TotalAmount
	r.Prepaid = model.Prepaid
	r.Status = model.Status.String()
	r.CheckedInAt = formatOptional(model.CheckedInAt)
	r.CheckedOutAt = formatOptional(model.CheckedOutAt)
	r.Metadata.FromModel(model.Metadata)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
