package dto

import (
	"innkeep/internal/domains/digitalkey/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/timezone"
)

type IssueKeyRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type DigitalKeyResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	ExpiresAt string `json:"expires_at"`
	Revoked   bool   `json:"revoked"`
	gDto.Metadata
}

func (r *DigitalKeyResponse) FromModel(model model.DigitalKey) {
	r.ID = model.ID
	r.Token = model.Token
	r.BookingID = model.BookingID
	r.RoomID = model.RoomID
	r.ExpiresAt = timezone.Format(model.ExpiresAt, constant.DateFormat)
	r.Revoked = model.Revoked
	r.Metadata.FromModel(model.Metadata)
}

const (
	KeyInvalidReasonRevoked = "revoked"
	KeyInvalidReasonExpired = "expired"
)

type ValidateKeyResponse struct {
	Valid  bool   `json:"valid"`
	RoomID string `json:"room_id,omitempty"`
	// Reason is set when the key is not valid: "revoked" or "expired".
	Reason string `json:"reason,omitempty"`
}

type GetKeysResponse struct {
	Keys []DigitalKeyResponse `json:"keys"`
}

func (r *GetKeysResponse) FromModels(models []model.DigitalKey) {
	r.Keys = make([]DigitalKeyResponse, len(models))
	for i, mod := range models {
		r.Keys[i].FromModel(mod)
	}
}
