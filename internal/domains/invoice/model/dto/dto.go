package dto

import (
	"innkeep/internal/domains/invoice/model"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/timezone"
)

type InvoiceResponse struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	IssuedAt  string  `json:"issued_at"`
	Paid      bool    `json:"paid"`
	PaidAt    string  `json:"paid_at,omitempty"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.Number = model.Number
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.IssuedAt = timezone.Format(model.IssuedAt, constant.DateFormat)
	r.Paid = model.Paid

	r.PaidAt = constant.Empty
	if model.PaidAt != nil {
		r.PaidAt = timezone.Format(*model.PaidAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}
