// 📁 dto/payment_dto.go
package dto

import "github.com/google/uuid"

// ========== REQUEST ==========

type CreateIntentRequest struct {
	BillID    uuid.UUID `json:"bill_id" validate:"required"`
	AmountIDR int       `json:"amount" validate:"required,min=1"`
}

type ConfirmIntentRequest struct {
	OrderID string `json:"intent_id" validate:"required"`
}

type CancelIntentRequest struct {
	OrderID string `json:"intent_id" validate:"required"`
}
