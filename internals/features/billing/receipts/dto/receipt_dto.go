// file: internals/features/billing/receipts/dto/receipt_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* =========================================================
   REQUEST DTOs (JSON tags = snake_case kolom DB)
========================================================= */

type ReceiptItemInput struct {
	Name string `json:"name" validate:"required"`
	Cost int    `json:"cost" validate:"min=0"`
}

// CreateReceiptRequest: bikin kuitansi baru.
// Total wajib diisi caller dan dicek ulang terhadap jumlah item.
type CreateReceiptRequest struct {
	ReceiptNo   string             `json:"receipt_no"`
	PatientID   uuid.UUID          `json:"patient_id" validate:"required"`
	PatientName string             `json:"patient_name"`
	Services    []ReceiptItemInput `json:"services" validate:"required,min=1,dive"`
	Total       int                `json:"total" validate:"min=0"`
}

// UpdateReceiptRequest: partial update; hanya field non-nil yang dipatch.
type UpdateReceiptRequest struct {
	PatientName *string             `json:"patient_name,omitempty"`
	Services    *[]ReceiptItemInput `json:"services,omitempty" validate:"omitempty,min=1,dive"`
}

// RevertReceiptRequest: alasan revert paid→pending (wajib buat audit).
type RevertReceiptRequest struct {
	Note string `json:"note" validate:"required"`
}
