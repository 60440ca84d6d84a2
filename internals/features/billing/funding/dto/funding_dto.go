// 📁 dto/funding_dto.go
package dto

import "github.com/google/uuid"

// ========== REQUEST ==========

type SubmitFundingRequest struct {
	BillID          uuid.UUID `json:"bill_id" validate:"required"`
	AmountIDR       int       `json:"amount" validate:"required,min=1"`
	ProgramType     string    `json:"program_type" validate:"required"`
	BeneficiaryID   string    `json:"beneficiary_id" validate:"required"`
	BeneficiaryName string    `json:"beneficiary_name" validate:"required"`
	ReferenceNumber *string   `json:"reference_number"`
}

type ReviewFundingRequest struct {
	Status string  `json:"status" validate:"required,oneof=approved rejected"`
	Note   *string `json:"note"`
}
