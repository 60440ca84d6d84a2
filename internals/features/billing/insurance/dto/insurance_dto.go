// 📁 dto/insurance_dto.go
package dto

import "github.com/google/uuid"

// ========== REQUEST ==========

type SubmitClaimRequest struct {
	BillID            uuid.UUID `json:"bill_id" validate:"required"`
	AmountIDR         int       `json:"amount" validate:"required,min=1"`
	InsuranceProvider string    `json:"insurance_provider" validate:"required"`
	PolicyNumber      string    `json:"policy_number" validate:"required"`
	ClaimantName      string    `json:"claimant_name" validate:"required"`
	ClaimantID        string    `json:"claimant_id" validate:"required"`
}

type ReviewClaimRequest struct {
	Status string  `json:"status" validate:"required,oneof=approved rejected"`
	Note   *string `json:"note"`
}
