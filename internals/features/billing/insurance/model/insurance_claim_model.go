// file: internals/features/billing/insurance/model/insurance_claim_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL: insurance_claims (klaim asuransi pihak ketiga)
========================================================= */

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
	// voided hanya dipakai admin revert kuitansi paid
	ClaimStatusVoided ClaimStatus = "voided"
)

func (s ClaimStatus) Terminal() bool { return s != ClaimStatusPending }

type InsuranceClaim struct {
	ClaimID        uuid.UUID `json:"claim_id" gorm:"column:claim_id;type:uuid;primaryKey"`
	ClaimReceiptID uuid.UUID `json:"claim_receipt_id" gorm:"column:claim_receipt_id;type:uuid;not null;index"`

	ClaimAmountIDR int `json:"claim_amount_idr" gorm:"column:claim_amount_idr;not null;check:claim_amount_idr > 0"`

	ClaimInsuranceProvider string `json:"claim_insurance_provider" gorm:"column:claim_insurance_provider;type:varchar(100);not null"`
	ClaimPolicyNumber      string `json:"claim_policy_number" gorm:"column:claim_policy_number;type:varchar(60);not null"`
	ClaimClaimantName      string `json:"claim_claimant_name" gorm:"column:claim_claimant_name;type:varchar(100);not null"`
	ClaimClaimantID        string `json:"claim_claimant_id" gorm:"column:claim_claimant_id;type:varchar(40);not null"`

	ClaimStatus ClaimStatus `json:"claim_status" gorm:"column:claim_status;type:varchar(20);not null;default:'pending';index"`

	// Review admin
	ClaimReviewedBy *uuid.UUID `json:"claim_reviewed_by,omitempty" gorm:"column:claim_reviewed_by;type:uuid"`
	ClaimReviewedAt *time.Time `json:"claim_reviewed_at,omitempty" gorm:"column:claim_reviewed_at"`
	ClaimNote       *string    `json:"claim_note,omitempty" gorm:"column:claim_note;type:text"`

	ClaimCreatedAt time.Time `json:"claim_created_at" gorm:"column:claim_created_at;autoCreateTime"`
	ClaimUpdatedAt time.Time `json:"claim_updated_at" gorm:"column:claim_updated_at;autoUpdateTime"`
}

func (InsuranceClaim) TableName() string { return "insurance_claims" }

func (cl *InsuranceClaim) BeforeCreate(tx *gorm.DB) error {
	if cl.ClaimID == uuid.Nil {
		cl.ClaimID = uuid.New()
	}
	return nil
}
