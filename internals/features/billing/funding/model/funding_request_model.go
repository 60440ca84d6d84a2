// file: internals/features/billing/funding/model/funding_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL: funding_requests (pengajuan bantuan pemerintah)
   Lifecycle-nya mirror insurance_claims.
========================================================= */

type FundingStatus string

const (
	FundingStatusPending  FundingStatus = "pending"
	FundingStatusApproved FundingStatus = "approved"
	FundingStatusRejected FundingStatus = "rejected"
	FundingStatusVoided   FundingStatus = "voided"
)

func (s FundingStatus) Terminal() bool { return s != FundingStatusPending }

type FundingRequest struct {
	FundingID        uuid.UUID `json:"funding_id" gorm:"column:funding_id;type:uuid;primaryKey"`
	FundingReceiptID uuid.UUID `json:"funding_receipt_id" gorm:"column:funding_receipt_id;type:uuid;not null;index"`

	FundingAmountIDR int `json:"funding_amount_idr" gorm:"column:funding_amount_idr;not null;check:funding_amount_idr > 0"`

	FundingProgramType     string  `json:"funding_program_type" gorm:"column:funding_program_type;type:varchar(40);not null"`
	FundingBeneficiaryID   string  `json:"funding_beneficiary_id" gorm:"column:funding_beneficiary_id;type:varchar(40);not null"`
	FundingBeneficiaryName string  `json:"funding_beneficiary_name" gorm:"column:funding_beneficiary_name;type:varchar(100);not null"`
	FundingReferenceNumber *string `json:"funding_reference_number,omitempty" gorm:"column:funding_reference_number;type:varchar(60)"`

	FundingStatus FundingStatus `json:"funding_status" gorm:"column:funding_status;type:varchar(20);not null;default:'pending';index"`

	FundingReviewedBy *uuid.UUID `json:"funding_reviewed_by,omitempty" gorm:"column:funding_reviewed_by;type:uuid"`
	FundingReviewedAt *time.Time `json:"funding_reviewed_at,omitempty" gorm:"column:funding_reviewed_at"`
	FundingNote       *string    `json:"funding_note,omitempty" gorm:"column:funding_note;type:text"`

	FundingCreatedAt time.Time `json:"funding_created_at" gorm:"column:funding_created_at;autoCreateTime"`
	FundingUpdatedAt time.Time `json:"funding_updated_at" gorm:"column:funding_updated_at;autoUpdateTime"`
}

func (FundingRequest) TableName() string { return "funding_requests" }

func (f *FundingRequest) BeforeCreate(tx *gorm.DB) error {
	if f.FundingID == uuid.Nil {
		f.FundingID = uuid.New()
	}
	return nil
}
