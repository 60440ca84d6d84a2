// file: internals/features/billing/receipts/service/channel_review.go
package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	"hospitalku_backend/internals/features/billing/receipts/model"
)

/* =========================================================
   REVIEW CHANNEL (aksi admin)
   approve → kuitansi paid; reject → kembali pending dan
   channel lock terbuka lagi untuk jalur settlement lain.
========================================================= */

// ReviewClaim memutuskan klaim asuransi. Klaim approved bersifat final.
func ReviewClaim(ctx context.Context, db *gorm.DB, claimID uuid.UUID,
	approve bool, actor *uuid.UUID, note *string) (*claimModel.InsuranceClaim, error) {

	var out *claimModel.InsuranceClaim
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var claim claimModel.InsuranceClaim
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", claimID).
			First(&claim).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Klaim tidak ditemukan")
			}
			return err
		}
		if claim.ClaimStatus != claimModel.ClaimStatusPending {
			return fiber.NewError(fiber.StatusConflict, "Klaim sudah diputuskan dan tidak bisa diubah")
		}

		rcp, err := LockReceipt(tx, claim.ClaimReceiptID)
		if err != nil {
			return err
		}

		now := time.Now()
		claim.ClaimReviewedBy = actor
		claim.ClaimReviewedAt = &now
		claim.ClaimNote = note

		if approve {
			claim.ClaimStatus = claimModel.ClaimStatusApproved
			if err := TransitionReceipt(tx, rcp, model.ReceiptStatusPaid, actor,
				"klaim asuransi disetujui", map[string]any{"claim_id": claim.ClaimID}); err != nil {
				return err
			}
		} else {
			claim.ClaimStatus = claimModel.ClaimStatusRejected
			if err := TransitionReceipt(tx, rcp, model.ReceiptStatusPending, actor,
				"klaim asuransi ditolak", map[string]any{"claim_id": claim.ClaimID}); err != nil {
				return err
			}
		}

		if err := tx.Save(&claim).Error; err != nil {
			return err
		}
		if err := writeAudit(tx, rcp.ReceiptID, model.AuditChannelResolved, nil, nil, actor,
			"review klaim", map[string]any{"claim_id": claim.ClaimID, "claim_status": claim.ClaimStatus}); err != nil {
			return err
		}

		out = &claim
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewFunding memutuskan pengajuan bantuan pemerintah (mirror ReviewClaim).
func ReviewFunding(ctx context.Context, db *gorm.DB, fundingID uuid.UUID,
	approve bool, actor *uuid.UUID, note *string) (*fundingModel.FundingRequest, error) {

	var out *fundingModel.FundingRequest
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fr fundingModel.FundingRequest
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("funding_id = ?", fundingID).
			First(&fr).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Pengajuan funding tidak ditemukan")
			}
			return err
		}
		if fr.FundingStatus != fundingModel.FundingStatusPending {
			return fiber.NewError(fiber.StatusConflict, "Pengajuan sudah diputuskan dan tidak bisa diubah")
		}

		rcp, err := LockReceipt(tx, fr.FundingReceiptID)
		if err != nil {
			return err
		}

		now := time.Now()
		fr.FundingReviewedBy = actor
		fr.FundingReviewedAt = &now
		fr.FundingNote = note

		if approve {
			fr.FundingStatus = fundingModel.FundingStatusApproved
			if err := TransitionReceipt(tx, rcp, model.ReceiptStatusPaid, actor,
				"funding disetujui", map[string]any{"funding_id": fr.FundingID}); err != nil {
				return err
			}
		} else {
			fr.FundingStatus = fundingModel.FundingStatusRejected
			if err := TransitionReceipt(tx, rcp, model.ReceiptStatusPending, actor,
				"funding ditolak", map[string]any{"funding_id": fr.FundingID}); err != nil {
				return err
			}
		}

		if err := tx.Save(&fr).Error; err != nil {
			return err
		}
		if err := writeAudit(tx, rcp.ReceiptID, model.AuditChannelResolved, nil, nil, actor,
			"review funding", map[string]any{"funding_id": fr.FundingID, "funding_status": fr.FundingStatus}); err != nil {
			return err
		}

		out = &fr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
