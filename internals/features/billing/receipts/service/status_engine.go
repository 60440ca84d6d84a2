// file: internals/features/billing/receipts/service/status_engine.go
package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	intentModel "hospitalku_backend/internals/features/billing/payments/model"
	"hospitalku_backend/internals/features/billing/receipts/model"
)

/* =========================================================
   STATUS ENGINE
   Satu-satunya jalur tulis untuk receipt_status.
   - Pakai tabel transisi di model.ReceiptStatus
   - Tulis status via conditional UPDATE (CAS terhadap status lama)
   - Tiap perpindahan dicatat ke settlement_audit_logs
========================================================= */

// LockReceipt mengambil row kuitansi dengan FOR UPDATE di dalam tx.
func LockReceipt(tx *gorm.DB, receiptID uuid.UUID) (*model.Receipt, error) {
	var rcp model.Receipt
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("receipt_id = ?", receiptID).
		First(&rcp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kuitansi tidak ditemukan")
		}
		return nil, err
	}
	return &rcp, nil
}

// TransitionReceipt memindahkan status kuitansi (harus dipanggil di dalam tx
// yang sudah memegang lock row kuitansi). Transisi ilegal → 409.
func TransitionReceipt(tx *gorm.DB, rcp *model.Receipt, to model.ReceiptStatus, actor *uuid.UUID, note string, meta map[string]any) error {
	from := rcp.ReceiptStatus
	if !from.CanTransition(to) {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Transisi status %s → %s tidak diizinkan", from, to))
	}

	// CAS: hanya menang kalau status di DB masih sama dengan yang kita baca.
	res := tx.Model(&model.Receipt{}).
		Where("receipt_id = ? AND receipt_status = ?", rcp.ReceiptID, from).
		Update("receipt_status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "Status kuitansi berubah oleh request lain, silakan ulangi")
	}

	rcp.ReceiptStatus = to
	return writeAudit(tx, rcp.ReceiptID, model.AuditStatusTransition, &from, &to, actor, note, meta)
}

// AdminRevertToPending membuka kuitansi paid kembali ke pending.
// Operasi khusus admin: selalu dicatat, dan semua record settlement yang
// masih menganggap kuitansi ini lunas ikut di-void.
func AdminRevertToPending(db *gorm.DB, receiptID uuid.UUID, actor *uuid.UUID, note string) (*model.Receipt, error) {
	var out *model.Receipt
	err := db.Transaction(func(tx *gorm.DB) error {
		rcp, err := LockReceipt(tx, receiptID)
		if err != nil {
			return err
		}
		if rcp.ReceiptStatus != model.ReceiptStatusPaid {
			return fiber.NewError(fiber.StatusConflict, "Hanya kuitansi paid yang bisa di-revert")
		}

		from := rcp.ReceiptStatus
		to := model.ReceiptStatusPending
		res := tx.Model(&model.Receipt{}).
			Where("receipt_id = ? AND receipt_status = ?", rcp.ReceiptID, from).
			Update("receipt_status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Status kuitansi berubah oleh request lain, silakan ulangi")
		}
		rcp.ReceiptStatus = to

		// Void semua record settlement yang masih menandai lunas
		if err := tx.Model(&intentModel.CardPaymentIntent{}).
			Where("intent_receipt_id = ? AND intent_state IN ?", rcp.ReceiptID,
				[]intentModel.IntentState{intentModel.IntentStateCreated, intentModel.IntentStateConfirmed}).
			Update("intent_state", intentModel.IntentStateCanceled).Error; err != nil {
			return err
		}
		if err := tx.Model(&claimModel.InsuranceClaim{}).
			Where("claim_receipt_id = ? AND claim_status IN ?", rcp.ReceiptID,
				[]claimModel.ClaimStatus{claimModel.ClaimStatusPending, claimModel.ClaimStatusApproved}).
			Update("claim_status", claimModel.ClaimStatusVoided).Error; err != nil {
			return err
		}
		if err := tx.Model(&fundingModel.FundingRequest{}).
			Where("funding_receipt_id = ? AND funding_status IN ?", rcp.ReceiptID,
				[]fundingModel.FundingStatus{fundingModel.FundingStatusPending, fundingModel.FundingStatusApproved}).
			Update("funding_status", fundingModel.FundingStatusVoided).Error; err != nil {
			return err
		}

		log.Printf("[AUDIT] admin revert receipt=%s actor=%v", rcp.ReceiptNo, actor)
		if err := writeAudit(tx, rcp.ReceiptID, model.AuditAdminRevert, &from, &to, actor, note, nil); err != nil {
			return err
		}

		out = rcp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteVoidAudit mencatat penghapusan kuitansi (child record ikut di-void).
func WriteVoidAudit(tx *gorm.DB, receiptID uuid.UUID, actor *uuid.UUID) error {
	return writeAudit(tx, receiptID, model.AuditReceiptVoided, nil, nil, actor,
		"kuitansi dihapus, child record di-void", nil)
}

func writeAudit(tx *gorm.DB, receiptID uuid.UUID, action model.SettlementAuditAction,
	from, to *model.ReceiptStatus, actor *uuid.UUID, note string, meta map[string]any) error {

	entry := model.SettlementAuditLog{
		AuditReceiptID:   receiptID,
		AuditAction:      action,
		AuditFromStatus:  from,
		AuditToStatus:    to,
		AuditActorUserID: actor,
	}
	if note != "" {
		entry.AuditNote = &note
	}
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			entry.AuditMeta = datatypes.JSON(b)
		}
	}
	return tx.Create(&entry).Error
}
