// file: internals/features/billing/receipts/service/settlement_router.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	intentModel "hospitalku_backend/internals/features/billing/payments/model"
	"hospitalku_backend/internals/features/billing/receipts/model"
)

/* =========================================================
   SETTLEMENT ROUTER
   Satu pintu untuk membuka channel settlement:
   - lock row kuitansi (serialisasi per kuitansi)
   - cek exclusivity: maksimal satu channel non-terminal
   - buat child record channel + (untuk claim/funding) pindah status
   Panggilan keluar ke processor TIDAK terjadi di sini —
   lock hanya dipegang selama pengecekan/penulisan lokal.
========================================================= */

type SettlementHandle struct {
	Channel   model.SettlementChannel `json:"channel"`
	ReceiptID uuid.UUID               `json:"receipt_id"`
	ChildID   uuid.UUID               `json:"child_id"`
	// OrderID terisi hanya untuk channel kartu
	OrderID string              `json:"order_id,omitempty"`
	Status  model.ReceiptStatus `json:"receipt_status"`
}

// Payload per channel. Field identitas channel divalidasi di DTO controller;
// router hanya menjaga invariant status & nominal.
type CardIntentPayload struct {
	AmountIDR int
}

type ClaimPayload struct {
	AmountIDR         int
	InsuranceProvider string
	PolicyNumber      string
	ClaimantName      string
	ClaimantID        string
}

type FundingPayload struct {
	AmountIDR       int
	ProgramType     string
	BeneficiaryID   string
	BeneficiaryName string
	ReferenceNumber *string
}

// InitiateSettlement membuka satu channel settlement untuk kuitansi.
func InitiateSettlement(ctx context.Context, db *gorm.DB, receiptID uuid.UUID,
	ch model.SettlementChannel, payload any, actor *uuid.UUID) (*SettlementHandle, error) {

	if !ch.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Channel settlement tidak dikenal: %s", ch))
	}

	var handle *SettlementHandle
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rcp, err := LockReceipt(tx, receiptID)
		if err != nil {
			return err
		}

		// Kuitansi paid tidak bisa dibuka channel apapun lagi
		if rcp.ReceiptStatus.Terminal() {
			return fiber.NewError(fiber.StatusConflict, "Kuitansi sudah paid")
		}

		// Channel claim/funding hanya sah dari status yang bisa transisi ke targetnya
		if target, ok := ch.ChannelTarget(); ok {
			if !rcp.ReceiptStatus.CanTransition(target) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Kuitansi berstatus %s, tidak bisa masuk %s", rcp.ReceiptStatus, target))
			}
		}

		// Exclusivity: satu channel non-terminal per kuitansi
		if open, found, err := openSettlementChannel(tx, rcp.ReceiptID); err != nil {
			return err
		} else if found {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Masih ada settlement %s yang berjalan untuk kuitansi ini", open))
		}

		switch ch {
		case model.ChannelCard:
			p, ok := payload.(CardIntentPayload)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Payload channel kartu tidak valid")
			}
			// Nominal intent wajib persis total kuitansi — ditolak sebelum kontak processor
			if p.AmountIDR != rcp.ReceiptTotalIDR {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("amount (%d) tidak sama dengan total kuitansi (%d)", p.AmountIDR, rcp.ReceiptTotalIDR))
			}
			intent := intentModel.CardPaymentIntent{
				IntentReceiptID: rcp.ReceiptID,
				IntentOrderID:   fmt.Sprintf("%s-%d", rcp.ReceiptNo, time.Now().UnixNano()),
				IntentAmountIDR: p.AmountIDR,
				IntentState:     intentModel.IntentStateCreated,
			}
			if err := tx.Create(&intent).Error; err != nil {
				return err
			}
			if err := writeAudit(tx, rcp.ReceiptID, model.AuditChannelOpened, nil, nil, actor,
				"card intent dibuka", map[string]any{"order_id": intent.IntentOrderID, "amount_idr": p.AmountIDR}); err != nil {
				return err
			}
			handle = &SettlementHandle{Channel: ch, ReceiptID: rcp.ReceiptID, ChildID: intent.IntentID,
				OrderID: intent.IntentOrderID, Status: rcp.ReceiptStatus}

		case model.ChannelInsurance:
			p, ok := payload.(ClaimPayload)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Payload klaim asuransi tidak valid")
			}
			claim := claimModel.InsuranceClaim{
				ClaimReceiptID:         rcp.ReceiptID,
				ClaimAmountIDR:         p.AmountIDR,
				ClaimInsuranceProvider: p.InsuranceProvider,
				ClaimPolicyNumber:      p.PolicyNumber,
				ClaimClaimantName:      p.ClaimantName,
				ClaimClaimantID:        p.ClaimantID,
				ClaimStatus:            claimModel.ClaimStatusPending,
			}
			if err := tx.Create(&claim).Error; err != nil {
				return err
			}
			if err := TransitionReceipt(tx, rcp, model.ReceiptStatusClaimPending, actor,
				"klaim asuransi diajukan", map[string]any{"claim_id": claim.ClaimID}); err != nil {
				return err
			}
			handle = &SettlementHandle{Channel: ch, ReceiptID: rcp.ReceiptID, ChildID: claim.ClaimID, Status: rcp.ReceiptStatus}

		case model.ChannelFunding:
			p, ok := payload.(FundingPayload)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Payload funding tidak valid")
			}
			fr := fundingModel.FundingRequest{
				FundingReceiptID:       rcp.ReceiptID,
				FundingAmountIDR:       p.AmountIDR,
				FundingProgramType:     p.ProgramType,
				FundingBeneficiaryID:   p.BeneficiaryID,
				FundingBeneficiaryName: p.BeneficiaryName,
				FundingReferenceNumber: p.ReferenceNumber,
				FundingStatus:          fundingModel.FundingStatusPending,
			}
			if err := tx.Create(&fr).Error; err != nil {
				return err
			}
			if err := TransitionReceipt(tx, rcp, model.ReceiptStatusFundingPending, actor,
				"pengajuan bantuan pemerintah", map[string]any{"funding_id": fr.FundingID}); err != nil {
				return err
			}
			handle = &SettlementHandle{Channel: ch, ReceiptID: rcp.ReceiptID, ChildID: fr.FundingID, Status: rcp.ReceiptStatus}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return handle, nil
}

// openSettlementChannel mengembalikan channel yang masih non-terminal (kalau ada).
// Intent 'created' yang sudah basi tidak ikut dihitung.
func openSettlementChannel(tx *gorm.DB, receiptID uuid.UUID) (model.SettlementChannel, bool, error) {
	staleBefore := time.Now().Add(-intentModel.IntentStaleAfter)

	var n int64
	if err := tx.Model(&intentModel.CardPaymentIntent{}).
		Where("intent_receipt_id = ? AND intent_state = ? AND intent_created_at > ?",
			receiptID, intentModel.IntentStateCreated, staleBefore).
		Count(&n).Error; err != nil {
		return "", false, err
	}
	if n > 0 {
		return model.ChannelCard, true, nil
	}

	if err := tx.Model(&claimModel.InsuranceClaim{}).
		Where("claim_receipt_id = ? AND claim_status = ?", receiptID, claimModel.ClaimStatusPending).
		Count(&n).Error; err != nil {
		return "", false, err
	}
	if n > 0 {
		return model.ChannelInsurance, true, nil
	}

	if err := tx.Model(&fundingModel.FundingRequest{}).
		Where("funding_receipt_id = ? AND funding_status = ?", receiptID, fundingModel.FundingStatusPending).
		Count(&n).Error; err != nil {
		return "", false, err
	}
	if n > 0 {
		return model.ChannelFunding, true, nil
	}

	return "", false, nil
}
