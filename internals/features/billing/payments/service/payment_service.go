// file: internals/features/billing/payments/service/payment_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospitalku_backend/internals/features/billing/payments/model"
	receiptModel "hospitalku_backend/internals/features/billing/receipts/model"
	receiptService "hospitalku_backend/internals/features/billing/receipts/service"
)

/* =========================================================
   CARD PAYMENT ADAPTER
   Fase 1: CreateIntent  — router buka channel kartu, lalu
           minta snap token ke processor (di luar lock).
   Fase 2: ConfirmIntent — tanya processor, kalau settle:
           intent confirmed + kuitansi paid (idempotent).
========================================================= */

type IntentResult struct {
	IntentID     uuid.UUID `json:"intent_id"`
	OrderID      string    `json:"order_id"`
	ClientSecret string    `json:"client_secret"`
	AmountIDR    int       `json:"amount_idr"`
}

type ConfirmResult struct {
	Success       bool                       `json:"success"`
	IntentState   model.IntentState          `json:"intent_state"`
	ReceiptStatus receiptModel.ReceiptStatus `json:"receipt_status"`
	Reason        string                     `json:"reason,omitempty"`
}

// CreateIntent membuat CardPaymentIntent + snap token processor.
func CreateIntent(ctx context.Context, db *gorm.DB, receiptID uuid.UUID, amountIDR int, actor *uuid.UUID) (*IntentResult, error) {
	// Fase lokal: lock + exclusivity + insert intent, commit dulu.
	handle, err := receiptService.InitiateSettlement(ctx, db, receiptID,
		receiptModel.ChannelCard, receiptService.CardIntentPayload{AmountIDR: amountIDR}, actor)
	if err != nil {
		return nil, err
	}

	// Round trip ke processor TANPA memegang lock apapun.
	desc := fmt.Sprintf("Receipt %s", handle.OrderID)
	secret, gwErr := Client.CreateIntent(handle.OrderID, int64(amountIDR), desc)
	if gwErr != nil {
		// Intent ditinggal sebagai failed; kuitansi tetap pending, retry bikin intent baru.
		reason := gwErr.Error()
		if err := db.WithContext(ctx).Model(&model.CardPaymentIntent{}).
			Where("intent_id = ?", handle.ChildID).
			Updates(map[string]any{
				"intent_state":          model.IntentStateFailed,
				"intent_failure_reason": reason,
			}).Error; err != nil {
			// Kalau gagal, intent 'created' ini memegang channel sampai basi.
			log.Printf("[ERROR] Gagal menandai intent %s failed: %v", handle.ChildID, err)
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "Gagal membuat intent di processor: "+reason)
	}

	if err := db.WithContext(ctx).Model(&model.CardPaymentIntent{}).
		Where("intent_id = ?", handle.ChildID).
		Update("intent_client_secret", secret).Error; err != nil {
		return nil, err
	}

	return &IntentResult{
		IntentID:     handle.ChildID,
		OrderID:      handle.OrderID,
		ClientSecret: secret,
		AmountIDR:    amountIDR,
	}, nil
}

// ConfirmIntent menanyakan hasil charge ke processor lalu menyelesaikan intent.
// Idempotent: confirm ulang intent yang sudah confirmed mengembalikan sukses
// yang sama tanpa menduplikasi transisi paid.
func ConfirmIntent(ctx context.Context, db *gorm.DB, orderID string, actor *uuid.UUID) (*ConfirmResult, error) {
	var intent model.CardPaymentIntent
	if err := db.WithContext(ctx).
		Where("intent_order_id = ?", orderID).
		First(&intent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Intent tidak ditemukan")
		}
		return nil, err
	}

	// Jalur cepat idempotent — tidak perlu tanya processor lagi.
	if intent.IntentState == model.IntentStateConfirmed {
		return &ConfirmResult{Success: true, IntentState: model.IntentStateConfirmed,
			ReceiptStatus: receiptModel.ReceiptStatusPaid}, nil
	}
	if intent.IntentState == model.IntentStateCanceled {
		return nil, fiber.NewError(fiber.StatusConflict, "Intent sudah dibatalkan, buat intent baru")
	}

	// Tanya processor di luar lock, timeout bounded di http client.
	status, reason, gwErr := Client.CheckStatus(orderID)
	if gwErr != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "Processor tidak bisa dihubungi: "+gwErr.Error())
	}

	switch status {
	case GatewayStatusSettled:
		return settleIntent(ctx, db, orderID, actor)

	case GatewayStatusPending:
		return &ConfirmResult{Success: false, IntentState: intent.IntentState,
			Reason: "Pembayaran belum settle di processor"}, nil

	default: // failed
		if err := db.WithContext(ctx).Model(&model.CardPaymentIntent{}).
			Where("intent_order_id = ? AND intent_state = ?", orderID, model.IntentStateCreated).
			Updates(map[string]any{
				"intent_state":          model.IntentStateFailed,
				"intent_failure_reason": reason,
			}).Error; err != nil {
			log.Printf("[ERROR] Gagal menandai intent %s failed: %v", orderID, err)
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "Pembayaran ditolak processor: "+reason)
	}
}

// settleIntent menandai intent confirmed + kuitansi paid dalam satu tx.
// Aman dipanggil berulang (confirm poll & webhook share jalur ini).
func settleIntent(ctx context.Context, db *gorm.DB, orderID string, actor *uuid.UUID) (*ConfirmResult, error) {
	var out *ConfirmResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var intent model.CardPaymentIntent
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("intent_order_id = ?", orderID).
			First(&intent).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Intent tidak ditemukan")
			}
			return err
		}

		// Race antar confirm/webhook: yang kalah lock tinggal lihat hasilnya.
		if intent.IntentState == model.IntentStateConfirmed {
			out = &ConfirmResult{Success: true, IntentState: model.IntentStateConfirmed,
				ReceiptStatus: receiptModel.ReceiptStatusPaid}
			return nil
		}
		if intent.IntentState != model.IntentStateCreated {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Intent berstate %s, tidak bisa dikonfirmasi", intent.IntentState))
		}

		rcp, err := receiptService.LockReceipt(tx, intent.IntentReceiptID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.CardPaymentIntent{}).
			Where("intent_id = ? AND intent_state = ?", intent.IntentID, model.IntentStateCreated).
			Updates(map[string]any{
				"intent_state":        model.IntentStateConfirmed,
				"intent_confirmed_at": now,
			}).Error; err != nil {
			return err
		}

		if err := receiptService.TransitionReceipt(tx, rcp, receiptModel.ReceiptStatusPaid, actor,
			"pembayaran kartu terkonfirmasi", map[string]any{"order_id": orderID}); err != nil {
			return err
		}

		out = &ConfirmResult{Success: true, IntentState: model.IntentStateConfirmed,
			ReceiptStatus: rcp.ReceiptStatus}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelIntent membatalkan intent 'created' secara eksplisit sehingga
// channel kartu langsung terbuka lagi (tanpa menunggu basi).
func CancelIntent(ctx context.Context, db *gorm.DB, orderID string, actor *uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var intent model.CardPaymentIntent
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("intent_order_id = ?", orderID).
			First(&intent).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Intent tidak ditemukan")
			}
			return err
		}
		if intent.IntentState != model.IntentStateCreated {
			return fiber.NewError(fiber.StatusConflict, "Hanya intent 'created' yang bisa dibatalkan")
		}

		if err := tx.Model(&model.CardPaymentIntent{}).
			Where("intent_id = ?", intent.IntentID).
			Update("intent_state", model.IntentStateCanceled).Error; err != nil {
			return err
		}

		return writeIntentAudit(tx, intent.IntentReceiptID, actor, "intent dibatalkan caller",
			map[string]any{"order_id": orderID})
	})
}

// HandleGatewayNotification dipanggil saat menerima webhook dari Midtrans.
// Payload mentah selalu dicatat ke payment_gateway_events dulu.
func HandleGatewayNotification(ctx context.Context, db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)

	event := model.PaymentGatewayEvent{GatewayEventStatus: model.GatewayEventStatusReceived}
	if raw, err := json.Marshal(body); err == nil {
		event.GatewayEventPayload = datatypes.JSON(raw)
	}
	if ok1 {
		event.GatewayEventOrderID = &orderID
	}
	if ok2 {
		event.GatewayEventType = &status
	}
	if err := db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("[ERROR] Gagal mencatat gateway event: %v", err)
	}

	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return finishEvent(db, &event, model.GatewayEventStatusFailed, "invalid payload")
	}

	log.Printf("📄 Webhook order_id=%s status=%s", orderID, status)

	switch status {
	case "capture", "settlement":
		if _, err := settleIntent(ctx, db, orderID, nil); err != nil {
			return finishEvent(db, &event, model.GatewayEventStatusFailed, err.Error())
		}
		return finishEvent(db, &event, model.GatewayEventStatusSuccess, "")

	case "deny", "cancel", "expire", "failure":
		if err := db.WithContext(ctx).Model(&model.CardPaymentIntent{}).
			Where("intent_order_id = ? AND intent_state = ?", orderID, model.IntentStateCreated).
			Updates(map[string]any{
				"intent_state":          model.IntentStateFailed,
				"intent_failure_reason": status,
			}).Error; err != nil {
			return finishEvent(db, &event, model.GatewayEventStatusFailed, err.Error())
		}
		return finishEvent(db, &event, model.GatewayEventStatusSuccess, "")

	default:
		log.Println("[INFO] Status webhook tidak diproses:", status)
		return finishEvent(db, &event, model.GatewayEventStatusIgnored, "")
	}
}

func finishEvent(db *gorm.DB, event *model.PaymentGatewayEvent, st model.GatewayEventStatus, errMsg string) error {
	now := time.Now()
	updates := map[string]any{
		"gateway_event_status":       st,
		"gateway_event_processed_at": now,
	}
	if errMsg != "" {
		updates["gateway_event_error"] = errMsg
	}
	if err := db.Model(&model.PaymentGatewayEvent{}).
		Where("gateway_event_id = ?", event.GatewayEventID).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Gagal update gateway event: %v", err)
	}
	if st == model.GatewayEventStatusFailed && errMsg != "" {
		return fmt.Errorf("webhook gagal diproses: %s", errMsg)
	}
	return nil
}

func writeIntentAudit(tx *gorm.DB, receiptID uuid.UUID, actor *uuid.UUID, note string, meta map[string]any) error {
	entry := receiptModel.SettlementAuditLog{
		AuditReceiptID:   receiptID,
		AuditAction:      receiptModel.AuditIntentCanceled,
		AuditActorUserID: actor,
	}
	entry.AuditNote = &note
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			entry.AuditMeta = datatypes.JSON(b)
		}
	}
	return tx.Create(&entry).Error
}
