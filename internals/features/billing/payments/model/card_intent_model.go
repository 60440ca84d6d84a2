// file: internals/features/billing/payments/model/card_intent_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL: card_payment_intents
   Satu row = satu percobaan bayar kartu (two-phase).
   Retry tidak memakai ulang intent lama — selalu bikin baru.
========================================================= */

type IntentState string

const (
	IntentStateCreated   IntentState = "created"
	IntentStateConfirmed IntentState = "confirmed"
	IntentStateFailed    IntentState = "failed"
	IntentStateCanceled  IntentState = "canceled"
)

// Terminal: intent tidak lagi menahan channel lock.
func (s IntentState) Terminal() bool {
	return s != IntentStateCreated
}

// Intent 'created' yang lebih tua dari ini dianggap basi (ditinggal caller)
// dan tidak ikut menghitung exclusivity channel.
const IntentStaleAfter = 30 * time.Minute

type CardPaymentIntent struct {
	IntentID        uuid.UUID `json:"intent_id" gorm:"column:intent_id;type:uuid;primaryKey"`
	IntentReceiptID uuid.UUID `json:"intent_receipt_id" gorm:"column:intent_receipt_id;type:uuid;not null;index"`

	// Order ID yang dipakai ke processor; sekaligus identifier intent untuk caller
	IntentOrderID string `json:"intent_order_id" gorm:"column:intent_order_id;type:varchar(100);not null;uniqueIndex"`

	// Wajib sama dengan total kuitansi saat intent dibuat (satuan IDR terkecil)
	IntentAmountIDR int `json:"intent_amount_idr" gorm:"column:intent_amount_idr;not null;check:intent_amount_idr > 0"`

	// Snap token dari processor — opaque client secret untuk sisi client
	IntentClientSecret *string `json:"intent_client_secret,omitempty" gorm:"column:intent_client_secret;type:text"`

	IntentState         IntentState `json:"intent_state" gorm:"column:intent_state;type:varchar(20);not null;default:'created';index"`
	IntentFailureReason *string     `json:"intent_failure_reason,omitempty" gorm:"column:intent_failure_reason;type:text"`

	IntentConfirmedAt *time.Time `json:"intent_confirmed_at,omitempty" gorm:"column:intent_confirmed_at"`

	IntentCreatedAt time.Time `json:"intent_created_at" gorm:"column:intent_created_at;autoCreateTime"`
	IntentUpdatedAt time.Time `json:"intent_updated_at" gorm:"column:intent_updated_at;autoUpdateTime"`
}

func (CardPaymentIntent) TableName() string { return "card_payment_intents" }

func (i *CardPaymentIntent) BeforeCreate(tx *gorm.DB) error {
	if i.IntentID == uuid.Nil {
		i.IntentID = uuid.New()
	}
	return nil
}
