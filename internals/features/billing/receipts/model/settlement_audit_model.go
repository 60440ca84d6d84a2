// file: internals/features/billing/receipts/model/settlement_audit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  settlement_audit_logs = JEJAK AUDIT perubahan status / channel settlement
  - append-only, satu row per kejadian
  - payload jsonb buat detail tambahan (reason processor, channel, dsb)
*/

type SettlementAuditAction string

const (
	AuditStatusTransition SettlementAuditAction = "status_transition"
	AuditChannelOpened    SettlementAuditAction = "channel_opened"
	AuditChannelResolved  SettlementAuditAction = "channel_resolved"
	AuditIntentCanceled   SettlementAuditAction = "intent_canceled"
	AuditAdminRevert      SettlementAuditAction = "admin_revert"
	AuditReceiptVoided    SettlementAuditAction = "receipt_voided"
)

type SettlementAuditLog struct {
	AuditID        uuid.UUID `json:"audit_id" gorm:"column:audit_id;type:uuid;primaryKey"`
	AuditReceiptID uuid.UUID `json:"audit_receipt_id" gorm:"column:audit_receipt_id;type:uuid;not null;index"`

	AuditAction     SettlementAuditAction `json:"audit_action" gorm:"column:audit_action;type:varchar(32);not null"`
	AuditFromStatus *ReceiptStatus        `json:"audit_from_status,omitempty" gorm:"column:audit_from_status;type:varchar(20)"`
	AuditToStatus   *ReceiptStatus        `json:"audit_to_status,omitempty" gorm:"column:audit_to_status;type:varchar(20)"`

	AuditActorUserID *uuid.UUID     `json:"audit_actor_user_id,omitempty" gorm:"column:audit_actor_user_id;type:uuid"`
	AuditNote        *string        `json:"audit_note,omitempty" gorm:"column:audit_note;type:text"`
	AuditMeta        datatypes.JSON `json:"audit_meta,omitempty" gorm:"column:audit_meta"`

	AuditCreatedAt time.Time `json:"audit_created_at" gorm:"column:audit_created_at;autoCreateTime"`
}

func (SettlementAuditLog) TableName() string { return "settlement_audit_logs" }

func (a *SettlementAuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.AuditID == uuid.Nil {
		a.AuditID = uuid.New()
	}
	return nil
}
