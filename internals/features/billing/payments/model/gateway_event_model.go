// file: internals/features/billing/payments/model/gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = LOG WEBHOOK / CALLBACK PROCESSOR
  - Bisa banyak row per 1 intent (tiap notifikasi)
  - Nyimpen raw payload buat debug / replay.
*/

type GatewayEventStatus string

const (
	GatewayEventStatusReceived GatewayEventStatus = "received"
	GatewayEventStatusSuccess  GatewayEventStatus = "success"
	GatewayEventStatusFailed   GatewayEventStatus = "failed"
	GatewayEventStatusIgnored  GatewayEventStatus = "ignored"
)

type PaymentGatewayEvent struct {
	GatewayEventID       uuid.UUID  `json:"gateway_event_id" gorm:"column:gateway_event_id;type:uuid;primaryKey"`
	GatewayEventIntentID *uuid.UUID `json:"gateway_event_intent_id,omitempty" gorm:"column:gateway_event_intent_id;type:uuid;index"`

	GatewayEventOrderID *string `json:"gateway_event_order_id,omitempty" gorm:"column:gateway_event_order_id;type:varchar(100);index"`
	GatewayEventType    *string `json:"gateway_event_type,omitempty" gorm:"column:gateway_event_type;type:varchar(50)"`

	GatewayEventPayload datatypes.JSON `json:"gateway_event_payload,omitempty" gorm:"column:gateway_event_payload"`

	GatewayEventStatus GatewayEventStatus `json:"gateway_event_status" gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'"`
	GatewayEventError  *string            `json:"gateway_event_error,omitempty" gorm:"column:gateway_event_error;type:text"`

	GatewayEventReceivedAt  time.Time  `json:"gateway_event_received_at" gorm:"column:gateway_event_received_at;autoCreateTime"`
	GatewayEventProcessedAt *time.Time `json:"gateway_event_processed_at,omitempty" gorm:"column:gateway_event_processed_at"`
}

func (PaymentGatewayEvent) TableName() string { return "payment_gateway_events" }

func (e *PaymentGatewayEvent) BeforeCreate(tx *gorm.DB) error {
	if e.GatewayEventID == uuid.Nil {
		e.GatewayEventID = uuid.New()
	}
	return nil
}
