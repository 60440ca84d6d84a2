// file: internals/features/billing/receipts/model/receipt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================
   MODEL: receipts (akar billing)
================================ */

type Receipt struct {
	ReceiptID uuid.UUID `json:"receipt_id" gorm:"column:receipt_id;type:uuid;primaryKey"`

	// Nomor kuitansi unik, boleh dikasih caller; digenerate jika kosong
	ReceiptNo string `json:"receipt_no" gorm:"column:receipt_no;type:varchar(50);not null;uniqueIndex"`

	// Referensi pasien (collaborator patient-management) + snapshot nama
	ReceiptPatientID   uuid.UUID `json:"receipt_patient_id" gorm:"column:receipt_patient_id;type:uuid;not null;index"`
	ReceiptPatientName string    `json:"receipt_patient_name" gorm:"column:receipt_patient_name;type:varchar(100);not null"`

	// Total selalu dihitung ulang dari item; tidak pernah diinput bebas
	ReceiptTotalIDR int    `json:"receipt_total_idr" gorm:"column:receipt_total_idr;not null;check:receipt_total_idr >= 0"`
	ReceiptCurrency string `json:"receipt_currency" gorm:"column:receipt_currency;type:varchar(8);not null;default:IDR"`

	ReceiptStatus ReceiptStatus `json:"receipt_status" gorm:"column:receipt_status;type:varchar(20);not null;default:'pending';index"`

	// Atribusi pembuat
	ReceiptCreatedBy *uuid.UUID `json:"receipt_created_by,omitempty" gorm:"column:receipt_created_by;type:uuid"`

	ReceiptItems []ReceiptItem `json:"receipt_items,omitempty" gorm:"foreignKey:ReceiptItemReceiptID;references:ReceiptID"`

	ReceiptCreatedAt time.Time      `json:"receipt_created_at" gorm:"column:receipt_created_at;autoCreateTime"`
	ReceiptUpdatedAt time.Time      `json:"receipt_updated_at" gorm:"column:receipt_updated_at;autoUpdateTime"`
	ReceiptDeletedAt gorm.DeletedAt `json:"receipt_deleted_at,omitempty" gorm:"column:receipt_deleted_at;index"`
}

func (Receipt) TableName() string { return "receipts" }

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ReceiptID == uuid.Nil {
		r.ReceiptID = uuid.New()
	}
	return nil
}

// SumItems menjumlahkan biaya seluruh item.
func (r *Receipt) SumItems() int {
	total := 0
	for _, it := range r.ReceiptItems {
		total += it.ReceiptItemCostIDR
	}
	return total
}

/* ================================
   MODEL: receipt_items (layanan)
================================ */

type ReceiptItem struct {
	ReceiptItemID        uuid.UUID `json:"receipt_item_id" gorm:"column:receipt_item_id;type:uuid;primaryKey"`
	ReceiptItemReceiptID uuid.UUID `json:"receipt_item_receipt_id" gorm:"column:receipt_item_receipt_id;type:uuid;not null;index"`

	ReceiptItemName    string `json:"name" gorm:"column:receipt_item_name;type:varchar(120);not null"`
	ReceiptItemCostIDR int    `json:"cost" gorm:"column:receipt_item_cost_idr;not null;check:receipt_item_cost_idr >= 0"`

	// urutan tampil sesuai input caller
	ReceiptItemPosition int `json:"receipt_item_position" gorm:"column:receipt_item_position;not null;default:0"`

	ReceiptItemCreatedAt time.Time `json:"receipt_item_created_at" gorm:"column:receipt_item_created_at;autoCreateTime"`
}

func (ReceiptItem) TableName() string { return "receipt_items" }

func (it *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if it.ReceiptItemID == uuid.Nil {
		it.ReceiptItemID = uuid.New()
	}
	return nil
}
