// file: internals/features/patients/model/patient_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient dimiliki collaborator patient-management; subsistem billing
// hanya membaca snapshot identitas dari tabel ini.
type Patient struct {
	PatientID uuid.UUID `json:"patient_id" gorm:"column:patient_id;type:uuid;primaryKey"`

	PatientName  string  `json:"patient_name" gorm:"column:patient_name;type:varchar(100);not null"`
	PatientNIK   string  `json:"patient_nik" gorm:"column:patient_nik;type:varchar(40);not null;uniqueIndex"`
	PatientPhone *string `json:"patient_phone,omitempty" gorm:"column:patient_phone;type:varchar(20)"`

	PatientCreatedAt time.Time      `json:"patient_created_at" gorm:"column:patient_created_at;autoCreateTime"`
	PatientUpdatedAt time.Time      `json:"patient_updated_at" gorm:"column:patient_updated_at;autoUpdateTime"`
	PatientDeletedAt gorm.DeletedAt `json:"patient_deleted_at,omitempty" gorm:"column:patient_deleted_at;index"`
}

func (Patient) TableName() string { return "patients" }

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.PatientID == uuid.Nil {
		p.PatientID = uuid.New()
	}
	return nil
}
