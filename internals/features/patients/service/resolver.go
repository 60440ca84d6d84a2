// file: internals/features/patients/service/resolver.go
package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospitalku_backend/internals/features/patients/model"
)

// PatientSnapshot: potongan identitas yang dibutuhkan subsistem billing.
type PatientSnapshot struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	PatientNIK  string    `json:"patient_nik"`
}

// ResolvePatient mengambil snapshot identitas pasien dari collaborator
// patient-management (dipakai saat membuat kuitansi tanpa nama pasien).
func ResolvePatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (*PatientSnapshot, error) {
	var p model.Patient
	if err := db.WithContext(ctx).
		Select("patient_id, patient_name, patient_nik").
		Where("patient_id = ?", patientID).
		First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Pasien tidak ditemukan")
		}
		return nil, err
	}
	return &PatientSnapshot{
		PatientID:   p.PatientID,
		PatientName: p.PatientName,
		PatientNIK:  p.PatientNIK,
	}, nil
}
