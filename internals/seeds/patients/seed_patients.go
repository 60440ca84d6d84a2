package patients

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"hospitalku_backend/internals/features/patients/model"
)

type PatientSeed struct {
	PatientName  string  `json:"patient_name"`
	PatientNIK   string  `json:"patient_nik"`
	PatientPhone *string `json:"patient_phone"`
}

func SeedPatientsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var rows []PatientSeed
	if err := json.Unmarshal(file, &rows); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, p := range rows {
		var existing model.Patient
		if err := db.Where("patient_nik = ?", p.PatientNIK).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Pasien NIK %s sudah ada, lewati...", p.PatientNIK)
			continue
		}

		row := model.Patient{
			PatientName:  p.PatientName,
			PatientNIK:   p.PatientNIK,
			PatientPhone: p.PatientPhone,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Gagal seed pasien %s: %v", p.PatientNIK, err)
			continue
		}
		log.Printf("✅ Pasien %s ditambahkan", p.PatientName)
	}
}
