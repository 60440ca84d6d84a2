package seeds

import (
	patients "hospitalku_backend/internals/seeds/patients"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	patients.SeedPatientsFromJSON(db, "internals/seeds/patients/data_patients.json")
}
