package route

import (
	patientCtrl "hospitalku_backend/internals/features/patients/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PatientUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := patientCtrl.NewPatientController(db)

	group := r.Group("/patients")
	group.Get("/:id", ctrl.GetPatient)
}
