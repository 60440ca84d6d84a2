// 📁 controller/patient_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "hospitalku_backend/internals/helpers"
	"hospitalku_backend/internals/features/patients/service"
)

type PatientController struct {
	DB *gorm.DB
}

func NewPatientController(db *gorm.DB) *PatientController {
	return &PatientController{DB: db}
}

// 🟢 GET PATIENT: snapshot identitas pasien untuk form billing
func (ctrl *PatientController) GetPatient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Patient ID tidak valid")
	}

	snap, err := service.ResolvePatient(c.UserContext(), ctrl.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "OK", snap)
}
