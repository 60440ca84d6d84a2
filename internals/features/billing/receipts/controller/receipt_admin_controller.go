// 📁 controller/receipt_admin_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospitalku_backend/internals/features/billing/receipts/dto"
	"hospitalku_backend/internals/features/billing/receipts/service"
	helper "hospitalku_backend/internals/helpers"
)

type ReceiptAdminController struct {
	DB *gorm.DB
}

func NewReceiptAdminController(db *gorm.DB) *ReceiptAdminController {
	return &ReceiptAdminController{DB: db}
}

// 🟢 ADMIN REVERT: buka kembali kuitansi paid → pending.
// Wajib ada note (masuk jejak audit); record settlement yang masih
// menandai lunas ikut di-void oleh status engine.
func (ctrl *ReceiptAdminController) RevertToPending(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Receipt ID tidak valid")
	}

	var body dto.RevertReceiptRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	rcp, err := service.AdminRevertToPending(ctrl.DB, id, actor, body.Note)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Kuitansi di-revert ke pending", rcp)
}
