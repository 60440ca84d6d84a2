package route

import (
	receiptCtrl "hospitalku_backend/internals/features/billing/receipts/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ReceiptAdminRoutes(r fiber.Router, db *gorm.DB) {
	admin := receiptCtrl.NewReceiptAdminController(db)

	group := r.Group("/receipts")
	group.Post("/:id/revert", admin.RevertToPending) // paid → pending (wajib note)
}
