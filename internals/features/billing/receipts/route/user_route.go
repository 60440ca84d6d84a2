package route

import (
	receiptCtrl "hospitalku_backend/internals/features/billing/receipts/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ReceiptUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := receiptCtrl.NewReceiptController(db)

	// =====================
	// Receipts (CRUD)
	// =====================
	group := r.Group("/receipts")
	group.Post("/", ctrl.CreateReceipt)
	group.Get("/", ctrl.ListReceipts)
	group.Get("/:id", ctrl.GetReceipt)
	group.Patch("/:id", ctrl.UpdateReceipt)
	group.Delete("/:id", ctrl.DeleteReceipt) // soft delete, child record di-void
}
