package route

import (
	adminviewCtrl "hospitalku_backend/internals/features/billing/adminview/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminViewRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := adminviewCtrl.NewAdminViewController(db)

	// =====================
	// Reconciliation (read-only)
	// =====================
	r.Get("/transactions", ctrl.ListTransactions)
	r.Get("/insurance-claims", ctrl.ListInsuranceClaims)
	r.Get("/government-funding", ctrl.ListGovernmentFunding)
	r.Get("/receipts/summary", ctrl.ReceiptSummary)
}
