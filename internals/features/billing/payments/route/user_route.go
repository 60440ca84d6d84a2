package route

import (
	paymentCtrl "hospitalku_backend/internals/features/billing/payments/controller"
	"hospitalku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentCtrl.NewPaymentController(db)

	// =====================
	// Card Payments (two-phase)
	// =====================
	group := r.Group("/payments", middlewares.PaymentRateLimiter())
	group.Post("/create-intent", ctrl.CreateIntent)
	group.Post("/confirm", ctrl.ConfirmIntent)
	group.Post("/cancel", ctrl.CancelIntent)
}
