package route

import (
	paymentCtrl "hospitalku_backend/internals/features/billing/payments/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Webhook dari payment processor. Tanpa JWT: dipanggil langsung oleh
// server midtrans.
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentCtrl.NewPaymentController(db)

	r.Post("/payments/notification", ctrl.HandleNotification)
}
