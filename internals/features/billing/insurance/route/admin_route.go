package route

import (
	insuranceCtrl "hospitalku_backend/internals/features/billing/insurance/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InsuranceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := insuranceCtrl.NewInsuranceController(db)

	group := r.Group("/insurance/claims")
	group.Patch("/:id/review", ctrl.ReviewClaim) // approve / reject
}
