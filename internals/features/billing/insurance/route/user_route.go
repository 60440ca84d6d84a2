package route

import (
	insuranceCtrl "hospitalku_backend/internals/features/billing/insurance/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InsuranceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := insuranceCtrl.NewInsuranceController(db)

	group := r.Group("/insurance/claims")
	group.Post("/", ctrl.SubmitClaim)
	group.Get("/", ctrl.ListClaims)
	group.Get("/:id", ctrl.GetClaim)
}
