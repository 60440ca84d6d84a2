package route

import (
	fundingCtrl "hospitalku_backend/internals/features/billing/funding/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func FundingAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := fundingCtrl.NewFundingController(db)

	group := r.Group("/funding/requests")
	group.Patch("/:id/review", ctrl.ReviewRequest) // approve / reject
}
