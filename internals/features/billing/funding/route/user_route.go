package route

import (
	fundingCtrl "hospitalku_backend/internals/features/billing/funding/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func FundingUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := fundingCtrl.NewFundingController(db)

	group := r.Group("/funding/requests")
	group.Post("/", ctrl.SubmitRequest)
	group.Get("/", ctrl.ListRequests)
	group.Get("/:id", ctrl.GetRequest)
}
