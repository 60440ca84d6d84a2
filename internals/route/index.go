// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	auth "hospitalku_backend/internals/middlewares/auth"

	adminviewRoute "hospitalku_backend/internals/features/billing/adminview/route"
	fundingRoute "hospitalku_backend/internals/features/billing/funding/route"
	insuranceRoute "hospitalku_backend/internals/features/billing/insurance/route"
	paymentRoute "hospitalku_backend/internals/features/billing/payments/route"
	receiptRoute "hospitalku_backend/internals/features/billing/receipts/route"
	patientRoute "hospitalku_backend/internals/features/patients/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	// Webhook processor → tanpa JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	paymentRoute.PaymentPublicRoutes(public, db)

	// ===================== PRIVATE (STAFF) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	receiptRoute.ReceiptUserRoutes(private, db)
	paymentRoute.PaymentUserRoutes(private, db)
	insuranceRoute.InsuranceUserRoutes(private, db)
	fundingRoute.FundingUserRoutes(private, db)
	patientRoute.PatientUserRoutes(private, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		auth.IsAdmin(),
	)
	receiptRoute.ReceiptAdminRoutes(admin, db)
	insuranceRoute.InsuranceAdminRoutes(admin, db)
	fundingRoute.FundingAdminRoutes(admin, db)
	adminviewRoute.AdminViewRoutes(admin, db)
}
