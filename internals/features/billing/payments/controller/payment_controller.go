// 📁 controller/payment_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hospitalku_backend/internals/features/billing/payments/dto"
	"hospitalku_backend/internals/features/billing/payments/service"
	helper "hospitalku_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// 🟢 POST /payments/create-intent
// Buka card intent di processor eksternal. Status kuitansi TIDAK berubah
// sampai confirm sukses.
func (ctrl *PaymentController) CreateIntent(c *fiber.Ctx) error {
	var body dto.CreateIntentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	res, err := service.CreateIntent(c.Context(), ctrl.DB, body.BillID, body.AmountIDR, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment intent dibuat", res)
}

// 🟢 POST /payments/confirm
// Poll status transaksi ke processor lalu settle bila sudah dibayar.
// Idempoten: confirm ulang setelah sukses tetap mengembalikan success.
func (ctrl *PaymentController) ConfirmIntent(c *fiber.Ctx) error {
	var body dto.ConfirmIntentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	res, err := service.ConfirmIntent(c.Context(), ctrl.DB, body.OrderID, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Pembayaran berhasil dikonfirmasi"
	if !res.Success {
		msg = "Pembayaran belum selesai di processor"
	}
	return helper.Success(c, msg, res)
}

// 🟢 POST /payments/cancel
func (ctrl *PaymentController) CancelIntent(c *fiber.Ctx) error {
	var body dto.CancelIntentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	if err := service.CancelIntent(c.Context(), ctrl.DB, body.OrderID, actor); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Payment intent dibatalkan", nil)
}

// 🔔 POST /payments/notification (public, dipanggil processor)
// Selalu balas 200 supaya processor tidak retry terus; kegagalan internal
// cukup dicatat di log + payment_gateway_events.
func (ctrl *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification payload")
	}

	if err := service.HandleGatewayNotification(c.Context(), ctrl.DB, body); err != nil {
		log.Println("[ERROR] gagal memproses notifikasi gateway:", err)
	}

	return c.SendStatus(fiber.StatusOK)
}
