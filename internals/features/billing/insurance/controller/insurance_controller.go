// 📁 controller/insurance_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospitalku_backend/internals/features/billing/insurance/dto"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	receiptModel "hospitalku_backend/internals/features/billing/receipts/model"
	receiptService "hospitalku_backend/internals/features/billing/receipts/service"
	helper "hospitalku_backend/internals/helpers"
)

var validate = validator.New()

type InsuranceController struct {
	DB *gorm.DB
}

func NewInsuranceController(db *gorm.DB) *InsuranceController {
	return &InsuranceController{DB: db}
}

// 🟢 POST /insurance/claims
// Ajukan klaim asuransi untuk kuitansi → status kuitansi jadi claim_pending.
func (ctrl *InsuranceController) SubmitClaim(c *fiber.Ctx) error {
	var body dto.SubmitClaimRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	handle, err := receiptService.InitiateSettlement(c.Context(), ctrl.DB, body.BillID,
		receiptModel.ChannelInsurance, receiptService.ClaimPayload{
			AmountIDR:         body.AmountIDR,
			InsuranceProvider: body.InsuranceProvider,
			PolicyNumber:      body.PolicyNumber,
			ClaimantName:      body.ClaimantName,
			ClaimantID:        body.ClaimantID,
		}, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Klaim asuransi diajukan", handle)
}

// 🟢 GET /insurance/claims — filter: ?bill_id= & ?claim_status=
func (ctrl *InsuranceController) ListClaims(c *fiber.Ctx) error {
	p := helper.ParsePagination(c, "claim_created_at", "desc")

	q := ctrl.DB.Model(&claimModel.InsuranceClaim{})
	if raw := strings.TrimSpace(c.Query("bill_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "bill_id tidak valid")
		}
		q = q.Where("claim_receipt_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("claim_status")); raw != "" {
		q = q.Where("claim_status = ?", strings.ToLower(raw))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung klaim")
	}

	var claims []claimModel.InsuranceClaim
	if err := q.
		Order("claim_created_at " + p.SortOrder).
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&claims).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar klaim")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "Daftar klaim",
		"data":    claims,
		"meta":    helper.BuildMeta(total, p),
	})
}

// 🟢 GET /insurance/claims/:id
func (ctrl *InsuranceController) GetClaim(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Claim ID tidak valid")
	}

	var claim claimModel.InsuranceClaim
	if err := ctrl.DB.Where("claim_id = ?", id).First(&claim).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Klaim tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil klaim")
	}

	return helper.Success(c, "Detail klaim", claim)
}

// 🟢 PATCH /insurance/claims/:id/review (admin)
// approve → kuitansi paid; reject → kuitansi kembali pending.
func (ctrl *InsuranceController) ReviewClaim(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Claim ID tidak valid")
	}

	var body dto.ReviewClaimRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	claim, err := receiptService.ReviewClaim(c.Context(), ctrl.DB, id,
		body.Status == "approved", actor, body.Note)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Klaim "+body.Status, claim)
}
