// 📁 controller/funding_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospitalku_backend/internals/constants"
	"hospitalku_backend/internals/features/billing/funding/dto"
	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	receiptModel "hospitalku_backend/internals/features/billing/receipts/model"
	receiptService "hospitalku_backend/internals/features/billing/receipts/service"
	helper "hospitalku_backend/internals/helpers"
)

var validate = validator.New()

type FundingController struct {
	DB *gorm.DB
}

func NewFundingController(db *gorm.DB) *FundingController {
	return &FundingController{DB: db}
}

// 🟢 POST /funding/requests
// Ajukan dana bantuan pemerintah → status kuitansi jadi funding_pending.
func (ctrl *FundingController) SubmitRequest(c *fiber.Ctx) error {
	var body dto.SubmitFundingRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	// Program di luar daftar dikenal tetap diterima sebagai "other"
	program := strings.ToLower(strings.TrimSpace(body.ProgramType))
	if !constants.IsKnownFundingProgram(program) {
		program = constants.ProgramOther
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	handle, err := receiptService.InitiateSettlement(c.Context(), ctrl.DB, body.BillID,
		receiptModel.ChannelFunding, receiptService.FundingPayload{
			AmountIDR:       body.AmountIDR,
			ProgramType:     program,
			BeneficiaryID:   body.BeneficiaryID,
			BeneficiaryName: body.BeneficiaryName,
			ReferenceNumber: body.ReferenceNumber,
		}, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pengajuan dana bantuan dibuat", handle)
}

// 🟢 GET /funding/requests — filter: ?bill_id= & ?funding_status= & ?program_type=
func (ctrl *FundingController) ListRequests(c *fiber.Ctx) error {
	p := helper.ParsePagination(c, "funding_created_at", "desc")

	q := ctrl.DB.Model(&fundingModel.FundingRequest{})
	if raw := strings.TrimSpace(c.Query("bill_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "bill_id tidak valid")
		}
		q = q.Where("funding_receipt_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("funding_status")); raw != "" {
		q = q.Where("funding_status = ?", strings.ToLower(raw))
	}
	if raw := strings.TrimSpace(c.Query("program_type")); raw != "" {
		q = q.Where("funding_program_type = ?", strings.ToLower(raw))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pengajuan dana")
	}

	var reqs []fundingModel.FundingRequest
	if err := q.
		Order("funding_created_at " + p.SortOrder).
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&reqs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pengajuan dana")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "Daftar pengajuan dana",
		"data":    reqs,
		"meta":    helper.BuildMeta(total, p),
	})
}

// 🟢 GET /funding/requests/:id
func (ctrl *FundingController) GetRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Funding ID tidak valid")
	}

	var req fundingModel.FundingRequest
	if err := ctrl.DB.Where("funding_id = ?", id).First(&req).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Pengajuan dana tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pengajuan dana")
	}

	return helper.Success(c, "Detail pengajuan dana", req)
}

// 🟢 PATCH /funding/requests/:id/review (admin)
// approve → kuitansi paid; reject → kuitansi kembali pending.
func (ctrl *FundingController) ReviewRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Funding ID tidak valid")
	}

	var body dto.ReviewFundingRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helper.GetUserIDFromTokenOptional(c)
	req, err := receiptService.ReviewFunding(c.Context(), ctrl.DB, id,
		body.Status == "approved", actor, body.Note)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Pengajuan dana "+body.Status, req)
}
