// 📁 controller/receipt_controller.go
package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	intentModel "hospitalku_backend/internals/features/billing/payments/model"
	"hospitalku_backend/internals/features/billing/receipts/dto"
	"hospitalku_backend/internals/features/billing/receipts/model"
	"hospitalku_backend/internals/features/billing/receipts/service"
	patientService "hospitalku_backend/internals/features/patients/service"
	helper "hospitalku_backend/internals/helpers"
)

var validate = validator.New()

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// 🟢 CREATE RECEIPT: total selalu dihitung ulang dari item, tidak percaya input
func (ctrl *ReceiptController) CreateReceipt(c *fiber.Ctx) error {
	var body dto.CreateReceiptRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	items := make([]model.ReceiptItem, 0, len(body.Services))
	sum := 0
	for i, svc := range body.Services {
		items = append(items, model.ReceiptItem{
			ReceiptItemName:     svc.Name,
			ReceiptItemCostIDR:  svc.Cost,
			ReceiptItemPosition: i,
		})
		sum += svc.Cost
	}
	if body.Total != sum {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validasi gagal", fiber.Map{
			"total": fmt.Sprintf("total (%d) tidak sama dengan jumlah biaya layanan (%d)", body.Total, sum),
		})
	}

	// Snapshot nama pasien dari collaborator kalau caller tidak mengisi
	patientName := strings.TrimSpace(body.PatientName)
	if patientName == "" {
		snap, err := patientService.ResolvePatient(c.UserContext(), ctrl.DB, body.PatientID)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		patientName = snap.PatientName
	}

	receiptNo := strings.TrimSpace(body.ReceiptNo)
	if receiptNo == "" {
		receiptNo = fmt.Sprintf("RCP-%d", time.Now().UnixNano())
	}

	receipt := model.Receipt{
		ReceiptNo:          receiptNo,
		ReceiptPatientID:   body.PatientID,
		ReceiptPatientName: patientName,
		ReceiptTotalIDR:    sum,
		ReceiptCurrency:    "IDR",
		ReceiptStatus:      model.ReceiptStatusPending,
		ReceiptCreatedBy:   helper.GetUserIDFromTokenOptional(c),
		ReceiptItems:       items,
	}

	// Nomor kuitansi harus unik
	var dup int64
	if err := ctrl.DB.Model(&model.Receipt{}).Where("receipt_no = ?", receiptNo).Count(&dup).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengecek nomor kuitansi")
	}
	if dup > 0 {
		return helper.Error(c, fiber.StatusConflict, "Nomor kuitansi sudah dipakai")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&receipt).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan kuitansi")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kuitansi berhasil dibuat", receipt)
}

// 🟢 GET RECEIPT by id
func (ctrl *ReceiptController) GetReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Receipt ID tidak valid")
	}

	var receipt model.Receipt
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("ReceiptItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("receipt_item_position ASC")
		}).
		Where("receipt_id = ?", id).
		First(&receipt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Kuitansi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kuitansi")
	}

	return helper.Success(c, "OK", receipt)
}

// 🟢 LIST RECEIPTS: filter status + free-text (no/nama/pasien), urut terbaru
func (ctrl *ReceiptController) ListReceipts(c *fiber.Ctx) error {
	p := helper.ParsePagination(c, "receipt_created_at", "desc")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Receipt{})

	if st := strings.TrimSpace(c.Query("status")); st != "" {
		status, ok := model.ParseReceiptStatus(st)
		if !ok {
			return helper.Error(c, fiber.StatusBadRequest, "Status filter tidak dikenal: "+st)
		}
		q = q.Where("receipt_status = ?", status)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		if pid, err := uuid.Parse(search); err == nil {
			q = q.Where("receipt_patient_id = ?", pid)
		} else {
			q = q.Where("LOWER(receipt_no) LIKE ? OR LOWER(receipt_patient_name) LIKE ?", like, like)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kuitansi")
	}

	orderBy, err := p.SafeOrderClause(map[string]string{
		"receipt_created_at": "receipt_created_at",
		"receipt_no":         "receipt_no",
		"receipt_total_idr":  "receipt_total_idr",
		"receipt_status":     "receipt_status",
	}, "receipt_created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyusun urutan")
	}

	var receipts []model.Receipt
	if err := q.
		Preload("ReceiptItems").
		Order(orderBy).
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&receipts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kuitansi")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "OK",
		"data":    receipts,
		"meta":    helper.BuildMeta(total, p),
	})
}

// 🟢 UPDATE RECEIPT: hanya saat status masih mutable; kuitansi paid terkunci
func (ctrl *ReceiptController) UpdateReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Receipt ID tidak valid")
	}

	var body dto.UpdateReceiptRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var updated model.Receipt
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		rcp, err := service.LockReceipt(tx, id)
		if err != nil {
			return err
		}
		if !rcp.ReceiptStatus.Mutable() {
			return fiber.NewError(fiber.StatusConflict, "Kuitansi paid tidak bisa diubah")
		}

		patch := map[string]any{}
		if body.PatientName != nil && strings.TrimSpace(*body.PatientName) != "" {
			patch["receipt_patient_name"] = strings.TrimSpace(*body.PatientName)
		}

		if body.Services != nil {
			if err := tx.Where("receipt_item_receipt_id = ?", rcp.ReceiptID).
				Delete(&model.ReceiptItem{}).Error; err != nil {
				return err
			}
			sum := 0
			items := make([]model.ReceiptItem, 0, len(*body.Services))
			for i, svc := range *body.Services {
				items = append(items, model.ReceiptItem{
					ReceiptItemReceiptID: rcp.ReceiptID,
					ReceiptItemName:      svc.Name,
					ReceiptItemCostIDR:   svc.Cost,
					ReceiptItemPosition:  i,
				})
				sum += svc.Cost
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			// total selalu mengikuti item, tidak pernah diinput langsung
			patch["receipt_total_idr"] = sum
		}

		if len(patch) > 0 {
			if err := tx.Model(&model.Receipt{}).
				Where("receipt_id = ?", rcp.ReceiptID).
				Updates(patch).Error; err != nil {
				return err
			}
		}

		return tx.
			Preload("ReceiptItems", func(db *gorm.DB) *gorm.DB {
				return db.Order("receipt_item_position ASC")
			}).
			Where("receipt_id = ?", rcp.ReceiptID).
			First(&updated).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Kuitansi berhasil diperbarui", updated)
}

// 🟢 DELETE RECEIPT (soft): ditolak kalau paid; child record yang masih
// terbuka ikut di-void supaya tidak ada record yatim
func (ctrl *ReceiptController) DeleteReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Receipt ID tidak valid")
	}

	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		rcp, err := service.LockReceipt(tx, id)
		if err != nil {
			return err
		}
		if !rcp.ReceiptStatus.Mutable() {
			return fiber.NewError(fiber.StatusConflict, "Kuitansi paid tidak bisa dihapus")
		}

		if err := tx.Model(&intentModel.CardPaymentIntent{}).
			Where("intent_receipt_id = ? AND intent_state = ?", rcp.ReceiptID, intentModel.IntentStateCreated).
			Update("intent_state", intentModel.IntentStateCanceled).Error; err != nil {
			return err
		}
		if err := tx.Model(&claimModel.InsuranceClaim{}).
			Where("claim_receipt_id = ? AND claim_status = ?", rcp.ReceiptID, claimModel.ClaimStatusPending).
			Update("claim_status", claimModel.ClaimStatusVoided).Error; err != nil {
			return err
		}
		if err := tx.Model(&fundingModel.FundingRequest{}).
			Where("funding_receipt_id = ? AND funding_status = ?", rcp.ReceiptID, fundingModel.FundingStatusPending).
			Update("funding_status", fundingModel.FundingStatusVoided).Error; err != nil {
			return err
		}

		if err := service.WriteVoidAudit(tx, rcp.ReceiptID, helper.GetUserIDFromTokenOptional(c)); err != nil {
			return err
		}

		return tx.Delete(&model.Receipt{}, "receipt_id = ?", rcp.ReceiptID).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Kuitansi berhasil dihapus", nil)
}
