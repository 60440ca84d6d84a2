// 📁 controller/adminview_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospitalku_backend/internals/features/billing/receipts/model"
	helper "hospitalku_backend/internals/helpers"
)

/* =========================================================
   📊 ADMIN RECONCILIATION VIEW
   Read-only join kuitansi × record settlement untuk rekonsiliasi.
   Semua query LEFT JOIN dari sisi kuitansi supaya kuitansi tanpa
   child record tetap terlihat.
========================================================= */

type AdminViewController struct {
	DB *gorm.DB
}

func NewAdminViewController(db *gorm.DB) *AdminViewController {
	return &AdminViewController{DB: db}
}

// ========== ROW STRUCTS ==========

// Kolom ditag eksplisit; tanpa tag, GORM memetakan TotalIDR → total_id_r
// dan alias SELECT-nya tidak pernah ter-scan.
type TransactionRow struct {
	ReceiptID          uuid.UUID  `json:"receipt_id" gorm:"column:receipt_id"`
	ReceiptNo          string     `json:"receipt_no" gorm:"column:receipt_no"`
	ReceiptPatientName string     `json:"receipt_patient_name" gorm:"column:receipt_patient_name"`
	ReceiptTotalIDR    int        `json:"receipt_total_idr" gorm:"column:receipt_total_idr"`
	ReceiptStatus      string     `json:"receipt_status" gorm:"column:receipt_status"`
	ReceiptCreatedAt   time.Time  `json:"receipt_created_at" gorm:"column:receipt_created_at"`
	IntentID           *uuid.UUID `json:"intent_id,omitempty" gorm:"column:intent_id"`
	IntentOrderID      *string    `json:"intent_order_id,omitempty" gorm:"column:intent_order_id"`
	IntentState        *string    `json:"intent_state,omitempty" gorm:"column:intent_state"`
	IntentConfirmedAt  *time.Time `json:"intent_confirmed_at,omitempty" gorm:"column:intent_confirmed_at"`
}

type ClaimRow struct {
	ReceiptID              uuid.UUID  `json:"receipt_id" gorm:"column:receipt_id"`
	ReceiptNo              string     `json:"receipt_no" gorm:"column:receipt_no"`
	ReceiptPatientName     string     `json:"receipt_patient_name" gorm:"column:receipt_patient_name"`
	ReceiptTotalIDR        int        `json:"receipt_total_idr" gorm:"column:receipt_total_idr"`
	ReceiptStatus          string     `json:"receipt_status" gorm:"column:receipt_status"`
	ClaimID                uuid.UUID  `json:"claim_id" gorm:"column:claim_id"`
	ClaimInsuranceProvider string     `json:"claim_insurance_provider" gorm:"column:claim_insurance_provider"`
	ClaimPolicyNumber      string     `json:"claim_policy_number" gorm:"column:claim_policy_number"`
	ClaimClaimantName      string     `json:"claim_claimant_name" gorm:"column:claim_claimant_name"`
	ClaimAmountIDR         int        `json:"claim_amount_idr" gorm:"column:claim_amount_idr"`
	ClaimStatus            string     `json:"claim_status" gorm:"column:claim_status"`
	ClaimReviewedAt        *time.Time `json:"claim_reviewed_at,omitempty" gorm:"column:claim_reviewed_at"`
	ClaimCreatedAt         time.Time  `json:"claim_created_at" gorm:"column:claim_created_at"`
}

type FundingRow struct {
	ReceiptID              uuid.UUID  `json:"receipt_id" gorm:"column:receipt_id"`
	ReceiptNo              string     `json:"receipt_no" gorm:"column:receipt_no"`
	ReceiptPatientName     string     `json:"receipt_patient_name" gorm:"column:receipt_patient_name"`
	ReceiptTotalIDR        int        `json:"receipt_total_idr" gorm:"column:receipt_total_idr"`
	ReceiptStatus          string     `json:"receipt_status" gorm:"column:receipt_status"`
	FundingID              uuid.UUID  `json:"funding_id" gorm:"column:funding_id"`
	FundingProgramType     string     `json:"funding_program_type" gorm:"column:funding_program_type"`
	FundingBeneficiaryName string     `json:"funding_beneficiary_name" gorm:"column:funding_beneficiary_name"`
	FundingReferenceNumber *string    `json:"funding_reference_number,omitempty" gorm:"column:funding_reference_number"`
	FundingAmountIDR       int        `json:"funding_amount_idr" gorm:"column:funding_amount_idr"`
	FundingStatus          string     `json:"funding_status" gorm:"column:funding_status"`
	FundingReviewedAt      *time.Time `json:"funding_reviewed_at,omitempty" gorm:"column:funding_reviewed_at"`
	FundingCreatedAt       time.Time  `json:"funding_created_at" gorm:"column:funding_created_at"`
}

type StatusSummaryRow struct {
	ReceiptStatus string `json:"receipt_status" gorm:"column:receipt_status"`
	TotalReceipts int64  `json:"total_receipts" gorm:"column:total_receipts"`
	TotalIDR      int64  `json:"total_idr" gorm:"column:total_idr"`
}

// 🟢 GET /admin/transactions
// Kuitansi + card intent terakhirnya (kalau ada). Filter: ?status=
func (ctrl *AdminViewController) ListTransactions(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, "receipt_created_at", "desc", helper.AdminOpts)

	q := ctrl.DB.Table("receipts AS r").
		Select(`r.receipt_id, r.receipt_no, r.receipt_patient_name, r.receipt_total_idr,
			r.receipt_status, r.receipt_created_at,
			i.intent_id, i.intent_order_id, i.intent_state, i.intent_confirmed_at`).
		Joins(`LEFT JOIN card_payment_intents AS i ON i.intent_receipt_id = r.receipt_id
			AND i.intent_created_at = (
				SELECT MAX(i2.intent_created_at) FROM card_payment_intents AS i2
				WHERE i2.intent_receipt_id = r.receipt_id
			)`).
		Where("r.receipt_deleted_at IS NULL")

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, ok := model.ParseReceiptStatus(raw)
		if !ok {
			return helper.Error(c, fiber.StatusBadRequest, "Status tidak dikenal: "+raw)
		}
		q = q.Where("r.receipt_status = ?", string(st))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung transaksi")
	}

	var rows []TransactionRow
	if err := q.
		Order("r.receipt_created_at " + p.SortOrder).
		Limit(p.PerPage).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil transaksi")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "Daftar transaksi",
		"data":    rows,
		"meta":    helper.BuildMeta(total, p),
	})
}

// 🟢 GET /admin/insurance-claims
// Klaim asuransi + kuitansinya. Filter: ?claim_status=
func (ctrl *AdminViewController) ListInsuranceClaims(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, "claim_created_at", "desc", helper.AdminOpts)

	q := ctrl.DB.Table("insurance_claims AS cl").
		Select(`r.receipt_id, r.receipt_no, r.receipt_patient_name, r.receipt_total_idr, r.receipt_status,
			cl.claim_id, cl.claim_insurance_provider, cl.claim_policy_number, cl.claim_claimant_name,
			cl.claim_amount_idr, cl.claim_status, cl.claim_reviewed_at, cl.claim_created_at`).
		Joins(`LEFT JOIN receipts AS r ON r.receipt_id = cl.claim_receipt_id`)

	if raw := strings.TrimSpace(c.Query("claim_status")); raw != "" {
		q = q.Where("cl.claim_status = ?", strings.ToLower(raw))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung klaim")
	}

	var rows []ClaimRow
	if err := q.
		Order("cl.claim_created_at " + p.SortOrder).
		Limit(p.PerPage).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil klaim")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "Daftar klaim asuransi",
		"data":    rows,
		"meta":    helper.BuildMeta(total, p),
	})
}

// 🟢 GET /admin/government-funding
// Pengajuan dana bantuan + kuitansinya. Filter: ?funding_status= & ?program_type=
func (ctrl *AdminViewController) ListGovernmentFunding(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, "funding_created_at", "desc", helper.AdminOpts)

	q := ctrl.DB.Table("funding_requests AS f").
		Select(`r.receipt_id, r.receipt_no, r.receipt_patient_name, r.receipt_total_idr, r.receipt_status,
			f.funding_id, f.funding_program_type, f.funding_beneficiary_name, f.funding_reference_number,
			f.funding_amount_idr, f.funding_status, f.funding_reviewed_at, f.funding_created_at`).
		Joins(`LEFT JOIN receipts AS r ON r.receipt_id = f.funding_receipt_id`)

	if raw := strings.TrimSpace(c.Query("funding_status")); raw != "" {
		q = q.Where("f.funding_status = ?", strings.ToLower(raw))
	}
	if raw := strings.TrimSpace(c.Query("program_type")); raw != "" {
		q = q.Where("f.funding_program_type = ?", strings.ToLower(raw))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pengajuan dana")
	}

	var rows []FundingRow
	if err := q.
		Order("f.funding_created_at " + p.SortOrder).
		Limit(p.PerPage).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pengajuan dana")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "Daftar dana bantuan pemerintah",
		"data":    rows,
		"meta":    helper.BuildMeta(total, p),
	})
}

// 🟢 GET /admin/receipts/summary
// Rekap jumlah & nominal kuitansi per status.
func (ctrl *AdminViewController) ReceiptSummary(c *fiber.Ctx) error {
	var rows []StatusSummaryRow
	if err := ctrl.DB.Table("receipts").
		Select(`receipt_status, COUNT(*) AS total_receipts, COALESCE(SUM(receipt_total_idr), 0) AS total_idr`).
		Where("receipt_deleted_at IS NULL").
		Group("receipt_status").
		Order("receipt_status").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil ringkasan")
	}

	return helper.Success(c, "Ringkasan kuitansi per status", rows)
}
