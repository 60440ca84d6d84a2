package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	intentModel "hospitalku_backend/internals/features/billing/payments/model"
	"hospitalku_backend/internals/features/billing/receipts/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Receipt{}, &model.ReceiptItem{}, &model.SettlementAuditLog{},
		&intentModel.CardPaymentIntent{}, &intentModel.PaymentGatewayEvent{},
		&claimModel.InsuranceClaim{}, &fundingModel.FundingRequest{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedReceipt(t *testing.T, db *gorm.DB, total int) *model.Receipt {
	t.Helper()
	rcp := model.Receipt{
		ReceiptNo:          fmt.Sprintf("RCP-%d", time.Now().UnixNano()),
		ReceiptPatientName: "Budi Santoso",
		ReceiptTotalIDR:    total,
		ReceiptStatus:      model.ReceiptStatusPending,
	}
	if err := db.Create(&rcp).Error; err != nil {
		t.Fatalf("seed receipt: %v", err)
	}
	return &rcp
}

func claimPayload(amount int) ClaimPayload {
	return ClaimPayload{
		AmountIDR:         amount,
		InsuranceProvider: "Asuransi Sehat",
		PolicyNumber:      "POL-001",
		ClaimantName:      "Budi Santoso",
		ClaimantID:        "3174xxxxxxxxxxxx",
	}
}

func fundingPayload(amount int) FundingPayload {
	return FundingPayload{
		AmountIDR:       amount,
		ProgramType:     "bpjs_kesehatan",
		BeneficiaryID:   "0001234567890",
		BeneficiaryName: "Budi Santoso",
	}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	if !ok {
		t.Fatalf("bukan fiber.Error: %v", err)
	}
	return fe.Code
}

func TestInitiateInsuranceSetsClaimPending(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 500_000)

	handle, err := InitiateSettlement(context.Background(), db, rcp.ReceiptID,
		model.ChannelInsurance, claimPayload(500_000), nil)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if handle.Status != model.ReceiptStatusClaimPending {
		t.Errorf("status = %s, want claim_pending", handle.Status)
	}

	var got model.Receipt
	if err := db.First(&got, "receipt_id = ?", rcp.ReceiptID).Error; err != nil {
		t.Fatal(err)
	}
	if got.ReceiptStatus != model.ReceiptStatusClaimPending {
		t.Errorf("DB status = %s, want claim_pending", got.ReceiptStatus)
	}

	// jejak audit channel_opened / transisi harus ada
	var audits int64
	db.Model(&model.SettlementAuditLog{}).Where("audit_receipt_id = ?", rcp.ReceiptID).Count(&audits)
	if audits == 0 {
		t.Error("tidak ada baris audit untuk pembukaan channel")
	}
}

func TestChannelExclusivity(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 250_000)
	ctx := context.Background()

	if _, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelCard,
		CardIntentPayload{AmountIDR: 250_000}, nil); err != nil {
		t.Fatalf("buka card intent: %v", err)
	}

	// channel kedua apapun harus 409 selama intent masih hidup
	_, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelInsurance, claimPayload(250_000), nil)
	if err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("klaim saat intent aktif harus 409, dapat %v", err)
	}
	_, err = InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelFunding, fundingPayload(250_000), nil)
	if err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("funding saat intent aktif harus 409, dapat %v", err)
	}
}

func TestStaleIntentDoesNotBlockNewChannel(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 100_000)
	ctx := context.Background()

	handle, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelCard,
		CardIntentPayload{AmountIDR: 100_000}, nil)
	if err != nil {
		t.Fatalf("buka card intent: %v", err)
	}

	// mundurkan created_at melewati ambang basi
	old := time.Now().Add(-2 * intentModel.IntentStaleAfter)
	if err := db.Model(&intentModel.CardPaymentIntent{}).
		Where("intent_id = ?", handle.ChildID).
		Update("intent_created_at", old).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelInsurance, claimPayload(100_000), nil); err != nil {
		t.Fatalf("intent basi tidak boleh memblokir klaim: %v", err)
	}
}

func TestCardIntentAmountMustMatchTotal(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 750_000)

	_, err := InitiateSettlement(context.Background(), db, rcp.ReceiptID, model.ChannelCard,
		CardIntentPayload{AmountIDR: 700_000}, nil)
	if err == nil || fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("nominal beda harus 400, dapat %v", err)
	}
}

func TestApproveClaimPaysReceipt(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 500_000)
	ctx := context.Background()

	handle, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelInsurance, claimPayload(500_000), nil)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	claim, err := ReviewClaim(ctx, db, handle.ChildID, true, nil, nil)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if claim.ClaimStatus != claimModel.ClaimStatusApproved {
		t.Errorf("claim status = %s, want approved", claim.ClaimStatus)
	}

	var got model.Receipt
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != model.ReceiptStatusPaid {
		t.Errorf("receipt status = %s, want paid", got.ReceiptStatus)
	}

	// keputusan klaim itu final
	if _, err := ReviewClaim(ctx, db, handle.ChildID, false, nil, nil); err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("review ulang klaim final harus 409, dapat %v", err)
	}
}

func TestRejectClaimReopensReceipt(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 300_000)
	ctx := context.Background()

	handle, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelInsurance, claimPayload(300_000), nil)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	note := "polis tidak aktif"
	if _, err := ReviewClaim(ctx, db, handle.ChildID, false, nil, &note); err != nil {
		t.Fatalf("reject: %v", err)
	}

	var got model.Receipt
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != model.ReceiptStatusPending {
		t.Errorf("receipt status = %s, want pending", got.ReceiptStatus)
	}

	// setelah reject, jalur settlement lain terbuka lagi
	if _, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelFunding, fundingPayload(300_000), nil); err != nil {
		t.Fatalf("funding setelah klaim ditolak: %v", err)
	}
}

func TestApproveFundingPaysReceipt(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 900_000)
	ctx := context.Background()

	handle, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelFunding, fundingPayload(900_000), nil)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	fr, err := ReviewFunding(ctx, db, handle.ChildID, true, nil, nil)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if fr.FundingStatus != fundingModel.FundingStatusApproved {
		t.Errorf("funding status = %s, want approved", fr.FundingStatus)
	}

	var got model.Receipt
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != model.ReceiptStatusPaid {
		t.Errorf("receipt status = %s, want paid", got.ReceiptStatus)
	}
}

func TestPaidReceiptRejectsNewChannel(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 500_000)
	ctx := context.Background()

	handle, _ := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelInsurance, claimPayload(500_000), nil)
	if _, err := ReviewClaim(ctx, db, handle.ChildID, true, nil, nil); err != nil {
		t.Fatal(err)
	}

	_, err := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelFunding, fundingPayload(500_000), nil)
	if err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("channel baru di kuitansi paid harus 409, dapat %v", err)
	}
}

func TestTransitionLosesCASWhenStatusChanged(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 100_000)

	// snapshot lama masih pending, padahal DB sudah bergeser
	stale := *rcp
	if err := db.Model(&model.Receipt{}).
		Where("receipt_id = ?", rcp.ReceiptID).
		Update("receipt_status", model.ReceiptStatusOverdue).Error; err != nil {
		t.Fatal(err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return TransitionReceipt(tx, &stale, model.ReceiptStatusClaimPending, nil, "", nil)
	})
	if err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("CAS kalah harus 409, dapat %v", err)
	}
}

func TestAdminRevertToPending(t *testing.T) {
	db := setupDB(t)
	rcp := seedReceipt(t, db, 400_000)
	ctx := context.Background()

	handle, _ := InitiateSettlement(ctx, db, rcp.ReceiptID, model.ChannelInsurance, claimPayload(400_000), nil)
	if _, err := ReviewClaim(ctx, db, handle.ChildID, true, nil, nil); err != nil {
		t.Fatal(err)
	}

	got, err := AdminRevertToPending(db, rcp.ReceiptID, nil, "salah input kasir")
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if got.ReceiptStatus != model.ReceiptStatusPending {
		t.Errorf("status = %s, want pending", got.ReceiptStatus)
	}

	// klaim approved ikut di-void supaya tidak ada record yang masih menandai lunas
	var claim claimModel.InsuranceClaim
	db.First(&claim, "claim_id = ?", handle.ChildID)
	if claim.ClaimStatus != claimModel.ClaimStatusVoided {
		t.Errorf("claim status = %s, want voided", claim.ClaimStatus)
	}

	var audits int64
	db.Model(&model.SettlementAuditLog{}).
		Where("audit_receipt_id = ? AND audit_action = ?", rcp.ReceiptID, model.AuditAdminRevert).
		Count(&audits)
	if audits != 1 {
		t.Errorf("audit admin_revert = %d, want 1", audits)
	}

	// revert hanya sah dari paid
	if _, err := AdminRevertToPending(db, rcp.ReceiptID, nil, "dobel"); err == nil || fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("revert kuitansi non-paid harus 409, dapat %v", err)
	}
}

func TestInitiateUnknownReceipt(t *testing.T) {
	db := setupDB(t)

	_, err := InitiateSettlement(context.Background(), db, uuid.New(), model.ChannelInsurance, claimPayload(100), nil)
	if err == nil || fiberCode(t, err) != fiber.StatusNotFound {
		t.Fatalf("kuitansi tak dikenal harus 404, dapat %v", err)
	}
}
