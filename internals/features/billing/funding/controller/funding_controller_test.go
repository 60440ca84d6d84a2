package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	fundingModel "hospitalku_backend/internals/features/billing/funding/model"
	claimModel "hospitalku_backend/internals/features/billing/insurance/model"
	intentModel "hospitalku_backend/internals/features/billing/payments/model"
	receiptModel "hospitalku_backend/internals/features/billing/receipts/model"
)

func setupFundingTestApp(t *testing.T) (*fiber.App, *gorm.DB, *receiptModel.Receipt) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&receiptModel.Receipt{}, &receiptModel.ReceiptItem{}, &receiptModel.SettlementAuditLog{},
		&intentModel.CardPaymentIntent{}, &intentModel.PaymentGatewayEvent{},
		&claimModel.InsuranceClaim{}, &fundingModel.FundingRequest{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	rcp := receiptModel.Receipt{
		ReceiptNo:          "RCP-FUND-001",
		ReceiptPatientName: "Agus Wijaya",
		ReceiptTotalIDR:    1_200_000,
		ReceiptStatus:      receiptModel.ReceiptStatusPending,
	}
	if err := db.Create(&rcp).Error; err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	ctrl := NewFundingController(db)
	app.Post("/funding/requests", ctrl.SubmitRequest)
	app.Get("/funding/requests", ctrl.ListRequests)
	app.Get("/funding/requests/:id", ctrl.GetRequest)
	app.Patch("/funding/requests/:id/review", ctrl.ReviewRequest)
	return app, db, &rcp
}

func submit(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestSubmitFundingNormalizesProgram(t *testing.T) {
	app, db, rcp := setupFundingTestApp(t)

	// program tak dikenal dipetakan ke "other"
	body := fmt.Sprintf(`{
		"bill_id": "%s",
		"amount": 1200000,
		"program_type": "Kartu Sakti",
		"beneficiary_id": "0009876543210",
		"beneficiary_name": "Agus Wijaya"
	}`, rcp.ReceiptID)

	resp := submit(t, app, http.MethodPost, "/funding/requests", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("submit = %d, want 201", resp.StatusCode)
	}

	var fr fundingModel.FundingRequest
	if err := db.First(&fr, "funding_receipt_id = ?", rcp.ReceiptID).Error; err != nil {
		t.Fatal(err)
	}
	if fr.FundingProgramType != "other" {
		t.Errorf("program = %s, want other", fr.FundingProgramType)
	}

	var got receiptModel.Receipt
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != receiptModel.ReceiptStatusFundingPending {
		t.Errorf("status = %s, want funding_pending", got.ReceiptStatus)
	}
}

func TestRejectFundingReopensReceipt(t *testing.T) {
	app, db, rcp := setupFundingTestApp(t)

	body := fmt.Sprintf(`{
		"bill_id": "%s",
		"amount": 1200000,
		"program_type": "bpjs_kesehatan",
		"beneficiary_id": "0001234567890",
		"beneficiary_name": "Agus Wijaya",
		"reference_number": "SEP-2026-001"
	}`, rcp.ReceiptID)

	resp := submit(t, app, http.MethodPost, "/funding/requests", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("submit = %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	fundingID := out["data"].(map[string]any)["child_id"].(string)

	note := `{"status": "rejected", "note": "kuota program habis"}`
	resp = submit(t, app, http.MethodPatch, "/funding/requests/"+fundingID+"/review", note)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("review = %d, want 200", resp.StatusCode)
	}

	var fr fundingModel.FundingRequest
	db.First(&fr, "funding_id = ?", fundingID)
	if fr.FundingStatus != fundingModel.FundingStatusRejected {
		t.Errorf("funding status = %s, want rejected", fr.FundingStatus)
	}
	if fr.FundingNote == nil || *fr.FundingNote != "kuota program habis" {
		t.Errorf("note tidak tersimpan: %v", fr.FundingNote)
	}

	var got receiptModel.Receipt
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != receiptModel.ReceiptStatusPending {
		t.Errorf("status = %s, want pending", got.ReceiptStatus)
	}

	// list terfilter status
	resp = submit(t, app, http.MethodGet, "/funding/requests?funding_status=rejected", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list = %d, want 200", resp.StatusCode)
	}
	out = map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if rows, _ := out["data"].([]any); len(rows) != 1 {
		t.Errorf("list rejected: %d baris, want 1", len(rows))
	}
}
