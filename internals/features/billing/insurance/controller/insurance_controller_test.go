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

func setupInsuranceTestApp(t *testing.T) (*fiber.App, *gorm.DB, *receiptModel.Receipt) {
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
		ReceiptNo:          "RCP-INS-001",
		ReceiptPatientName: "Siti Rahma",
		ReceiptTotalIDR:    350_000,
		ReceiptStatus:      receiptModel.ReceiptStatusPending,
	}
	if err := db.Create(&rcp).Error; err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	ctrl := NewInsuranceController(db)
	app.Post("/insurance/claims", ctrl.SubmitClaim)
	app.Get("/insurance/claims", ctrl.ListClaims)
	app.Get("/insurance/claims/:id", ctrl.GetClaim)
	app.Patch("/insurance/claims/:id/review", ctrl.ReviewClaim)
	return app, db, &rcp
}

func postJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestSubmitClaimValidation(t *testing.T) {
	app, _, rcp := setupInsuranceTestApp(t)

	// policy_number kosong → 400 dan field-nya disebut
	body := fmt.Sprintf(`{
		"bill_id": "%s",
		"amount": 350000,
		"insurance_provider": "Asuransi Sehat",
		"claimant_name": "Siti Rahma",
		"claimant_id": "3174xxxxxxxxxxxx"
	}`, rcp.ReceiptID)

	resp := postJSON(t, app, http.MethodPost, "/insurance/claims", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	errs, _ := out["errors"].(map[string]any)
	if _, ok := errs["PolicyNumber"]; !ok {
		t.Errorf("errors harus menyebut PolicyNumber, dapat %v", out)
	}
}

func TestSubmitAndReviewClaimFlow(t *testing.T) {
	app, db, rcp := setupInsuranceTestApp(t)

	body := fmt.Sprintf(`{
		"bill_id": "%s",
		"amount": 350000,
		"insurance_provider": "Asuransi Sehat",
		"policy_number": "POL-88",
		"claimant_name": "Siti Rahma",
		"claimant_id": "3174xxxxxxxxxxxx"
	}`, rcp.ReceiptID)

	resp := postJSON(t, app, http.MethodPost, "/insurance/claims", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("submit = %d, want 201", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	data := out["data"].(map[string]any)
	claimID := data["child_id"].(string)

	var got receiptModel.Receipt
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != receiptModel.ReceiptStatusClaimPending {
		t.Errorf("status = %s, want claim_pending", got.ReceiptStatus)
	}

	// klaim kedua saat masih pending → 409
	resp = postJSON(t, app, http.MethodPost, "/insurance/claims", body)
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("klaim dobel = %d, want 409", resp.StatusCode)
	}

	// approve → paid
	resp = postJSON(t, app, http.MethodPatch, "/insurance/claims/"+claimID+"/review", `{"status": "approved"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("review = %d, want 200", resp.StatusCode)
	}
	db.First(&got, "receipt_id = ?", rcp.ReceiptID)
	if got.ReceiptStatus != receiptModel.ReceiptStatusPaid {
		t.Errorf("status = %s, want paid", got.ReceiptStatus)
	}

	// status selain approved/rejected ditolak validator
	resp = postJSON(t, app, http.MethodPatch, "/insurance/claims/"+claimID+"/review", `{"status": "voided"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status voided = %d, want 400", resp.StatusCode)
	}
}

func TestListClaimsFilters(t *testing.T) {
	app, _, rcp := setupInsuranceTestApp(t)

	body := fmt.Sprintf(`{
		"bill_id": "%s",
		"amount": 350000,
		"insurance_provider": "Asuransi Sehat",
		"policy_number": "POL-88",
		"claimant_name": "Siti Rahma",
		"claimant_id": "3174xxxxxxxxxxxx"
	}`, rcp.ReceiptID)
	resp := postJSON(t, app, http.MethodPost, "/insurance/claims", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("submit = %d, want 201", resp.StatusCode)
	}

	cases := []struct {
		path string
		want int
	}{
		{"/insurance/claims?bill_id=" + rcp.ReceiptID.String(), 1},
		{"/insurance/claims?claim_status=pending", 1},
		{"/insurance/claims?claim_status=approved", 0},
	}
	for _, tc := range cases {
		resp := postJSON(t, app, http.MethodGet, tc.path, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %s = %d, want 200", tc.path, resp.StatusCode)
		}
		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		rows, _ := out["data"].([]any)
		if len(rows) != tc.want {
			t.Errorf("GET %s: %d baris, want %d", tc.path, len(rows), tc.want)
		}
	}

	// bill_id bukan UUID → 400
	resp = postJSON(t, app, http.MethodGet, "/insurance/claims?bill_id=abc", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bill_id abc = %d, want 400", resp.StatusCode)
	}
}
