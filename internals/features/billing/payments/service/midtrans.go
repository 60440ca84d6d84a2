// file: internals/features/billing/payments/service/midtrans.go
package service

import (
	"errors"
	"net/http"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Processor kartu (Midtrans)
   Dua fase:
   - CreateIntent  → snap token (opaque client secret buat sisi client)
   - CheckStatus   → tanya processor apakah charge sudah settle
   Data kartu tidak pernah lewat backend ini.
========================================================= */

type GatewayStatus string

const (
	GatewayStatusSettled GatewayStatus = "settled"
	GatewayStatusPending GatewayStatus = "pending"
	GatewayStatusFailed  GatewayStatus = "failed"
)

// Gateway membungkus processor eksternal supaya bisa distub di test.
type Gateway interface {
	CreateIntent(orderID string, amountIDR int64, description string) (clientSecret string, err error)
	CheckStatus(orderID string) (status GatewayStatus, reason string, err error)
}

// Client dipakai seluruh payment service; di-set oleh InitMidtrans saat bootstrap.
var Client Gateway

var (
	SnapClient snap.Client
	CoreClient coreapi.Client
)

// InitMidtrans menginisialisasi Snap + Core API client dengan server key.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}

	// Timeout bounded — panggilan ke processor tidak boleh menggantung
	// (lock kuitansi juga tidak pernah dipegang selama round trip ini).
	midtrans.DefaultGoHttpClient = &http.Client{Timeout: 15 * time.Second}

	SnapClient.New(serverKey, env)
	CoreClient.New(serverKey, env)

	Client = &midtransGateway{}
}

type midtransGateway struct{}

func (g *midtransGateway) CreateIntent(orderID string, amountIDR int64, description string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amountIDR,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    amountIDR,
				Qty:      1,
				Name:     truncate(description, 50),
				Category: "Hospital Bill",
			},
		},
	}

	resp, mErr := SnapClient.CreateTransaction(req)
	if mErr != nil {
		return "", errors.New(mErr.Message)
	}
	return resp.Token, nil
}

func (g *midtransGateway) CheckStatus(orderID string) (GatewayStatus, string, error) {
	resp, mErr := CoreClient.CheckTransaction(orderID)
	if mErr != nil {
		return "", "", errors.New(mErr.Message)
	}

	switch resp.TransactionStatus {
	case "capture":
		if resp.FraudStatus == "challenge" {
			return GatewayStatusPending, resp.TransactionStatus, nil
		}
		return GatewayStatusSettled, resp.TransactionStatus, nil
	case "settlement":
		return GatewayStatusSettled, resp.TransactionStatus, nil
	case "pending", "authorize":
		return GatewayStatusPending, resp.TransactionStatus, nil
	default:
		// deny / cancel / expire / failure
		return GatewayStatusFailed, resp.TransactionStatus, nil
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
