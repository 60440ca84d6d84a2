// file: internals/features/billing/receipts/model/receipt_status.go
package model

/* =========================================================
   STATUS KUITANSI (enum tertutup, mirror kolom receipt_status)

   Perpindahan status HANYA lewat tabel transisi di bawah —
   jangan pernah set receipt_status langsung di controller.
========================================================= */

type ReceiptStatus string

const (
	ReceiptStatusPending        ReceiptStatus = "pending"
	ReceiptStatusClaimPending   ReceiptStatus = "claim_pending"
	ReceiptStatusFundingPending ReceiptStatus = "funding_pending"
	ReceiptStatusPaid           ReceiptStatus = "paid"
	ReceiptStatusOverdue        ReceiptStatus = "overdue"
)

type SettlementChannel string

const (
	ChannelCard      SettlementChannel = "card"
	ChannelInsurance SettlementChannel = "insurance"
	ChannelFunding   SettlementChannel = "funding"
)

// transitions: daftar tujuan yang sah per status saat ini.
// paid sengaja tidak punya jalur keluar di sini — revert paid→pending
// hanya lewat operasi admin eksplisit (lihat service.AdminRevertToPending).
var transitions = map[ReceiptStatus][]ReceiptStatus{
	ReceiptStatusPending:        {ReceiptStatusClaimPending, ReceiptStatusFundingPending, ReceiptStatusPaid, ReceiptStatusOverdue},
	ReceiptStatusOverdue:        {ReceiptStatusClaimPending, ReceiptStatusFundingPending, ReceiptStatusPaid, ReceiptStatusPending},
	ReceiptStatusClaimPending:   {ReceiptStatusPaid, ReceiptStatusPending},
	ReceiptStatusFundingPending: {ReceiptStatusPaid, ReceiptStatusPending},
	ReceiptStatusPaid:           {},
}

func (s ReceiptStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition: satu-satunya sumber kebenaran transisi status.
func (s ReceiptStatus) CanTransition(to ReceiptStatus) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Mutable: kuitansi masih boleh di-update/delete oleh caller biasa.
// paid permanen terkunci (hanya admin revert yang bisa membuka).
func (s ReceiptStatus) Mutable() bool {
	return s != ReceiptStatusPaid
}

// Terminal: tidak ada settlement lanjutan.
func (s ReceiptStatus) Terminal() bool {
	return s == ReceiptStatusPaid
}

// ChannelTarget: status tujuan saat sebuah channel settlement dibuka.
// Channel kartu tidak mengubah status sampai confirm sukses.
func (ch SettlementChannel) ChannelTarget() (ReceiptStatus, bool) {
	switch ch {
	case ChannelInsurance:
		return ReceiptStatusClaimPending, true
	case ChannelFunding:
		return ReceiptStatusFundingPending, true
	default:
		return "", false
	}
}

func (ch SettlementChannel) Valid() bool {
	switch ch {
	case ChannelCard, ChannelInsurance, ChannelFunding:
		return true
	}
	return false
}

func ParseReceiptStatus(s string) (ReceiptStatus, bool) {
	st := ReceiptStatus(s)
	return st, st.Valid()
}
