package model

import "testing"

func TestReceiptStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ReceiptStatus
		want     bool
	}{
		{ReceiptStatusPending, ReceiptStatusClaimPending, true},
		{ReceiptStatusPending, ReceiptStatusFundingPending, true},
		{ReceiptStatusPending, ReceiptStatusPaid, true},
		{ReceiptStatusPending, ReceiptStatusOverdue, true},
		{ReceiptStatusOverdue, ReceiptStatusPaid, true},
		{ReceiptStatusOverdue, ReceiptStatusClaimPending, true},
		{ReceiptStatusClaimPending, ReceiptStatusPaid, true},
		{ReceiptStatusClaimPending, ReceiptStatusPending, true},
		{ReceiptStatusFundingPending, ReceiptStatusPaid, true},
		{ReceiptStatusFundingPending, ReceiptStatusPending, true},

		// paid itu terminal
		{ReceiptStatusPaid, ReceiptStatusPending, false},
		{ReceiptStatusPaid, ReceiptStatusClaimPending, false},
		{ReceiptStatusPaid, ReceiptStatusOverdue, false},

		// tidak ada loncatan antar channel pending
		{ReceiptStatusClaimPending, ReceiptStatusFundingPending, false},
		{ReceiptStatusFundingPending, ReceiptStatusClaimPending, false},
		{ReceiptStatusClaimPending, ReceiptStatusOverdue, false},

		// no-op bukan transisi
		{ReceiptStatusPending, ReceiptStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("CanTransition(%s → %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestReceiptStatusTerminalAndMutable(t *testing.T) {
	if !ReceiptStatusPaid.Terminal() {
		t.Error("paid harus terminal")
	}
	if ReceiptStatusPaid.Mutable() {
		t.Error("paid tidak boleh mutable")
	}
	for _, st := range []ReceiptStatus{ReceiptStatusPending, ReceiptStatusClaimPending, ReceiptStatusFundingPending, ReceiptStatusOverdue} {
		if st.Terminal() {
			t.Errorf("%s tidak boleh terminal", st)
		}
		if !st.Mutable() {
			t.Errorf("%s harus mutable", st)
		}
	}
}

func TestChannelTarget(t *testing.T) {
	if target, ok := ChannelInsurance.ChannelTarget(); !ok || target != ReceiptStatusClaimPending {
		t.Errorf("insurance → %s, want claim_pending", target)
	}
	if target, ok := ChannelFunding.ChannelTarget(); !ok || target != ReceiptStatusFundingPending {
		t.Errorf("funding → %s, want funding_pending", target)
	}
	// Channel kartu tidak mengubah status sampai confirm
	if _, ok := ChannelCard.ChannelTarget(); ok {
		t.Error("channel kartu tidak boleh punya status target")
	}
}

func TestParseReceiptStatus(t *testing.T) {
	st, ok := ParseReceiptStatus("claim_pending")
	if !ok || st != ReceiptStatusClaimPending {
		t.Errorf("ParseReceiptStatus(claim_pending) = %s, %v", st, ok)
	}
	if _, ok := ParseReceiptStatus("lunas"); ok {
		t.Error("status tidak dikenal harus ditolak")
	}
}
