package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"streaming-app/internal/domain/billing"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		transactionStatus string
		fraudStatus       string
		want              string
	}{
		{"capture", "accept", billing.StatusSuccess},
		{"capture", "challenge", billing.StatusChallenge},
		{"capture", "", billing.StatusChallenge},
		{"settlement", "", billing.StatusSuccess},
		{"settlement", "accept", billing.StatusSuccess},
		{"cancel", "", billing.StatusFailed},
		{"deny", "", billing.StatusFailed},
		{"expire", "", billing.StatusFailed},
		{"pending", "", billing.StatusPending},
		{"authorize", "", billing.StatusPending},
		{"something_new", "accept", billing.StatusPending},
	}

	for _, tt := range tests {
		if got := MapStatus(tt.transactionStatus, tt.fraudStatus); got != tt.want {
			t.Fatalf("MapStatus(%q, %q) = %q, want %q", tt.transactionStatus, tt.fraudStatus, got, tt.want)
		}
	}
}

func TestParseNotification(t *testing.T) {
	n, err := ParseNotification(map[string]interface{}{
		"order_id":           "SPT-1-abc",
		"transaction_status": "settlement",
		"payment_type":       "bank_transfer",
		"status_code":        "200",
		"gross_amount":       "54990.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.OrderID != "SPT-1-abc" || n.TransactionStatus != "settlement" || n.PaymentType != "bank_transfer" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.LocalStatus() != billing.StatusSuccess {
		t.Fatalf("expected success, got %q", n.LocalStatus())
	}
}

func TestParseNotificationMalformed(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"transaction_status": "settlement"},
		{"order_id": "SPT-1-abc"},
		{"order_id": 42, "transaction_status": "settlement"},
	}
	for _, raw := range cases {
		if _, err := ParseNotification(raw); err != ErrMalformedNotification {
			t.Fatalf("expected ErrMalformedNotification for %v, got %v", raw, err)
		}
	}
}

func TestValidSignature(t *testing.T) {
	serverKey := "test-server-key"
	n := Notification{
		OrderID:     "SPT-1-abc",
		StatusCode:  "200",
		GrossAmount: "54990.00",
	}

	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	n.SignatureKey = hex.EncodeToString(sum[:])

	if !n.ValidSignature(serverKey) {
		t.Fatal("expected signature to verify")
	}
	if n.ValidSignature("another-key") {
		t.Fatal("expected signature check to fail with wrong key")
	}

	n.SignatureKey = "deadbeef"
	if n.ValidSignature(serverKey) {
		t.Fatal("expected tampered signature to fail")
	}
}
