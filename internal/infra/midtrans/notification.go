package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"streaming-app/internal/domain/billing"
)

// ErrMalformedNotification marks webhook payloads missing the fields needed
// to correlate them with a local transaction. The webhook transport still
// acknowledges these to keep the gateway from redelivering forever.
var ErrMalformedNotification = errors.New("malformed gateway notification")

// Notification is the normalized shape of a gateway callback. The raw payload
// is untyped only at the boundary; nothing past ParseNotification touches
// gateway vocabulary.
type Notification struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
}

// ParseNotification extracts the normalized fields from a decoded webhook
// body. order_id and transaction_status are required.
func ParseNotification(raw map[string]interface{}) (Notification, error) {
	n := Notification{
		OrderID:           stringField(raw, "order_id"),
		TransactionStatus: stringField(raw, "transaction_status"),
		FraudStatus:       stringField(raw, "fraud_status"),
		PaymentType:       stringField(raw, "payment_type"),
		StatusCode:        stringField(raw, "status_code"),
		GrossAmount:       stringField(raw, "gross_amount"),
		SignatureKey:      stringField(raw, "signature_key"),
	}

	if n.OrderID == "" || n.TransactionStatus == "" {
		return Notification{}, ErrMalformedNotification
	}

	return n, nil
}

// LocalStatus maps the gateway status vocabulary to the ledger's.
func (n Notification) LocalStatus() string {
	return MapStatus(n.TransactionStatus, n.FraudStatus)
}

// MapStatus translates a gateway (transaction_status, fraud_status) pair:
// capture is success only when fraud checks accept it, otherwise challenge;
// settlement is success; cancel, deny and expire are failed; anything else,
// unknown vocabulary included, stays pending.
func MapStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return billing.StatusSuccess
		}
		return billing.StatusChallenge
	case "settlement":
		return billing.StatusSuccess
	case "cancel", "deny", "expire":
		return billing.StatusFailed
	default:
		return billing.StatusPending
	}
}

// ValidSignature checks the gateway's shared-secret signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (n Notification) ValidSignature(serverKey string) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}

func stringField(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}
