package billing

import (
	"fmt"
	"time"

	"streaming-app/internal/domain/plans"
	"streaming-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gateway is the slice of the payment gateway the ledger needs: one
// synchronous transaction-creation call returning the payable handles.
type Gateway interface {
	CreateTransaction(orderID string, amount int64, plan plans.Plan, customer *users.User) (token string, redirectURL string, err error)
}

// StatusTransition is the outcome of RecordStatus. Callers detect first-time
// transitions (Previous != Current) to gate side effects such as entitlement
// extension.
type StatusTransition struct {
	Previous    string
	Current     string
	Transaction Transaction
}

// NewOrderID generates a fresh order identifier: timestamp-prefixed so ids
// stay roughly sortable, random-suffixed so collisions are not a concern
// without a central sequence.
func NewOrderID() string {
	return fmt.Sprintf("SPT-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// CreatePending creates a pending transaction for the given user and plan.
// The gateway call happens before the insert: a transaction row is only ever
// visible with its gateway handles already populated, and a gateway failure
// leaves nothing behind.
func CreatePending(db *gorm.DB, catalog plans.Catalog, user *users.User, planID string, gw Gateway) (*Transaction, error) {
	plan, ok := catalog.Get(planID)
	if !ok {
		return nil, ErrInvalidPlan
	}

	if user.HasActiveEntitlement(time.Now()) {
		return nil, ErrAlreadyEntitled
	}

	orderID := NewOrderID()

	token, redirectURL, err := gw.CreateTransaction(orderID, plan.Price, plan, user)
	if err != nil {
		return nil, err
	}

	tx := Transaction{
		UserID:    user.ID,
		OrderID:   orderID,
		PlanID:    plan.ID,
		Amount:    plan.Price,
		Status:    StatusPending,
		SnapToken: token,
		SnapURL:   redirectURL,
	}
	if err := db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	return &tx, nil
}

// statusesInto returns the statuses a transaction may be in for `status` to
// be entered. Never contains a terminal status or `status` itself.
func statusesInto(status string) []string {
	var froms []string
	for _, s := range []string{StatusPending, StatusSuccess, StatusChallenge, StatusFailed} {
		if canTransition(s, status) {
			froms = append(froms, s)
		}
	}
	return froms
}

// RecordStatus applies a normalized gateway status to the transaction's row.
// It is idempotent: replays of the current status, notifications arriving
// after a terminal status, and otherwise disallowed transitions only refresh
// payment_type and updated_at.
//
// The status write is guarded by the transition rule itself, not by the
// status read above it: `status IN (froms)` lands whenever the row is
// currently in a status that may move to the target, even if a concurrent
// delivery changed the row between the read and the write. A challenge and a
// success racing out of pending therefore both apply, in either commit order,
// and the order always ends in success. Since no terminal status appears in
// froms, a landed write still guarantees Previous != success.
func RecordStatus(db *gorm.DB, orderID string, status string, paymentType string) (StatusTransition, error) {
	var result StatusTransition

	err := db.Transaction(func(tx *gorm.DB) error {
		var t Transaction
		if err := tx.Where("order_id = ?", orderID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrUnknownOrder
			}
			return err
		}

		prev := t.Status

		updates := map[string]interface{}{"updated_at": time.Now()}
		if paymentType != "" {
			updates["payment_type"] = paymentType
		}

		if froms := statusesInto(status); len(froms) > 0 && prev != status {
			casUpdates := map[string]interface{}{"status": status}
			for k, v := range updates {
				casUpdates[k] = v
			}
			res := tx.Model(&Transaction{}).
				Where("order_id = ? AND status IN ?", orderID, froms).
				Updates(casUpdates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				result.Previous = prev
				result.Current = status
				return tx.Where("order_id = ?", orderID).First(&result.Transaction).Error
			}
		}

		// Replay, out-of-order delivery, or a lost race against a terminal
		// status: bookkeeping only, the stored status stands.
		if err := tx.Model(&Transaction{}).Where("order_id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).First(&result.Transaction).Error; err != nil {
			return err
		}
		result.Previous = result.Transaction.Status
		result.Current = result.Transaction.Status
		return nil
	})

	return result, err
}

// GetByOrderID loads a transaction. When ownerID is non-nil the transaction
// must belong to that user.
func GetByOrderID(db *gorm.DB, orderID string, ownerID *uint) (*Transaction, error) {
	var t Transaction
	if err := db.Where("order_id = ?", orderID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUnknownOrder
		}
		return nil, err
	}
	if ownerID != nil && t.UserID != *ownerID {
		return nil, ErrForbidden
	}
	return &t, nil
}

// ListForUser returns the user's transactions, most recent first.
func ListForUser(db *gorm.DB, userID uint, limit int) ([]Transaction, error) {
	var txs []Transaction
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
