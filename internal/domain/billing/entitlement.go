package billing

import (
	"fmt"
	"time"

	"streaming-app/internal/domain/plans"
	"streaming-app/internal/domain/users"

	"gorm.io/gorm"
)

// ApplyEntitlement opens the user's premium window: now + the plan's
// duration. The expiry always resets from now rather than extending a prior
// window; CreatePending rejects purchases while an entitlement is active, so
// the re-subscribe-before-lapse path should be unreachable.
func ApplyEntitlement(db *gorm.DB, userID uint, plan plans.Plan) (time.Time, error) {
	expiresAt := time.Now().AddDate(0, 0, plan.DurationDays)

	err := db.Model(&users.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_premium":         true,
			"premium_expires_at": expiresAt,
		}).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to apply entitlement: %w", err)
	}

	return expiresAt, nil
}

// Reconcile records a normalized gateway status for the order and, exactly
// once per order, extends the owning user's entitlement on the first
// transition into success. The guard is derived from the ledger's own prior
// state, which holds up under at-least-once webhook delivery and duplicate
// notifications without a separate dedup store.
func Reconcile(db *gorm.DB, catalog plans.Catalog, orderID string, status string, paymentType string) (StatusTransition, bool, error) {
	transition, err := RecordStatus(db, orderID, status, paymentType)
	if err != nil {
		return transition, false, err
	}

	if transition.Previous == StatusSuccess || transition.Current != StatusSuccess {
		return transition, false, nil
	}

	plan, ok := catalog.Get(transition.Transaction.PlanID)
	if !ok {
		return transition, false, fmt.Errorf("transaction %s references plan %q: %w",
			orderID, transition.Transaction.PlanID, ErrInvalidPlan)
	}

	if _, err := ApplyEntitlement(db, transition.Transaction.UserID, plan); err != nil {
		return transition, false, err
	}

	return transition, true, nil
}
