package billing

import (
	"time"

	"streaming-app/internal/domain/users"
)

// Transaction is one purchase attempt. Rows are append-on-create and are
// never deleted; they are the permanent audit trail. Plan price is
// denormalized onto Amount at creation so later catalog changes cannot
// rewrite history.
type Transaction struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	UserID  uint `gorm:"not null;index" json:"-"`
	User    users.User `json:"-"`
	OrderID string `gorm:"column:order_id;not null;uniqueIndex:idx_transactions_order_id" json:"order_id"`
	PlanID  string `gorm:"column:plan_type;not null" json:"plan_type"`
	Amount  int64  `gorm:"not null" json:"amount"`
	Status  string `gorm:"not null;default:'pending'" json:"status"`

	// Set by the gateway once the payment method is known; absent while pending.
	PaymentType *string `gorm:"column:payment_type" json:"payment_type,omitempty"`

	// Opaque gateway handles issued at creation, used by the client to
	// complete payment. Never re-issued.
	SnapToken string `gorm:"column:snap_token" json:"-"`
	SnapURL   string `gorm:"column:snap_url" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
