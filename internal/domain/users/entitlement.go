package users

import (
	"time"

	"gorm.io/gorm"
)

// Entitlement is the view of a user's premium access returned to callers
// (auth middleware, billing) after lazy expiry correction has run.
type Entitlement struct {
	IsPremium        bool
	PremiumExpiresAt *time.Time
}

// CheckAndCorrectEntitlement loads the user's entitlement and heals stale
// state: a premium flag whose expiry has passed is persisted back as
// non-premium before the result is returned. There is no background sweep;
// every authenticated request goes through this read.
//
// The correction is guarded by "still expired at write time" so it can never
// race a fresh extension into the wrong direction: extension only ever sets
// is_premium = true with a future expiry, correction only clears rows whose
// stored expiry is already in the past.
func CheckAndCorrectEntitlement(db *gorm.DB, userID uint) (Entitlement, error) {
	var user User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return Entitlement{}, err
	}

	now := time.Now()
	if user.IsPremium && user.PremiumExpiresAt != nil && !user.PremiumExpiresAt.After(now) {
		err := db.Model(&User{}).
			Where("id = ? AND premium_expires_at IS NOT NULL AND premium_expires_at <= ?", userID, now).
			Updates(map[string]interface{}{
				"is_premium":         false,
				"premium_expires_at": nil,
			}).Error
		if err != nil {
			return Entitlement{}, err
		}
		user.IsPremium = false
		user.PremiumExpiresAt = nil
	}

	return Entitlement{IsPremium: user.IsPremium, PremiumExpiresAt: user.PremiumExpiresAt}, nil
}
