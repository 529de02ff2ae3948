package users

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"not null;uniqueIndex:idx_users_username"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email"`
	Password string `gorm:"not null"`
	Avatar   string `gorm:"default:'/images/default-avatar.png'"`
	Role     string `gorm:"not null;default:'user'"`

	IsPremium        bool       `gorm:"column:is_premium;not null;default:false"`
	PremiumExpiresAt *time.Time `gorm:"column:premium_expires_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveEntitlement reports whether the user's premium window is open at t.
func (u *User) HasActiveEntitlement(t time.Time) bool {
	return u.IsPremium && u.PremiumExpiresAt != nil && u.PremiumExpiresAt.After(t)
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
