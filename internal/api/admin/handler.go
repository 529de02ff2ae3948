package admin

import (
	"net/http"
	"time"

	"streaming-app/database"
	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID               uint       `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	IsPremium        bool       `json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

type AdminTransaction struct {
	ID          uint    `json:"id"`
	OrderID     string  `json:"order_id"`
	Email       string  `json:"email"`
	PlanID      string  `json:"plan_id"`
	Amount      int64   `json:"amount"`
	Status      string  `json:"status"`
	PaymentType *string `json:"payment_type,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers          int            `json:"total_users"`
	PremiumUsers        int            `json:"premium_users"`
	TotalRevenue        int64          `json:"total_revenue"`
	RecentRevenue       int64          `json:"recent_revenue"`
	TransactionsPerPlan map[string]int `json:"transactions_per_plan"`
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:               u.ID,
			Username:         u.Username,
			Email:            u.Email,
			Role:             u.Role,
			IsPremium:        u.IsPremium,
			PremiumExpiresAt: u.PremiumExpiresAt,
			CreatedAt:        u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": out})
}

func ListAllTransactions(c *gin.Context) {
	var txs []billing.Transaction
	if err := database.DB.Preload("User").Order("created_at DESC").Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	out := make([]AdminTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, AdminTransaction{
			ID:          tx.ID,
			OrderID:     tx.OrderID,
			Email:       tx.User.Email,
			PlanID:      tx.PlanID,
			Amount:      tx.Amount,
			Status:      tx.Status,
			PaymentType: tx.PaymentType,
			CreatedAt:   tx.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"transactions": out})
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers, premiumUsers int64
	if err := database.DB.Model(&users.User{}).Count(&totalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := database.DB.Model(&users.User{}).Where("is_premium = ?", true).Count(&premiumUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	var totalRevenue, recentRevenue int64
	if err := database.DB.Model(&billing.Transaction{}).
		Where("status = ?", billing.StatusSuccess).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if err := database.DB.Model(&billing.Transaction{}).
		Where("status = ? AND created_at >= ?", billing.StatusSuccess, thirtyDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&recentRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	stats.TotalUsers = int(totalUsers)
	stats.PremiumUsers = int(premiumUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type planCount struct {
		PlanType string
		Count    int
	}
	var counts []planCount
	if err := database.DB.
		Table("transactions").
		Select("plan_type, COUNT(id) as count").
		Where("status = ?", billing.StatusSuccess).
		Group("plan_type").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	stats.TransactionsPerPlan = map[string]int{}
	for _, pc := range counts {
		stats.TransactionsPerPlan[pc.PlanType] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var txs []billing.Transaction
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                 user.ID,
			"username":           user.Username,
			"email":              user.Email,
			"role":               user.Role,
			"is_premium":         user.IsPremium,
			"premium_expires_at": user.PremiumExpiresAt,
			"created_at":         user.CreatedAt,
		},
		"transactions": txs,
	})
}
