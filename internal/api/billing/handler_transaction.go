package billing

import (
	"errors"
	"net/http"

	"streaming-app/config"
	"streaming-app/database"
	"streaming-app/internal/app/http/middleware"
	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func CreateTransaction(c *gin.Context) {
	var input struct {
		PlanID string `json:"planId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid planId"})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	tx, err := billing.CreatePending(database.DB, catalog, user, input.PlanID, gateway)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan selected"})
		case errors.Is(err, billing.ErrAlreadyEntitled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You already have an active premium subscription"})
		case errors.Is(err, billing.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable, please try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        tx.SnapToken,
		"redirect_url": tx.SnapURL,
		"order_id":     tx.OrderID,
	})
}

func GetTransactionStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tx, err := billing.GetByOrderID(database.DB, c.Param("orderId"), &userID)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrUnknownOrder):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, billing.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check transaction status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

func ListTransactions(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txs, err := billing.ListForUser(database.DB, userID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// SimulateSuccess forces an order through the success transition without the
// gateway. Testing escape hatch; disabled in production deployments.
func SimulateSuccess(c *gin.Context) {
	if config.IsProduction() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not available in production"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID := c.Param("orderId")
	if _, err := billing.GetByOrderID(database.DB, orderID, &userID); err != nil {
		switch {
		case errors.Is(err, billing.ErrUnknownOrder):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, billing.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate payment"})
		}
		return
	}

	if _, _, err := billing.Reconcile(database.DB, catalog, orderID, billing.StatusSuccess, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate payment"})
		return
	}

	ent, err := users.CheckAndCorrectEntitlement(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Payment simulated successfully",
		"premium_expires_at": ent.PremiumExpiresAt,
	})
}
