package paymentwebhook

import (
	"errors"
	"net/http"

	"streaming-app/database"
	"streaming-app/internal/app/http/middleware"
	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/plans"
	"streaming-app/internal/infra/midtrans"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	catalog   plans.Catalog
	serverKey string
)

// Init wires the plan catalog and the gateway server key used to verify
// notification signatures. An empty key disables verification (tests).
func Init(c plans.Catalog, key string) {
	catalog = c
	serverKey = key
}

// PaymentNotification handles the gateway's asynchronous callbacks. Delivery
// is at-least-once and unordered, so everything here is idempotent: the
// entitlement side effect fires only on the ledger's first transition into
// success. Unparseable payloads and unknown orders are acknowledged with 200
// so the gateway's redelivery policy cannot turn a permanent failure into an
// infinite retry loop; only unexpected internal errors return 500 to request
// a retry.
func PaymentNotification(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		zap.L().Warn("undecodable payment notification", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	n, err := midtrans.ParseNotification(raw)
	if err != nil {
		zap.L().Warn("malformed payment notification", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if serverKey != "" && !n.ValidSignature(serverKey) {
		zap.L().Warn("payment notification failed signature check",
			zap.String("order_id", n.OrderID))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	transition, applied, err := billing.Reconcile(database.DB, catalog, n.OrderID, n.LocalStatus(), n.PaymentType)
	if err != nil {
		if errors.Is(err, billing.ErrUnknownOrder) {
			// Not a transaction this system created; nothing to do.
			zap.L().Warn("payment notification for unknown order",
				zap.String("order_id", n.OrderID))
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		zap.L().Error("payment notification processing failed",
			zap.String("order_id", n.OrderID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	middleware.RecordWebhookProcessed(transition.Current)
	if applied {
		middleware.RecordEntitlementExtended()
		zap.L().Info("premium entitlement extended",
			zap.String("order_id", n.OrderID),
			zap.Uint("user_id", transition.Transaction.UserID),
			zap.String("plan", transition.Transaction.PlanID))
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
