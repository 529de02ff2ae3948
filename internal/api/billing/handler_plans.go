package billing

import (
	"net/http"

	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

var (
	catalog plans.Catalog
	gateway billing.Gateway
)

// Init wires the plan catalog and payment gateway used by the billing
// handlers. Called once from main; tests supply their own catalog and a stub
// gateway.
func Init(c plans.Catalog, gw billing.Gateway) {
	catalog = c
	gateway = gw
}

func ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": catalog.List()})
}
