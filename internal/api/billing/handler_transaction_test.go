package billing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"streaming-app/config"
	"streaming-app/database"
	"streaming-app/internal/app/http/middleware"
	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/plans"
	"streaming-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGateway struct {
	err   error
	calls int
}

func (g *stubGateway) CreateTransaction(orderID string, amount int64, plan plans.Plan, customer *users.User) (string, string, error) {
	g.calls++
	if g.err != nil {
		return "", "", g.err
	}
	return "tok-" + orderID, "https://pay.example/" + orderID, nil
}

func setupBillingTest(t *testing.T) (*gorm.DB, *gin.Engine, *stubGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"
	config.APP_ENV = "development"

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &billing.Transaction{}))
	database.DB = db

	gw := &stubGateway{}
	Init(plans.DefaultCatalog(), gw)

	router := gin.New()
	router.GET("/api/payment/plans", ListPlans)
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/payment/create-transaction", CreateTransaction)
	auth.GET("/payment/status/:orderId", GetTransactionStatus)
	auth.GET("/payment/transactions", ListTransactions)
	auth.POST("/payment/simulate-success/:orderId", SimulateSuccess)

	return db, router, gw
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *users.User {
	t.Helper()
	user := users.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWT_SECRET))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListPlansPublic(t *testing.T) {
	_, router, _ := setupBillingTest(t)

	w := doJSON(t, router, "GET", "/api/payment/plans", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Plans []plans.Plan `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Plans, 2)
	assert.Equal(t, "monthly", resp.Plans[0].ID, "cheapest plan first")
}

func TestCreateTransaction(t *testing.T) {
	db, router, gw := setupBillingTest(t)
	user := newTestUser(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/payment/create-transaction", tokenFor(t, user.ID),
		gin.H{"planId": "monthly"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gw.calls)

	var resp struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
		OrderID     string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RedirectURL)
	assert.NotEmpty(t, resp.OrderID)

	tx, err := billing.GetByOrderID(db, resp.OrderID, nil)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPending, tx.Status)
	assert.Equal(t, int64(54990), tx.Amount)
}

func TestCreateTransactionInvalidPlan(t *testing.T) {
	db, router, _ := setupBillingTest(t)
	user := newTestUser(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/payment/create-transaction", tokenFor(t, user.ID),
		gin.H{"planId": "lifetime"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionAlreadyEntitled(t *testing.T) {
	db, router, _ := setupBillingTest(t)
	user := newTestUser(t, db, "alice")

	expires := time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"is_premium":         true,
		"premium_expires_at": expires,
	}).Error)

	w := doJSON(t, router, "POST", "/api/payment/create-transaction", tokenFor(t, user.ID),
		gin.H{"planId": "monthly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&billing.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTransactionGatewayUnavailable(t *testing.T) {
	db, router, gw := setupBillingTest(t)
	gw.err = billing.ErrGatewayUnavailable
	user := newTestUser(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/payment/create-transaction", tokenFor(t, user.ID),
		gin.H{"planId": "monthly"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var count int64
	require.NoError(t, db.Model(&billing.Transaction{}).Count(&count).Error)
	assert.Zero(t, count, "gateway failure must not leave a pending row")
}

func TestGetTransactionStatusOwnership(t *testing.T) {
	db, router, _ := setupBillingTest(t)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	tx, err := billing.CreatePending(db, plans.DefaultCatalog(), alice, "monthly", &stubGateway{})
	require.NoError(t, err)

	w := doJSON(t, router, "GET", "/api/payment/status/"+tx.OrderID, tokenFor(t, alice.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/payment/status/"+tx.OrderID, tokenFor(t, bob.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "GET", "/api/payment/status/SPT-0-missing", tokenFor(t, alice.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsOwnOnly(t *testing.T) {
	db, router, _ := setupBillingTest(t)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	_, err := billing.CreatePending(db, plans.DefaultCatalog(), alice, "monthly", &stubGateway{})
	require.NoError(t, err)
	_, err = billing.CreatePending(db, plans.DefaultCatalog(), bob, "yearly", &stubGateway{})
	require.NoError(t, err)

	w := doJSON(t, router, "GET", "/api/payment/transactions", tokenFor(t, alice.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transactions []billing.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "monthly", resp.Transactions[0].PlanID)
}

func TestSimulateSuccess(t *testing.T) {
	db, router, _ := setupBillingTest(t)
	user := newTestUser(t, db, "alice")

	tx, err := billing.CreatePending(db, plans.DefaultCatalog(), user, "monthly", &stubGateway{})
	require.NoError(t, err)

	w := doJSON(t, router, "POST", "/api/payment/simulate-success/"+tx.OrderID, tokenFor(t, user.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := billing.GetByOrderID(db, tx.OrderID, nil)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusSuccess, stored.Status)

	var u users.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.True(t, u.IsPremium)
}

func TestSimulateSuccessDisabledInProduction(t *testing.T) {
	db, router, _ := setupBillingTest(t)
	config.APP_ENV = "production"
	defer func() { config.APP_ENV = "development" }()

	user := newTestUser(t, db, "alice")
	tx, err := billing.CreatePending(db, plans.DefaultCatalog(), user, "monthly", &stubGateway{})
	require.NoError(t, err)

	w := doJSON(t, router, "POST", "/api/payment/simulate-success/"+tx.OrderID, tokenFor(t, user.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := billing.GetByOrderID(db, tx.OrderID, nil)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPending, stored.Status)
}
