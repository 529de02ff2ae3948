package auth

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
	"streaming-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))
	database.DB = db

	router := gin.New()
	router.POST("/api/auth/register", Register)
	router.POST("/api/auth/login", Login)
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware())
	authed.GET("/auth/me", Me)

	return db, router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	db, router := setupAuthTest(t)

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"username":        "alice",
		"email":           "alice@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username  string `json:"username"`
			IsPremium bool   `json:"is_premium"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.False(t, resp.User.IsPremium)

	var stored users.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestRegisterValidation(t *testing.T) {
	_, router := setupAuthTest(t)

	tests := []struct {
		name    string
		payload gin.H
	}{
		{"missing fields", gin.H{"username": "alice"}},
		{"password mismatch", gin.H{"username": "alice", "email": "a@example.com", "password": "secret123", "confirmPassword": "other"}},
		{"short password", gin.H{"username": "alice", "email": "a@example.com", "password": "abc"}},
		{"bad email", gin.H{"username": "alice", "email": "not-an-email", "password": "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/auth/register", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	_, router := setupAuthTest(t)

	payload := gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"}
	w := postJSON(t, router, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	_, router := setupAuthTest(t)

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	w = postJSON(t, router, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, router, "/api/auth/login", gin.H{
		"email": "nobody@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginCorrectsLapsedEntitlement(t *testing.T) {
	db, router := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	expired := time.Now().Add(-time.Hour)
	user := users.User{
		Username:         "alice",
		Email:            "alice@example.com",
		Password:         string(hash),
		IsPremium:        true,
		PremiumExpiresAt: &expired,
	}
	require.NoError(t, db.Create(&user).Error)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			IsPremium        bool        `json:"is_premium"`
			PremiumExpiresAt interface{} `json:"premium_expires_at"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.User.IsPremium, "lapsed premium must read as free")
	assert.Nil(t, resp.User.PremiumExpiresAt)

	var stored users.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsPremium)
	assert.Nil(t, stored.PremiumExpiresAt)
}

func TestMe(t *testing.T) {
	_, router := setupAuthTest(t)

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.User.Email)

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
