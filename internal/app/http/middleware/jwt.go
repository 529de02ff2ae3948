package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"streaming-app/config"
	"streaming-app/database"
	"streaming-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token, loads the user and runs the
// lazy entitlement correction before the handler sees the request. Expiry is
// checked on every authenticated request instead of by a background sweep.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, status, msg := userFromRequest(c)
		if user == nil {
			c.JSON(status, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through either way. Used by catalog routes that personalize output
// (liked flags, premium gating) for signed-in listeners.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _, _ := userFromRequest(c); user != nil {
			c.Set("user_id", user.ID)
			c.Set("user", user)
		}
		c.Next()
	}
}

// RequirePremium gates a route on an active premium entitlement. Must run
// after AuthMiddleware.
func RequirePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsPremium {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":            "Premium subscription required",
				"requires_premium": true,
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware or
// OptionalAuth, nil when the request is anonymous.
func CurrentUser(c *gin.Context) *users.User {
	v, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := v.(*users.User)
	if !ok {
		return nil
	}
	return user
}

func userFromRequest(c *gin.Context) (*users.User, int, string) {
	jwtKey := []byte(config.JWT_SECRET)
	if len(jwtKey) == 0 {
		return nil, http.StatusInternalServerError, "JWT secret not configured"
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, http.StatusUnauthorized, "Authorization header missing"
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, http.StatusUnauthorized, "Bearer token malformed"
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, http.StatusUnauthorized, "Invalid token claims"
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, http.StatusUnauthorized, "Invalid token claims"
	}
	userID := uint(userIDFloat)

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, http.StatusUnauthorized, "User not found"
	}

	// Self-healing read: an expired premium flag is corrected here, before
	// any handler or guard can observe it.
	ent, err := users.CheckAndCorrectEntitlement(database.DB, user.ID)
	if err != nil {
		return nil, http.StatusInternalServerError, "Failed to check entitlement"
	}
	user.IsPremium = ent.IsPremium
	user.PremiumExpiresAt = ent.PremiumExpiresAt

	return &user, http.StatusOK, ""
}
