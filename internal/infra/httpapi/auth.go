package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"accounting_docs_service/internal/domain/notification"
	"accounting_docs_service/internal/domain/policy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal"

// Claims is the JWT payload identifying the caller's role and id.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	UID  int64  `json:"uid"`
}

// GenerateToken signs an HS256 token for the given principal.
func GenerateToken(secret string, p notification.Recipient, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: string(p.Type),
		UID:  p.ID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies the bearer token and stores the principal in the context.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		role, err := notification.ParseRecipientType(claims.Role)
		if err != nil || claims.UID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(principalKey, notification.Recipient{Type: role, ID: claims.UID})
		c.Next()
	}
}

// Require aborts with 403 unless the principal's role grants action.
func Require(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok || !policy.Allowed(p.Type, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the principal has exactly role.
func RequireRole(role notification.RecipientType) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok || p.Type != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

func principal(c *gin.Context) (notification.Recipient, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return notification.Recipient{}, false
	}
	p, ok := v.(notification.Recipient)
	return p, ok
}
