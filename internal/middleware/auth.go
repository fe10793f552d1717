package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthRequired.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// AuthRequired verifies the Bearer token and resolves the acting user.
// A token that verifies but points at a deleted user leaves no principal
// in the context; downstream checks must fail closed.
func AuthRequired(users store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Println("❌ JWT rejected:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			c.Abort()
			return
		}

		userID, ok := claims["id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if err == store.ErrNotFound {
				// Token checks out but the account is gone. Proceed without
				// a principal; RequireAdmin and handlers fail closed.
				log.Printf("⚠️  Valid token for missing user %s", userID)
				c.Next()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID.Hex())
		c.Set(CtxRole, user.Role)
		c.Next()
	}
}

// RequireAdmin permits only a resolved principal whose role is admin.
// Must run after AuthRequired.
func RequireAdmin(c *gin.Context) {
	role := c.GetString(CtxRole)
	if !strings.EqualFold(role, models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized as an admin"})
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUser returns the principal attached by AuthRequired, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CtxUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
