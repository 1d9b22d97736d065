package middleware

import (
	"net/http"
	"strings"

	"vidtube/pkg/apperr"
	"vidtube/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	UserIDKey = "user_id"
)

// AccessTokenFromRequest returns the access token carried by the
// accessToken cookie or, failing that, an "Authorization: Bearer" header.
func AccessTokenFromRequest(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := AccessTokenFromRequest(c)
		if !present {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "cause": apperr.CauseMissing})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			cause := apperr.CauseOf(err)
			if cause == "" || cause == apperr.CauseMissing {
				cause = apperr.CauseInvalid
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": apperr.Message(err), "cause": cause})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's id when a valid access token
// is present and lets anonymous requests through untouched.
func OptionalAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, present := AccessTokenFromRequest(c); present {
			if claims, err := jwtService.ValidateAccessToken(token); err == nil {
				c.Set(UserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}
