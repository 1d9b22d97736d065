package http

import (
	"net/http"

	"vidtube/pkg/apperr"
	"vidtube/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Cause string `json:"cause,omitempty"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the only place an error kind becomes a status code.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	body := gin.H{"error": apperr.Message(err)}
	if kind == apperr.KindAuth {
		body["cause"] = apperr.CauseOf(err)
	}
	c.JSON(statusFor(kind), body)
}

// currentUserID returns the id the auth middleware attached, or "" for an
// anonymous request.
func currentUserID(c *gin.Context) string {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return ""
	}
	id, _ := userID.(string)
	return id
}

func requireUserID(c *gin.Context) (string, bool) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "cause": apperr.CauseMissing})
		return "", false
	}
	return userID, true
}
