package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/services"
)

// StatusFor maps service errors to HTTP status codes. Unclassified errors
// are internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"message": ...}. Internal errors are logged and
// never shown to the caller.
func RespondError(ctx *gin.Context, err error) {
	status := StatusFor(err)

	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", ctx.Request.Method, ctx.FullPath(), err)
		ctx.JSON(status, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(status, gin.H{"message": err.Error()})
}
