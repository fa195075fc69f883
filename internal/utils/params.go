package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetEmailParam(ctx *gin.Context) (string, error) {
	emailStr := ctx.Param("email")

	if emailStr == "" {
		return "", errors.New("Email not found")
	}

	// gin has already path-decoded the value
	email := strings.TrimSpace(emailStr)

	if email == "" {
		return "", errors.New("Invalid email")
	}

	return email, nil
}

func GetIDParam(ctx *gin.Context, name string) (string, error) {
	id := strings.TrimSpace(ctx.Param(name))

	if id == "" {
		return "", errors.New("ID not found")
	}

	return id, nil
}
