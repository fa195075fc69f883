package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/services"
	"github.com/tavola-dev/tavola/internal/types"
	"github.com/tavola-dev/tavola/internal/utils"
)

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Password   string `json:"password"`
	Contact    string `json:"contact"`
	NationalID string `json:"nationalId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func toUserResponse(u models.User) types.UserResponse {
	return types.UserResponse{
		Name:       u.Name,
		Email:      u.Email,
		Address:    u.Address,
		Contact:    u.Contact,
		NationalID: u.NationalID,
	}
}

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	err := userService().Register(ctx.Request.Context(), services.RegisterInput{
		Name:       body.Name,
		Email:      body.Email,
		Address:    body.Address,
		Password:   body.Password,
		Contact:    body.Contact,
		NationalID: body.NationalID,
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	user, err := userService().Login(ctx.Request.Context(), body.Email, body.Password)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    toUserResponse(*user),
	})
}

func ChangePassword(ctx *gin.Context) {
	var body ChangePasswordRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	err := userService().ChangePassword(ctx.Request.Context(), body.Email, body.OldPassword, body.NewPassword)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func ListUsers(ctx *gin.Context) {
	users, err := userService().List(ctx.Request.Context())

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, u := range users {
		response = append(response, toUserResponse(u))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := userService().Get(ctx.Request.Context(), email)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(*user))
}

func DeleteUser(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := userService().Delete(ctx.Request.Context(), email); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
