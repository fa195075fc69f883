package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/services"
	"github.com/tavola-dev/tavola/internal/types"
	"github.com/tavola-dev/tavola/internal/utils"
)

type AddCartItemRequest struct {
	DishID      string          `json:"dishId"`
	Name        string          `json:"name"`
	Price       types.FlexFloat `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Quantity    types.FlexInt   `json:"quantity"`
}

func GetCart(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	lines, err := cartService().Get(ctx.Request.Context(), email)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, lines)
}

func AddCartItem(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var body AddCartItemRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	err = cartService().AddItem(ctx.Request.Context(), email, services.CartItemInput{
		DishID:      strings.TrimSpace(body.DishID),
		Name:        body.Name,
		Price:       float64(body.Price),
		Image:       body.Image,
		Description: body.Description,
		Quantity:    int(body.Quantity),
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

func ClearCart(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := cartService().Clear(ctx.Request.Context(), email); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func RemoveCartItem(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	dishID, err := utils.GetIDParam(ctx, "dishId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := cartService().RemoveItem(ctx.Request.Context(), email, dishID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
