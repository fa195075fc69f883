package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/services"
	"github.com/tavola-dev/tavola/internal/types"
	"github.com/tavola-dev/tavola/internal/utils"
)

type CreateOrderRequest struct {
	Email   string            `json:"email"`
	Items   []json.RawMessage `json:"items"`
	Total   types.FlexFloat   `json:"total"`
	Address string            `json:"address"`
	Contact string            `json:"contact"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func CreateOrder(ctx *gin.Context) {
	var body CreateOrderRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	order, err := orderService().Create(ctx.Request.Context(), services.OrderInput{
		Email:   body.Email,
		Items:   body.Items,
		Total:   float64(body.Total),
		Address: body.Address,
		Contact: body.Contact,
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	publishOrder(*order, "")

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
	})
}

func ListUserOrders(ctx *gin.Context) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	orders, err := orderService().ListForUser(ctx.Request.Context(), email)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func ListOrders(ctx *gin.Context) {
	orders, err := orderService().ListAll(ctx.Request.Context())

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func UpdateOrderStatus(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var body UpdateOrderStatusRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	order, previous, err := orderService().SetStatus(ctx.Request.Context(), id, body.Status)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if previous != order.Status {
		publishOrder(*order, previous)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
		"order":   order,
	})
}
