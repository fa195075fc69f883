package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/services"
	"github.com/tavola-dev/tavola/internal/utils"
)

// dishForm reads the multipart text fields of a dish. A missing price reads
// as 0.
func dishForm(ctx *gin.Context) (services.DishInput, bool) {
	in := services.DishInput{
		Name:        strings.TrimSpace(ctx.PostForm("name")),
		Description: strings.TrimSpace(ctx.PostForm("description")),
		Category:    strings.TrimSpace(ctx.PostForm("category")),
	}

	if priceStr := strings.TrimSpace(ctx.PostForm("price")); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)

		if err != nil || price < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
			return in, false
		}

		in.Price = price
	}

	return in, true
}

func ListDishes(ctx *gin.Context) {
	dishes, err := catalogService().List(ctx.Request.Context())

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dishes)
}

func CreateDish(ctx *gin.Context) {
	in, ok := dishForm(ctx)

	if !ok {
		return
	}

	image, err := utils.SaveUpload(ctx, "image", UploadDir)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	in.Image = image

	dish, err := catalogService().Create(ctx.Request.Context(), in)

	if err != nil {
		utils.RemoveUpload(UploadDir, image)
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Dish created successfully",
		"dish":    dish,
	})
}

func UpdateDish(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	in, ok := dishForm(ctx)

	if !ok {
		return
	}

	image, err := utils.SaveUpload(ctx, "image", UploadDir)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	in.Image = image

	dish, err := catalogService().Update(ctx.Request.Context(), id, in)

	if err != nil {
		utils.RemoveUpload(UploadDir, image)
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Dish updated successfully",
		"dish":    dish,
	})
}

func DeleteDish(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := catalogService().Delete(ctx.Request.Context(), id); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Dish deleted successfully"})
}
