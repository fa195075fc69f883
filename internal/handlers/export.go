package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/utils"
	"github.com/tealeg/xlsx"
)

func writeWorkbook(c *gin.Context, filename string, file *xlsx.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to write Excel file"})
		return
	}
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

func ExportDishes(c *gin.Context) {
	dishes, err := catalogService().List(c.Request.Context())

	if err != nil {
		utils.RespondError(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Dishes")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel sheet"})
		return
	}

	addHeaderRow(sheet, "ID", "Name", "Category", "Price", "Description", "Image", "CreatedAt", "UpdatedAt")

	for _, d := range dishes {
		row := sheet.AddRow()

		row.AddCell().SetValue(d.ID)
		row.AddCell().SetValue(d.Name)
		row.AddCell().SetValue(d.Category)
		row.AddCell().SetFloat(d.Price)
		row.AddCell().SetValue(d.Description)
		row.AddCell().SetValue(d.Image)
		row.AddCell().SetValue(d.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(d.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	writeWorkbook(c, "dishes.xlsx", file)
}

func ExportOrders(c *gin.Context) {
	orders, err := orderService().ListAll(c.Request.Context())

	if err != nil {
		utils.RespondError(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel sheet"})
		return
	}

	addHeaderRow(sheet, "ID", "Email", "Status", "Items", "Quantity", "Total", "Address", "Contact", "CreatedAt")

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Email)
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(strconv.Itoa(len(o.Items)))
		row.AddCell().SetInt(o.Quantity())
		row.AddCell().SetFloat(o.Total)
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(o.Contact)
		row.AddCell().SetValue(o.CreatedAt.Format(time.RFC3339))
	}

	writeWorkbook(c, "orders.xlsx", file)
}
