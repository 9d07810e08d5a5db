package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/services"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

type CartController struct {
	Carts *services.CartManager
	DB    *gorm.DB
}

func NewCartController(carts *services.CartManager, db *gorm.DB) *CartController {
	return &CartController{Carts: carts, DB: db}
}

// GetCart -> the table's current order lines and running totals
func (cc *CartController) GetCart(c *gin.Context) {
	tableID := c.Param("table_id")

	cart, ok := cc.Carts.Get(tableID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrNoCart)
		return
	}

	discount, taxRate := cart.Adjustments()
	utils.RespondJSON(c, http.StatusOK, "Cart detail", gin.H{
		"table_id": tableID,
		"lines":    cart.Lines(),
		"subtotal": cart.Subtotal(),
		"discount": discount,
		"tax_rate": taxRate,
	})
}

// AddItem -> add a catalog item to the table's cart (or bump quantity)
func (cc *CartController) AddItem(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, ok := cc.Carts.Get(tableID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrNoCart)
		return
	}

	var item models.MenuItem
	if err := cc.DB.First(&item, req.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	line := cart.AddItem(models.CartLine{
		ItemID:    strconv.FormatUint(uint64(item.ID), 10),
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  req.Quantity,
		Kind:      item.Kind,
	})

	utils.InfoLogger.Printf("Table %s: added %q x%d to cart", tableID, item.Name, line.Quantity)
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", line)
}

// RemoveItem -> drop one line from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	tableID := c.Param("table_id")

	lineID, err := strconv.Atoi(c.Param("line_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, ok := cc.Carts.Get(tableID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrNoCart)
		return
	}

	if err := cart.RemoveItem(lineID); err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{
		"line_id": lineID,
	})
}

// Adjust -> set the checkout adjustments (discount / tax). Omitted fields
// keep their current value.
func (cc *CartController) Adjust(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		Discount *int64   `json:"discount"`
		TaxRate  *float64 `json:"tax_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, ok := cc.Carts.Get(tableID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrNoCart)
		return
	}

	discount, taxRate := cart.Adjustments()
	if req.Discount != nil {
		discount = *req.Discount
	}
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	cart.SetAdjustments(discount, taxRate)

	utils.RespondJSON(c, http.StatusOK, "Adjustments updated", gin.H{
		"discount": discount,
		"tax_rate": taxRate,
	})
}
