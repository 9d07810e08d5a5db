package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/services"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

type CheckoutController struct {
	Finalizer *services.Finalizer
	DB        *gorm.DB
}

func NewCheckoutController(finalizer *services.Finalizer, db *gorm.DB) *CheckoutController {
	return &CheckoutController{Finalizer: finalizer, DB: db}
}

// GetBill -> the itemized bill for a table: time charge line plus cart
// lines, with adjustments applied
func (cc *CheckoutController) GetBill(c *gin.Context) {
	bill, err := cc.Finalizer.Quote(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

// Checkout -> finalize payment for a table. Underpayment is rejected
// unless allow_partial is set.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		AmountPaid   *int64 `json:"amount_paid" binding:"required"`
		AllowPartial bool   `json:"allow_partial"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	txn, err := cc.Finalizer.Finalize(tableID, *req.AmountPaid, req.AllowPartial)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}

	utils.InfoLogger.Printf("Transaction %s completed for table %s (change %s)",
		txn.TransactionID, tableID, utils.FormatCurrencyVND(txn.Change))
	utils.RespondJSON(c, http.StatusCreated, "Checkout completed", txn)
}

// GetTransactions -> bills history, newest first
func (cc *CheckoutController) GetTransactions(c *gin.Context) {
	var txns []models.Transaction
	if err := cc.DB.Order("created_at DESC").Find(&txns).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of transactions", txns)
}

// GetTransaction -> one completed transaction by its public id
func (cc *CheckoutController) GetTransaction(c *gin.Context) {
	var txn models.Transaction
	if err := cc.DB.Where("transaction_id = ?", c.Param("txn_id")).First(&txn).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transaction detail", txn)
}
