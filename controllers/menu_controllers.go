package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllItems -> the whole catalog
func (mc *MenuController) GetAllItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetItemsByKind -> one category tab (food / drink / entertainment)
func (mc *MenuController) GetItemsByKind(c *gin.Context) {
	kind := c.Query("kind")
	if kind == "" {
		kind = models.KindFood
	}
	var items []models.MenuItem
	if err := mc.DB.Where("kind = ?", kind).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items with kind: "+kind, items)
}
