package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/littleboyzz/Billiard-Plus-App/hub"
	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/services"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

type TableController struct {
	Registry *services.Registry
	Carts    *services.CartManager
	Sync     *services.SyncMonitor
}

func NewTableController(registry *services.Registry, carts *services.CartManager, sync *services.SyncMonitor) *TableController {
	return &TableController{Registry: registry, Carts: carts, Sync: sync}
}

// tableView is a table as the screens consume it: mirrored fields plus
// the derived display values (area name, live elapsed time, accrued
// amount so far).
type tableView struct {
	models.Table
	AreaName       string `json:"area_name"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Accrued        int64  `json:"accrued"`
	AccruedDisplay string `json:"accrued_display"`
}

func (tc *TableController) view(t models.Table) tableView {
	v := tableView{
		Table:    t,
		AreaName: tc.Registry.AreaName(t.AreaID),
	}
	if t.Session != nil {
		elapsed := services.Elapsed(t.Session.StartTime, tc.Registry.Now())
		v.ElapsedSeconds = int64(elapsed.Seconds())
		v.Accrued = services.Accrued(elapsed, t.RatePerHour)
		v.AccruedDisplay = utils.FormatCurrencyVND(v.Accrued)
	}
	// Prefer the live local cart over the mirrored count.
	if n := tc.Carts.LineCount(t.ID); n > 0 {
		v.ItemsCount = n
	}
	return v
}

// GetAreas -> the venue's service areas in display order
func (tc *TableController) GetAreas(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of areas", gin.H{
		"areas":    tc.Registry.Areas(),
		"selected": tc.Registry.SelectedArea(),
	})
}

// SelectArea -> switch the active area filter
func (tc *TableController) SelectArea(c *gin.Context) {
	var req struct {
		AreaID string `json:"area_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.Registry.SelectArea(req.AreaID); err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Area selected", gin.H{
		"selected": req.AreaID,
	})
}

// GetTables -> the filtered table list with live elapsed time per table.
// ?area_id overrides the selected area; "all" lists everything.
func (tc *TableController) GetTables(c *gin.Context) {
	areaID := c.Query("area_id")
	if areaID == "" {
		areaID = tc.Registry.SelectedArea()
	}
	if areaID == "all" {
		areaID = ""
	}

	tables := tc.Registry.FilterByArea(areaID)
	views := make([]tableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, tc.view(t))
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

// GetStats -> the summary header: counts by status over the filtered set
func (tc *TableController) GetStats(c *gin.Context) {
	areaID := c.Query("area_id")
	if areaID == "" {
		areaID = tc.Registry.SelectedArea()
	}
	if areaID == "all" {
		areaID = ""
	}

	counts := tc.Registry.CountByStatus(areaID)
	total := 0
	for _, n := range counts {
		total += n
	}
	utils.RespondJSON(c, http.StatusOK, "Table stats", gin.H{
		"by_status": counts,
		"total":     total,
		"playing":   counts[models.StatusPlaying],
		"available": counts[models.StatusAvailable],
	})
}

// OpenTable -> start a session on an available table and open its cart
func (tc *TableController) OpenTable(c *gin.Context) {
	tableID := c.Param("table_id")

	if _, exists := tc.Carts.Get(tableID); exists {
		utils.RespondError(c, http.StatusConflict, services.ErrCartExists)
		return
	}

	table, err := tc.Registry.RequestOpen(tableID)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	if _, err := tc.Carts.Open(tableID); err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}

	hub.BroadcastTableOpen(table)
	utils.InfoLogger.Printf("Table %s opened (session %s)", table.ID, table.Session.ID)
	utils.RespondJSON(c, http.StatusOK, "Table opened", tc.view(table))
}

// CloseTable -> release a playing table without a checkout (cancel); the
// cart is discarded
func (tc *TableController) CloseTable(c *gin.Context) {
	tableID := c.Param("table_id")

	table, err := tc.Registry.RequestClose(tableID)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	tc.Carts.Close(tableID)

	hub.BroadcastTableClose(table)
	tc.Sync.ForceRefresh()

	utils.InfoLogger.Printf("Table %s closed without checkout", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table closed", tc.view(table))
}

// Refresh -> manual pull-to-refresh; schedules an immediate sync tick
// without resetting the periodic timer
func (tc *TableController) Refresh(c *gin.Context) {
	tc.Sync.ForceRefresh()
	utils.RespondJSON(c, http.StatusAccepted, "Refresh scheduled", nil)
}
