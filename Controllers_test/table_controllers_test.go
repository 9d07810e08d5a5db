package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/littleboyzz/Billiard-Plus-App/controllers"
	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/services"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

var baseTime = time.Date(2025, 10, 1, 18, 0, 0, 0, time.UTC)

// stubSource satisfies services.SourceClient for controllers that only
// need a monitor to exist (ForceRefresh on close / manual refresh).
type stubSource struct{}

func (stubSource) ListAreas(ctx context.Context) ([]models.Area, error) { return nil, nil }
func (stubSource) ListTables(ctx context.Context) ([]models.Table, error) {
	return nil, nil
}

func seedRegistry(now time.Time) *services.Registry {
	registry := services.NewRegistryWithClock(func() time.Time { return now })
	registry.UpsertFromSource(
		[]models.Table{
			{ID: "t1", Name: "Bàn 1", AreaID: "A", Status: models.StatusAvailable, RatePerHour: 40000, Active: true},
			{ID: "t2", Name: "Bàn 2", AreaID: "A", Status: models.StatusPlaying, RatePerHour: 40000, Active: true,
				Session: &models.Session{ID: "s2", TableID: "t2", StartTime: baseTime}},
			{ID: "t3", Name: "Bàn 3", AreaID: "B", Status: models.StatusReserved, RatePerHour: 50000, Active: true},
		},
		[]models.Area{
			{ID: "A", Name: "Khu vực 1"},
			{ID: "B", Name: "Khu vực 2"},
		},
	)
	return registry
}

func setupTableRouter(registry *services.Registry, carts *services.CartManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	monitor := services.NewSyncMonitor(stubSource{}, registry)
	tableCtrl := controllers.NewTableController(registry, carts, monitor)
	router.GET("/areas", tableCtrl.GetAreas)
	router.POST("/areas/select", tableCtrl.SelectArea)
	router.GET("/tables", tableCtrl.GetTables)
	router.GET("/tables/stats", tableCtrl.GetStats)
	router.POST("/tables/:table_id/open", tableCtrl.OpenTable)
	router.POST("/tables/:table_id/close", tableCtrl.CloseTable)
	router.POST("/sync/refresh", tableCtrl.Refresh)
	return router
}

func TestGetTables(t *testing.T) {
	utils.InitLogger()
	// Thirty minutes into t2's session.
	registry := seedRegistry(baseTime.Add(30 * time.Minute))
	router := setupTableRouter(registry, services.NewCartManager())

	req, err := http.NewRequest("GET", "/tables?area_id=all", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	assert.Len(t, data, 3)

	// t2 carries live elapsed time and the accrued amount so far.
	playing := data[1].(map[string]interface{})
	assert.Equal(t, "t2", playing["id"])
	assert.Equal(t, "Khu vực 1", playing["area_name"])
	assert.Equal(t, float64(1800), playing["elapsed_seconds"])
	assert.Equal(t, float64(20000), playing["accrued"])
	assert.Equal(t, "20.000đ", playing["accrued_display"])
	assert.NotNil(t, playing["current_session"])
}

func TestGetTablesFilteredByArea(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	router := setupTableRouter(registry, services.NewCartManager())

	req, _ := http.NewRequest("GET", "/tables?area_id=B", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "t3", data[0].(map[string]interface{})["id"])
}

func TestGetStats(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	router := setupTableRouter(registry, services.NewCartManager())

	req, _ := http.NewRequest("GET", "/tables/stats?area_id=all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(1), data["playing"])
	assert.Equal(t, float64(1), data["available"])
}

func TestOpenTable(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	carts := services.NewCartManager()
	router := setupTableRouter(registry, carts)

	req, _ := http.NewRequest("POST", "/tables/t1/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table opened", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.StatusPlaying, data["status"])
	assert.NotNil(t, data["current_session"])

	// The cart opens with the session.
	_, ok := carts.Get("t1")
	assert.True(t, ok)
}

func TestOpenTableRejectedWhenNotAvailable(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	router := setupTableRouter(registry, services.NewCartManager())

	for _, id := range []string{"t2", "t3"} {
		req, _ := http.NewRequest("POST", "/tables/"+id+"/open", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code, "table %s", id)
	}

	req, _ := http.NewRequest("POST", "/tables/ghost/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCloseTableDiscardsCart(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	carts := services.NewCartManager()
	cart, _ := carts.Open("t2")
	cart.AddItem(models.CartLine{ItemID: "m1", Name: "Trà đá", UnitPrice: 5000, Quantity: 1, Kind: models.KindDrink})
	router := setupTableRouter(registry, carts)

	req, _ := http.NewRequest("POST", "/tables/t2/close", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	table, _ := registry.Get("t2")
	assert.Equal(t, models.StatusAvailable, table.Status)
	_, ok := carts.Get("t2")
	assert.False(t, ok)
}

func TestSelectArea(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	router := setupTableRouter(registry, services.NewCartManager())

	payload, _ := json.Marshal(map[string]string{"area_id": "B"})
	req, _ := http.NewRequest("POST", "/areas/select", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "B", registry.SelectedArea())

	payload, _ = json.Marshal(map[string]string{"area_id": "ghost"})
	req, _ = http.NewRequest("POST", "/areas/select", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManualRefreshAccepted(t *testing.T) {
	utils.InitLogger()
	registry := seedRegistry(baseTime)
	router := setupTableRouter(registry, services.NewCartManager())

	req, _ := http.NewRequest("POST", "/sync/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
}
