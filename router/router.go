package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/controllers"
	"github.com/littleboyzz/Billiard-Plus-App/middlewares"
	"github.com/littleboyzz/Billiard-Plus-App/services"
)

// SetupRouter wires the HTTP surface over the engine: the table list and
// stats the screens read, the mutators they call, and the websocket hub.
func SetupRouter(
	registry *services.Registry,
	carts *services.CartManager,
	monitor *services.SyncMonitor,
	finalizer *services.Finalizer,
	db *gorm.DB,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	tableCtrl := controllers.NewTableController(registry, carts, monitor)
	cartCtrl := controllers.NewCartController(carts, db)
	checkoutCtrl := controllers.NewCheckoutController(finalizer, db)
	menuCtrl := controllers.NewMenuController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Realtime updates for the table grid
	r.GET("/ws", controllers.POSHandler)

	// Areas
	r.GET("/areas", tableCtrl.GetAreas)
	r.POST("/areas/select", tableCtrl.SelectArea)

	// Tables
	r.GET("/tables", tableCtrl.GetTables)
	r.GET("/tables/stats", tableCtrl.GetStats)
	r.POST("/tables/:table_id/open", tableCtrl.OpenTable)
	r.POST("/tables/:table_id/close", tableCtrl.CloseTable)

	// Order cart
	r.GET("/tables/:table_id/cart", cartCtrl.GetCart)
	r.POST("/tables/:table_id/cart/items", cartCtrl.AddItem)
	r.DELETE("/tables/:table_id/cart/items/:line_id", cartCtrl.RemoveItem)
	r.PATCH("/tables/:table_id/cart", cartCtrl.Adjust)

	// Billing
	r.GET("/tables/:table_id/bill", checkoutCtrl.GetBill)
	checkout := r.Group("/")
	checkout.Use(middlewares.NewStrictRateLimiter())
	{
		checkout.POST("/tables/:table_id/checkout", checkoutCtrl.Checkout)
	}

	// Bills history
	r.GET("/transactions", checkoutCtrl.GetTransactions)
	r.GET("/transactions/:txn_id", checkoutCtrl.GetTransaction)

	// Menu catalog
	r.GET("/menus", menuCtrl.GetAllItems)
	r.GET("/menus/by-kind", menuCtrl.GetItemsByKind)

	// Manual pull-to-refresh
	r.POST("/sync/refresh", tableCtrl.Refresh)

	return r
}
