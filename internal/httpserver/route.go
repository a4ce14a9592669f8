package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/restaurant_pos/pkg/authclient"
	middleware "github.com/Skotchmaster/restaurant_pos/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	TablesHandler   *TablesHTTP
	SessionsHandler *SessionsHTTP
	JWTSecret       []byte
	AuthClient      *authclient.Client
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	catalog := e.Group("/catalog", authMW.RequireAuth)
	catalog.GET("", d.CatalogHandler.GetMenu)
	catalog.GET("/search", d.CatalogHandler.SearchMenu)
	catalog.GET("/category/:category", d.CatalogHandler.GetByCategory)
	catalog.GET("/products/:id", d.CatalogHandler.GetProduct)

	catalogAdmin := catalog.Group("/products", authMW.RequireAdmin)
	catalogAdmin.POST("", d.CatalogHandler.CreateProduct)
	catalogAdmin.DELETE("/:id", d.CatalogHandler.DeleteProduct)

	tables := e.Group("/tables", authMW.RequireAuth)
	tables.GET("", d.TablesHandler.ListTables)
	tables.POST("", d.TablesHandler.CreateTable)
	tables.GET("/:id", d.TablesHandler.GetTable)
	tables.POST("/:id/reserve", d.TablesHandler.Reserve)
	tables.POST("/:id/close-sale", d.TablesHandler.CloseSale)

	tablesAdmin := tables.Group("", authMW.RequireAdmin)
	tablesAdmin.DELETE("/:id", d.TablesHandler.DeleteTable)

	orders := e.Group("/orders", authMW.RequireAdmin)
	orders.POST("/:id/close", d.TablesHandler.CloseOrder)

	sessions := e.Group("/sessions/:tableId", authMW.RequireAuth)
	sessions.POST("", d.SessionsHandler.Open)
	sessions.GET("", d.SessionsHandler.View)
	sessions.DELETE("", d.SessionsHandler.End)
	sessions.POST("/items", d.SessionsHandler.AddItem)
	sessions.DELETE("/items", d.SessionsHandler.RemoveItem)
	sessions.POST("/bundles/quote", d.SessionsHandler.QuoteBundle)
	sessions.POST("/bundles", d.SessionsHandler.ConfirmBundle)
	sessions.POST("/submit", d.SessionsHandler.Submit)
}
