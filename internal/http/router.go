package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"statboard-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a gin engine. Routes accept every method
// so handlers can answer 405 themselves. Admin routes are only mounted when
// admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Any("/health", gin.WrapF(handler.Health))
	router.Any("/ready", gin.WrapF(handler.Ready))

	currency := router.Group("/currency")
	currency.Any("/movers", gin.WrapF(handler.CurrencyMovers))
	currency.Any("/movers/chart", gin.WrapF(handler.CurrencyMoversChart))

	players := router.Group("/players")
	players.Any("/dashboard", gin.WrapF(handler.PlayersDashboard))
	players.Any("/dashboard/chart", gin.WrapF(handler.PlayersDashboardChart))
	players.Any("/:"+handlers.PathPlayerName+"/seasons", withPathValues(handler.PlayerSeasons, handlers.PathPlayerName))

	if admin != nil {
		router.Any("/admin/cache/invalidate", gin.WrapF(admin.InvalidateCaches))
	}
	return router
}

// withPathValues copies gin params onto the request so handlers read them
// with Request.PathValue.
func withPathValues(fn nethttp.HandlerFunc, names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			c.Request.SetPathValue(name, c.Param(name))
		}
		fn(c.Writer, c.Request)
	}
}
