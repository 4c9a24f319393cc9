package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonwise-backend/internal/bills"
	"carbonwise-backend/internal/shared/config"
	"carbonwise-backend/internal/shared/metrics"
	"carbonwise-backend/internal/shared/server/middleware"
	"carbonwise-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers and shared resources the router needs.
type RouterDeps struct {
	Bills *bills.Handler
	DB    *sql.DB
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// The upstream client speaks to these routes at the root path, so no version
// prefix is used.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "db": deps.DB != nil})
	})
	r.GET("/metrics", metrics.Handler())

	deps.Bills.RegisterRoutes(&r.RouterGroup)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
