// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wandersmart/internal/http/handlers"
	"wandersmart/internal/http/middleware"
)

// RouterDeps carries everything the routes need.
type RouterDeps struct {
	Trips  *handlers.TripHandler
	Logger *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger), middleware.Logging(deps.Logger))

	api := r.Group("/api")
	api.POST("/itineraries", deps.Trips.Plan)
	api.POST("/itineraries/raw", deps.Trips.PlanRaw)
	api.POST("/itineraries/preview", deps.Trips.Preview)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
