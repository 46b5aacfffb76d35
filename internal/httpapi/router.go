// Package httpapi exposes the day-length engine over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/daylight/internal/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        NewEngine(handler),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

// NewEngine builds the gin engine with middleware and routes.
func NewEngine(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/health", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/places", handler.Places)
		api.PUT("/places/:name", handler.PutPlace)
		api.GET("/daylength", handler.DayLength)
		api.GET("/year", handler.Year)
		api.GET("/compare", handler.Compare)
	}

	return router
}
