package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/internal/config"
	"github.com/jakechorley/volunteer-hours/pkg/core/services"
	"github.com/jakechorley/volunteer-hours/pkg/db"
	"github.com/jakechorley/volunteer-hours/pkg/utils/logging"
)

// NewRouter builds the HTTP engine: /api endpoints plus static files from the public directory
func NewRouter(cfg *config.Config, database db.Database, newWriter services.WorksheetWriterFactory, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.ContextWithFallback = true
	router.Use(gin.Recovery(), logging.GinLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	apiRouter := router.Group("/api")

	NewHTTPHandler(HTTPOptions{
		Store:     database,
		NewWriter: newWriter,
		Logger:    logger,
		Router:    apiRouter,
	})

	router.NoRoute(staticHandler(cfg.PublicDir))

	return router
}
