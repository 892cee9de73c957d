package app

import (
	"bkt_predictor/docs"
	"bkt_predictor/internal/config"
	"bkt_predictor/internal/middleware"
	"bkt_predictor/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// The prediction contract lives at the root; /api aliases exist for
	// callers routed through a shared gateway prefix.
	router.GET("/health", c.health.HealthCheck)
	router.POST("/predict", c.bkt.Predict)
	router.POST("/observe", c.bkt.Observe)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/predict", c.bkt.Predict)
		api.POST("/observe", c.bkt.Observe)
		api.GET("/themes/:theme_id/mastery", c.bkt.GetThemeMastery)

		api.POST("/admin/login", c.auth.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/params", c.params.GetParams)
			admin.POST("/params/reload", c.params.ReloadParams)
			admin.PUT("/params/:theme_id", c.params.UpsertParams)
			admin.GET("/predictions", c.logs.ListPredictions)
			admin.GET("/observations", c.logs.ListObservations)
		}
	}
}
