package controller

import (
	"net/http"

	"bkt_predictor/internal/service"
	"bkt_predictor/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB            *gorm.DB
	ParamsService *service.ParamsService
}

func NewHealthController(db *gorm.DB, params *service.ParamsService) *HealthController {
	return &HealthController{DB: db, ParamsService: params}
}

// @Summary Health check
// @Description Reports service and component status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{
		"trained_themes": len(c.ParamsService.All()),
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			util.InternalServerError(ctx)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		components["database"] = "up"
	} else {
		components["database"] = "disabled"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
