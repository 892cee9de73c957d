package controller

import (
	"strconv"

	"bkt_predictor/internal/repository"
	"bkt_predictor/internal/util"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	PredictionRepo  *repository.PredictionLogRepository
	ObservationRepo *repository.ObservationLogRepository
}

func NewLogController(predictionRepo *repository.PredictionLogRepository, observationRepo *repository.ObservationLogRepository) *LogController {
	return &LogController{
		PredictionRepo:  predictionRepo,
		ObservationRepo: observationRepo,
	}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}
	return page, limit
}

// @Summary List prediction logs
// @Description Paged prediction history, newest first
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param theme_id query string false "Filter by theme"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50)"
// @Success 200 {object} util.Response
// @Router /api/admin/predictions [get]
func (c *LogController) ListPredictions(ctx *gin.Context) {
	if c.PredictionRepo == nil {
		util.BadRequest(ctx, "request logging is disabled")
		return
	}

	page, limit := pageParams(ctx)
	logs, total, err := c.PredictionRepo.List(ctx.Query("theme_id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}

// @Summary List observation logs
// @Description Paged observation history, newest first
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param theme_id query string false "Filter by theme"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50)"
// @Success 200 {object} util.Response
// @Router /api/admin/observations [get]
func (c *LogController) ListObservations(ctx *gin.Context) {
	if c.ObservationRepo == nil {
		util.BadRequest(ctx, "request logging is disabled")
		return
	}

	page, limit := pageParams(ctx)
	logs, total, err := c.ObservationRepo.List(ctx.Query("theme_id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}
