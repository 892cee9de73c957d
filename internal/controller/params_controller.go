package controller

import (
	"errors"

	"bkt_predictor/internal/model"
	"bkt_predictor/internal/service"
	"bkt_predictor/internal/util"

	"github.com/gin-gonic/gin"
)

type ParamsController struct {
	ParamsService *service.ParamsService
}

func NewParamsController(params *service.ParamsService) *ParamsController {
	return &ParamsController{ParamsService: params}
}

// @Summary List trained parameters
// @Description Returns the loaded per-theme parameters and the configured defaults
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/params [get]
func (c *ParamsController) GetParams(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"themes":   c.ParamsService.All(),
		"defaults": c.ParamsService.Defaults(),
	})
}

// @Summary Reload trained parameters
// @Description Re-reads the params snapshot from its configured source
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/admin/params/reload [post]
func (c *ParamsController) ReloadParams(ctx *gin.Context) {
	if err := c.ParamsService.Reload(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"themes": len(c.ParamsService.All())})
}

type upsertParamsRequest struct {
	Transition float64 `json:"transition" binding:"gte=0,lte=1"`
	Guess      float64 `json:"guess" binding:"gte=0,lte=1"`
	Slip       float64 `json:"slip" binding:"gte=0,lte=1"`
	Prior      float64 `json:"prior" binding:"gte=0,lte=1"`
}

// @Summary Upsert theme parameters
// @Description Overrides the trained parameters for one theme and persists the snapshot
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param theme_id path string true "Theme ID"
// @Param params body upsertParamsRequest true "BKT parameters"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/params/{theme_id} [put]
func (c *ParamsController) UpsertParams(ctx *gin.Context) {
	themeID := ctx.Param("theme_id")

	var req upsertParamsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ParamsService.Upsert(themeID, model.ThemeParams{
		Transition: req.Transition,
		Guess:      req.Guess,
		Slip:       req.Slip,
		Prior:      req.Prior,
	})
	if errors.Is(err, service.ErrReadOnlyStore) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"theme_id": themeID})
}
