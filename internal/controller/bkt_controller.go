package controller

import (
	"bkt_predictor/internal/model"
	"bkt_predictor/internal/repository"
	"bkt_predictor/internal/service"
	"bkt_predictor/internal/util"
	"bkt_predictor/pkg/logger"
	"bkt_predictor/pkg/monitoring"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BKTController struct {
	BKTService      *service.BKTService
	MasteryService  *service.MasteryService
	PredictionRepo  *repository.PredictionLogRepository
	ObservationRepo *repository.ObservationLogRepository
}

func NewBKTController(
	bkt *service.BKTService,
	mastery *service.MasteryService,
	predictionRepo *repository.PredictionLogRepository,
	observationRepo *repository.ObservationLogRepository,
) *BKTController {
	return &BKTController{
		BKTService:      bkt,
		MasteryService:  mastery,
		PredictionRepo:  predictionRepo,
		ObservationRepo: observationRepo,
	}
}

// @Summary Predict action success
// @Description Evaluates the candidate actions for the current lesson step and recommends one
// @Tags bkt
// @Accept json
// @Produce json
// @Param request body model.PredictRequest true "Learner state and candidate actions"
// @Success 200 {object} model.PredictResponse
// @Failure 400 {object} util.Response
// @Router /predict [post]
func (c *BKTController) Predict(ctx *gin.Context) {
	var req model.PredictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, source := c.BKTService.Predict(&req)

	monitoring.PredictionCounter.WithLabelValues(source).Inc()
	if resp.ChosenAction != nil {
		monitoring.SuccessPrediction.Observe(resp.ChosenAction.SuccessPrediction)
	}

	if c.PredictionRepo != nil && resp.ChosenAction != nil {
		entry := &model.PredictionLog{
			ThemeID:           resp.ThemeID,
			LessonIndex:       resp.LessonIndex,
			ActionIndex:       resp.ActionIndex,
			ActionID:          resp.ChosenAction.ActionID,
			ActionType:        resp.ChosenAction.ActionType,
			ActionDifficulty:  resp.ChosenAction.ActionDifficulty,
			PriorL:            resp.ChosenAction.PriorL,
			EffectiveGuess:    resp.ChosenAction.EffectiveGuess,
			EffectiveSlip:     resp.ChosenAction.EffectiveSlip,
			SuccessPrediction: resp.ChosenAction.SuccessPrediction,
			ParamsSource:      source,
		}
		// Persisting is bookkeeping, not part of the request.
		go func() {
			if err := c.PredictionRepo.Create(entry); err != nil {
				logger.Log.Error("failed to persist prediction log", zap.Error(err))
			}
		}()
	}

	ctx.JSON(200, resp)
}

// @Summary Observe attempt outcome
// @Description Applies the Bayesian mastery update for an observed attempt
// @Tags bkt
// @Accept json
// @Produce json
// @Param request body model.ObserveRequest true "Attempt outcome and the likelihood it was predicted under"
// @Success 200 {object} model.ObserveResponse
// @Failure 400 {object} util.Response
// @Router /observe [post]
func (c *BKTController) Observe(ctx *gin.Context) {
	var req model.ObserveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp := c.BKTService.Observe(&req)

	outcome := "skipped"
	if req.Attempted && req.Correct != nil {
		if *req.Correct {
			outcome = "correct"
		} else {
			outcome = "incorrect"
		}
	}
	monitoring.ObservationCounter.WithLabelValues(outcome).Inc()

	if req.ThemeID != "" && c.MasteryService.Enabled() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		go func() {
			defer cancel()
			if err := c.MasteryService.Set(cacheCtx, req.ThemeID, resp.UpdatedL); err != nil {
				logger.Log.Error("failed to cache theme mastery", zap.Error(err))
			}
		}()
	}

	if c.ObservationRepo != nil {
		entry := &model.ObservationLog{
			ThemeID:        req.ThemeID,
			Attempted:      req.Attempted,
			Correct:        req.Correct,
			PriorL:         req.PriorL,
			EffectiveGuess: req.EffectiveGuess,
			EffectiveSlip:  req.EffectiveSlip,
			Transition:     req.Transition,
			UpdatedL:       resp.UpdatedL,
		}
		go func() {
			if err := c.ObservationRepo.Create(entry); err != nil {
				logger.Log.Error("failed to persist observation log", zap.Error(err))
			}
		}()
	}

	ctx.JSON(200, resp)
}

// @Summary Last observed theme mastery
// @Description Returns the most recently observed mastery for a theme
// @Tags bkt
// @Produce json
// @Param theme_id path string true "Theme ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/themes/{theme_id}/mastery [get]
func (c *BKTController) GetThemeMastery(ctx *gin.Context) {
	themeID := ctx.Param("theme_id")

	mastery, err := c.MasteryService.Get(ctx.Request.Context(), themeID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"theme_id": themeID,
		"mastery":  mastery,
	})
}
