package service

import (
	"math"

	"bkt_predictor/internal/config"
	"bkt_predictor/internal/model"
)

// BKTService implements the Bayesian Knowledge Tracing step: predicting
// the success probability of candidate actions from the learner's
// current mastery, and folding an observed outcome back into mastery.
type BKTService struct {
	Params *ParamsService
	cfg    config.BKTConfig
}

func NewBKTService(params *ParamsService, cfg *config.Config) *BKTService {
	return &BKTService{Params: params, cfg: cfg.BKT}
}

// Clamp keeps x in [low, high].
func Clamp(x, low, high float64) float64 {
	return math.Max(low, math.Min(high, x))
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// AggregatePrior estimates prior mastery of an unseen theme as the mean
// mastery of its related themes, clamped to [minPrior, maxPrior].
func AggregatePrior(related []model.Theme, minPrior, maxPrior float64) float64 {
	if len(related) == 0 {
		return minPrior
	}
	sum := 0.0
	for _, rt := range related {
		sum += Clamp(rt.MasteryCoefficient, 0, 1)
	}
	return Clamp(sum/float64(len(related)), minPrior, maxPrior)
}

// resolvePrior picks L0 for the prediction. Most specific signal wins:
// lesson mastery, then theme mastery, then the related-theme aggregate,
// then the trained prior for the theme.
func (s *BKTService) resolvePrior(req *model.PredictRequest, params model.ThemeParams) float64 {
	if req.LessonMastery != nil {
		return Clamp(*req.LessonMastery, 0, 1)
	}
	if req.Theme.MasteryCoefficient > 0 {
		return Clamp(req.Theme.MasteryCoefficient, 0, 1)
	}
	if len(req.RelatedThemes) > 0 {
		return AggregatePrior(req.RelatedThemes, s.cfg.MinAggregatePrior, s.cfg.MaxAggregatePrior)
	}
	return Clamp(params.Prior, 0, 1)
}

// effectiveLikelihood scales guess and slip by action difficulty: a hard
// action is harder to guess and easier to slip on. difficulty 0 means
// the action carries no difficulty signal and the raw parameters apply.
func effectiveLikelihood(guess, slip, difficulty float64) (float64, float64) {
	if difficulty <= 0 {
		return guess, slip
	}
	eg := guess * (1 - difficulty)
	if eg < 0.01 {
		eg = 0.01
	}
	if eg > guess {
		eg = guess
	}
	es := slip * (1 + difficulty)
	if es > 0.6 {
		es = 0.6
	}
	if es < slip {
		es = slip
	}
	return eg, es
}

// Predict evaluates every candidate action and recommends the one whose
// predicted success lands closest to the configured target. The second
// return value names the parameter source ("trained" or "default").
func (s *BKTService) Predict(req *model.PredictRequest) (*model.PredictResponse, string) {
	params, source := s.Params.Resolve(req.Theme.ThemeID)

	l0 := s.resolvePrior(req, params)
	// One learning opportunity is granted before the attempt.
	lk := Clamp(l0+(1-l0)*params.Transition, 0, 1)

	candidates := req.Actions
	if len(candidates) == 0 {
		// Legacy callers send no action list; score a single implicit
		// candidate with the raw parameters.
		candidates = []model.Action{{ActionID: req.ActionIndex}}
	}

	evaluated := make([]model.ActionPrediction, 0, len(candidates))
	for _, a := range candidates {
		eg, es := effectiveLikelihood(params.Guess, params.Slip, a.ActionDifficulty)
		p := Clamp(lk*(1-es)+(1-lk)*eg, 0, 1)
		evaluated = append(evaluated, model.ActionPrediction{
			ActionID:          a.ActionID,
			ActionType:        a.ActionType,
			ActionDifficulty:  a.ActionDifficulty,
			PriorL:            round4(lk),
			EffectiveGuess:    round4(eg),
			EffectiveSlip:     round4(es),
			SuccessPrediction: round4(p),
		})
	}

	chosen := s.chooseAction(evaluated)

	return &model.PredictResponse{
		ThemeID:      req.Theme.ThemeID,
		LessonIndex:  req.LessonIndex,
		ActionIndex:  req.ActionIndex,
		ChosenAction: chosen,
		Actions:      evaluated,
	}, source
}

// chooseAction picks the candidate whose success prediction is closest
// to the target, preferring the easier action on ties.
func (s *BKTService) chooseAction(evaluated []model.ActionPrediction) *model.ActionPrediction {
	if len(evaluated) == 0 {
		return nil
	}
	best := 0
	bestDist := math.Abs(evaluated[0].SuccessPrediction - s.cfg.TargetSuccess)
	for i := 1; i < len(evaluated); i++ {
		d := math.Abs(evaluated[i].SuccessPrediction - s.cfg.TargetSuccess)
		if d < bestDist || (d == bestDist && evaluated[i].ActionDifficulty < evaluated[best].ActionDifficulty) {
			best = i
			bestDist = d
		}
	}
	c := evaluated[best]
	return &c
}

// Update applies the Bayesian mastery update for one observed outcome
// and then the learning transition. Degenerate evidence (zero
// probability mass on the observed outcome) leaves the prior unchanged.
func Update(priorL, guess, slip, transition float64, correct bool) float64 {
	var post float64
	if correct {
		den := priorL*(1-slip) + (1-priorL)*guess
		if den <= 0 {
			post = priorL
		} else {
			post = priorL * (1 - slip) / den
		}
	} else {
		den := priorL*slip + (1-priorL)*(1-guess)
		if den <= 0 {
			post = priorL
		} else {
			post = priorL * slip / den
		}
	}
	return Clamp(post+(1-post)*transition, 0, 1)
}

// Observe returns the updated mastery for an attempt report. An
// unattempted action or a missing outcome is not evidence, so mastery
// stays put.
func (s *BKTService) Observe(req *model.ObserveRequest) *model.ObserveResponse {
	if !req.Attempted || req.Correct == nil {
		return &model.ObserveResponse{UpdatedL: req.PriorL}
	}

	updated := Update(req.PriorL, req.EffectiveGuess, req.EffectiveSlip, req.Transition, *req.Correct)
	return &model.ObserveResponse{UpdatedL: round4(updated)}
}
