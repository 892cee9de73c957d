package service

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"bkt_predictor/internal/config"
	"bkt_predictor/internal/model"
)

const epsilon = 1e-4

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f (diff %.6f)", name, got, want, math.Abs(got-want))
	}
}

func testConfig() *config.Config {
	return &config.Config{
		BKT: config.BKTConfig{
			Transition:        0.15,
			Guess:             0.20,
			Slip:              0.10,
			Prior:             0.10,
			TargetSuccess:     0.70,
			MinAggregatePrior: 0.05,
			MaxAggregatePrior: 0.95,
		},
	}
}

func newTestBKT(t *testing.T, trained string) *BKTService {
	t.Helper()
	cfg := testConfig()
	if trained != "" {
		path := filepath.Join(t.TempDir(), "params.json")
		if err := os.WriteFile(path, []byte(trained), 0644); err != nil {
			t.Fatal(err)
		}
		cfg.BKT.ParamsFile = path
	}
	params := NewParamsService(cfg)
	if err := params.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return NewBKTService(params, cfg)
}

func f64(v float64) *float64 { return &v }

// --- Clamp ---

func TestClamp(t *testing.T) {
	tests := []struct {
		x, low, high, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.2, 0, 1, 0},
		{1.7, 0, 1, 1},
		{0.03, 0.05, 0.95, 0.05},
		{0.99, 0.05, 0.95, 0.95},
	}
	for _, tt := range tests {
		assertFloat(t, "Clamp", Clamp(tt.x, tt.low, tt.high), tt.want)
	}
}

// --- AggregatePrior ---

func TestAggregatePriorEmpty(t *testing.T) {
	got := AggregatePrior(nil, 0.05, 0.95)
	assertFloat(t, "AggregatePrior(nil)", got, 0.05)
}

func TestAggregatePriorMean(t *testing.T) {
	related := []model.Theme{
		{ThemeID: "a", MasteryCoefficient: 0.8},
		{ThemeID: "b", MasteryCoefficient: 0.4},
	}
	got := AggregatePrior(related, 0.05, 0.95)
	assertFloat(t, "AggregatePrior(mean)", got, 0.6)
}

func TestAggregatePriorClamped(t *testing.T) {
	high := []model.Theme{
		{ThemeID: "a", MasteryCoefficient: 0.99},
		{ThemeID: "b", MasteryCoefficient: 0.99},
	}
	got := AggregatePrior(high, 0.05, 0.95)
	assertFloat(t, "AggregatePrior(high)", got, 0.95)

	low := []model.Theme{{ThemeID: "a", MasteryCoefficient: 0.0}}
	got = AggregatePrior(low, 0.05, 0.95)
	assertFloat(t, "AggregatePrior(low)", got, 0.05)
}

// --- effectiveLikelihood ---

func TestEffectiveLikelihoodNoDifficulty(t *testing.T) {
	eg, es := effectiveLikelihood(0.2, 0.1, 0)
	assertFloat(t, "guess", eg, 0.2)
	assertFloat(t, "slip", es, 0.1)
}

func TestEffectiveLikelihoodMonotone(t *testing.T) {
	easyG, easyS := effectiveLikelihood(0.2, 0.1, 0.2)
	hardG, hardS := effectiveLikelihood(0.2, 0.1, 0.9)
	if hardG >= easyG {
		t.Errorf("guess should shrink with difficulty: hard=%.4f easy=%.4f", hardG, easyG)
	}
	if hardS <= easyS {
		t.Errorf("slip should grow with difficulty: hard=%.4f easy=%.4f", hardS, easyS)
	}
}

func TestEffectiveLikelihoodBounds(t *testing.T) {
	eg, es := effectiveLikelihood(0.2, 0.55, 1.0)
	if eg < 0.01 {
		t.Errorf("guess floor violated: %.4f", eg)
	}
	if es > 0.6 {
		t.Errorf("slip ceiling violated: %.4f", es)
	}
}

// --- Update ---

func TestUpdateCorrectRaisesMastery(t *testing.T) {
	got := Update(0.5, 0.2, 0.1, 0, true)
	// posterior = 0.5*0.9 / (0.5*0.9 + 0.5*0.2) = 0.45/0.55
	assertFloat(t, "Update(correct)", got, 0.45/0.55)
	if got <= 0.5 {
		t.Errorf("correct answer should raise mastery, got %.4f", got)
	}
}

func TestUpdateIncorrectLowersMastery(t *testing.T) {
	got := Update(0.5, 0.2, 0.1, 0, false)
	// posterior = 0.5*0.1 / (0.5*0.1 + 0.5*0.8) = 0.05/0.45
	assertFloat(t, "Update(incorrect)", got, 0.05/0.45)
	if got >= 0.5 {
		t.Errorf("incorrect answer should lower mastery, got %.4f", got)
	}
}

func TestUpdateAppliesTransition(t *testing.T) {
	noT := Update(0.5, 0.2, 0.1, 0, true)
	withT := Update(0.5, 0.2, 0.1, 0.05, true)
	assertFloat(t, "Update(transition)", withT, noT+(1-noT)*0.05)
}

func TestUpdateDegenerateEvidence(t *testing.T) {
	// guess=0, slip=1 makes a correct answer impossible: mass is zero
	// and the prior must survive (plus transition).
	got := Update(0.0, 0.0, 1.0, 0, true)
	assertFloat(t, "Update(degenerate)", got, 0.0)
}

func TestUpdateStaysInUnitInterval(t *testing.T) {
	for _, correct := range []bool{true, false} {
		for _, l := range []float64{0, 0.25, 0.5, 0.75, 1} {
			got := Update(l, 0.3, 0.2, 0.1, correct)
			if got < 0 || got > 1 {
				t.Errorf("Update(%v, correct=%t) = %.4f out of [0,1]", l, correct, got)
			}
		}
	}
}

// --- Predict ---

func TestPredictDefaultPrior(t *testing.T) {
	s := newTestBKT(t, "")
	resp, source := s.Predict(&model.PredictRequest{
		Theme:       model.Theme{ThemeID: "unknown"},
		LessonIndex: 1,
		ActionIndex: 1,
	})

	if source != SourceDefault {
		t.Errorf("source = %q, want %q", source, SourceDefault)
	}
	if resp.ChosenAction == nil {
		t.Fatal("expected a chosen action for the implicit candidate")
	}
	// L0 = 0.10, Lk = 0.10 + 0.90*0.15 = 0.235
	// p = 0.235*0.9 + 0.765*0.2 = 0.3645
	assertFloat(t, "prior_L", resp.ChosenAction.PriorL, 0.235)
	assertFloat(t, "success_prediction", resp.ChosenAction.SuccessPrediction, 0.3645)
}

func TestPredictLessonMasteryWins(t *testing.T) {
	s := newTestBKT(t, "")
	resp, _ := s.Predict(&model.PredictRequest{
		Theme:         model.Theme{ThemeID: "th", MasteryCoefficient: 0.3},
		LessonMastery: f64(0.8),
		LessonIndex:   2,
		ActionIndex:   1,
	})
	// L0 = 0.8, Lk = 0.8 + 0.2*0.15 = 0.83
	// p = 0.83*0.9 + 0.17*0.2 = 0.781
	assertFloat(t, "prior_L", resp.ChosenAction.PriorL, 0.83)
	assertFloat(t, "success_prediction", resp.ChosenAction.SuccessPrediction, 0.781)
}

func TestPredictThemeMasteryFallback(t *testing.T) {
	s := newTestBKT(t, "")
	resp, _ := s.Predict(&model.PredictRequest{
		Theme:       model.Theme{ThemeID: "th", MasteryCoefficient: 0.3},
		LessonIndex: 1,
		ActionIndex: 1,
	})
	// L0 = 0.3, Lk = 0.3 + 0.7*0.15 = 0.405
	assertFloat(t, "prior_L", resp.ChosenAction.PriorL, 0.405)
}

func TestPredictRelatedThemesFallback(t *testing.T) {
	s := newTestBKT(t, "")
	resp, _ := s.Predict(&model.PredictRequest{
		Theme: model.Theme{ThemeID: "th"},
		RelatedThemes: []model.Theme{
			{ThemeID: "a", MasteryCoefficient: 0.6},
			{ThemeID: "b", MasteryCoefficient: 0.4},
		},
		LessonIndex: 1,
		ActionIndex: 1,
	})
	// L0 = mean(0.6, 0.4) = 0.5, Lk = 0.5 + 0.5*0.15 = 0.575
	assertFloat(t, "prior_L", resp.ChosenAction.PriorL, 0.575)
}

func TestPredictUsesTrainedParams(t *testing.T) {
	s := newTestBKT(t, `{"math_004": {"transition": 0.3, "guess": 0.1, "slip": 0.05, "prior": 0.4}}`)
	resp, source := s.Predict(&model.PredictRequest{
		Theme:       model.Theme{ThemeID: "math_004"},
		LessonIndex: 1,
		ActionIndex: 1,
	})

	if source != SourceTrained {
		t.Errorf("source = %q, want %q", source, SourceTrained)
	}
	// L0 = trained prior 0.4, Lk = 0.4 + 0.6*0.3 = 0.58
	// p = 0.58*0.95 + 0.42*0.1 = 0.593
	assertFloat(t, "prior_L", resp.ChosenAction.PriorL, 0.58)
	assertFloat(t, "success_prediction", resp.ChosenAction.SuccessPrediction, 0.593)
}

func TestPredictEvaluatesAllCandidates(t *testing.T) {
	s := newTestBKT(t, "")
	resp, _ := s.Predict(&model.PredictRequest{
		Theme:       model.Theme{ThemeID: "th"},
		LessonIndex: 1,
		ActionIndex: 1,
		Actions: []model.Action{
			{ActionID: 1, ActionType: "test", ActionDifficulty: 0.2},
			{ActionID: 2, ActionType: "test", ActionDifficulty: 0.9},
		},
	})

	if len(resp.Actions) != 2 {
		t.Fatalf("evaluated %d candidates, want 2", len(resp.Actions))
	}
	if resp.Actions[0].SuccessPrediction <= resp.Actions[1].SuccessPrediction {
		t.Errorf("easier action should predict higher success: %.4f vs %.4f",
			resp.Actions[0].SuccessPrediction, resp.Actions[1].SuccessPrediction)
	}
	for _, a := range resp.Actions {
		if a.SuccessPrediction < 0 || a.SuccessPrediction > 1 {
			t.Errorf("success_prediction %.4f out of [0,1]", a.SuccessPrediction)
		}
	}
}

func TestChooseActionTargetsDesiredSuccess(t *testing.T) {
	s := newTestBKT(t, "")
	evaluated := []model.ActionPrediction{
		{ActionID: 1, ActionDifficulty: 0.3, SuccessPrediction: 0.95},
		{ActionID: 2, ActionDifficulty: 0.5, SuccessPrediction: 0.72},
		{ActionID: 3, ActionDifficulty: 0.9, SuccessPrediction: 0.40},
	}
	chosen := s.chooseAction(evaluated)
	if chosen.ActionID != 2 {
		t.Errorf("chosen action = %d, want 2 (closest to target 0.70)", chosen.ActionID)
	}
}

func TestChooseActionTieBreaksOnEasier(t *testing.T) {
	s := newTestBKT(t, "")
	evaluated := []model.ActionPrediction{
		{ActionID: 1, ActionDifficulty: 0.8, SuccessPrediction: 0.75},
		{ActionID: 2, ActionDifficulty: 0.2, SuccessPrediction: 0.65},
	}
	chosen := s.chooseAction(evaluated)
	if chosen.ActionID != 2 {
		t.Errorf("chosen action = %d, want 2 (equal distance, lower difficulty)", chosen.ActionID)
	}
}

// --- Observe ---

func TestObserveNotAttempted(t *testing.T) {
	s := newTestBKT(t, "")
	resp := s.Observe(&model.ObserveRequest{
		Attempted: false,
		PriorL:    0.42,
	})
	assertFloat(t, "updated_L", resp.UpdatedL, 0.42)
}

func TestObserveMissingOutcome(t *testing.T) {
	s := newTestBKT(t, "")
	resp := s.Observe(&model.ObserveRequest{
		Attempted: true,
		Correct:   nil,
		PriorL:    0.42,
	})
	assertFloat(t, "updated_L", resp.UpdatedL, 0.42)
}

func TestObserveCorrect(t *testing.T) {
	s := newTestBKT(t, "")
	correct := true
	resp := s.Observe(&model.ObserveRequest{
		Attempted:      true,
		Correct:        &correct,
		PriorL:         0.5,
		EffectiveGuess: 0.2,
		EffectiveSlip:  0.1,
		Transition:     0.05,
	})
	post := 0.45 / 0.55
	assertFloat(t, "updated_L", resp.UpdatedL, post+(1-post)*0.05)
}
