package model

// Theme is a curriculum topic with the learner's current mastery of it.
type Theme struct {
	ThemeID            string  `json:"theme_id" binding:"required"`
	MasteryCoefficient float64 `json:"mastery_coefficient" binding:"gte=0,lte=1"`
	TimeSpent          int     `json:"time_spent" binding:"omitempty,gte=0"`
}

// Action is one candidate learning activity within a lesson.
type Action struct {
	ActionID         int     `json:"action_id"`
	ActionType       string  `json:"action_type"`
	ActionDifficulty float64 `json:"action_difficulty" binding:"omitempty,gte=0.1,lte=1"`
}

type PredictRequest struct {
	Theme         Theme    `json:"theme" binding:"required"`
	RelatedThemes []Theme  `json:"related_themes" binding:"omitempty,dive"`
	LessonIndex   int      `json:"lesson_index" binding:"required,gte=1"`
	LessonMastery *float64 `json:"lesson_mastery" binding:"omitempty,gte=0,lte=1"`
	TotalLessons  int      `json:"total_lessons" binding:"omitempty,gte=1"`
	ActionIndex   int      `json:"action_index" binding:"required,gte=1"`
	Actions       []Action `json:"actions" binding:"omitempty,dive"`
}

// ActionPrediction is one evaluated candidate. PriorL and the effective
// guess/slip are echoed so the caller can hand them back to /observe.
type ActionPrediction struct {
	ActionID          int     `json:"action_id"`
	ActionType        string  `json:"action_type"`
	ActionDifficulty  float64 `json:"action_difficulty"`
	PriorL            float64 `json:"prior_L"`
	EffectiveGuess    float64 `json:"effective_guess"`
	EffectiveSlip     float64 `json:"effective_slip"`
	SuccessPrediction float64 `json:"success_prediction"`
}

type PredictResponse struct {
	ThemeID      string             `json:"theme_id"`
	LessonIndex  int                `json:"lesson_index"`
	ActionIndex  int                `json:"action_index"`
	ChosenAction *ActionPrediction  `json:"chosen_action"`
	Actions      []ActionPrediction `json:"actions"`
}

// ObserveRequest feeds an attempt outcome back into the model. ThemeID
// is optional; when present the updated mastery is also cached for the
// theme mastery read endpoint.
type ObserveRequest struct {
	ThemeID        string  `json:"theme_id"`
	Attempted      bool    `json:"attempted"`
	Correct        *bool   `json:"correct"`
	PriorL         float64 `json:"prior_L" binding:"gte=0,lte=1"`
	EffectiveGuess float64 `json:"effective_guess" binding:"gte=0,lte=1"`
	EffectiveSlip  float64 `json:"effective_slip" binding:"gte=0,lte=1"`
	Transition     float64 `json:"transition" binding:"gte=0,lte=1"`
}

type ObserveResponse struct {
	UpdatedL float64 `json:"updated_L"`
}

// ThemeParams are the trained pyBKT parameters for one theme, as found
// in the BKT_PARAMS_JSON export.
type ThemeParams struct {
	Transition float64 `json:"transition"`
	Guess      float64 `json:"guess"`
	Slip       float64 `json:"slip"`
	Prior      float64 `json:"prior"`
}
