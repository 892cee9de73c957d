package model

// PredictionLog records one served prediction for offline analysis and
// later re-training of the theme parameters.
type PredictionLog struct {
	BaseModel
	ThemeID           string  `gorm:"index;type:varchar(64)" json:"themeId"`
	LessonIndex       int     `json:"lessonIndex"`
	ActionIndex       int     `json:"actionIndex"`
	ActionID          int     `json:"actionId"`
	ActionType        string  `gorm:"type:varchar(32)" json:"actionType"`
	ActionDifficulty  float64 `json:"actionDifficulty"`
	PriorL            float64 `json:"priorL"`
	EffectiveGuess    float64 `json:"effectiveGuess"`
	EffectiveSlip     float64 `json:"effectiveSlip"`
	SuccessPrediction float64 `json:"successPrediction"`
	ParamsSource      string  `gorm:"type:varchar(16)" json:"paramsSource"`
}

// ObservationLog records one mastery update.
type ObservationLog struct {
	BaseModel
	ThemeID        string  `gorm:"index;type:varchar(64)" json:"themeId"`
	Attempted      bool    `json:"attempted"`
	Correct        *bool   `json:"correct"`
	PriorL         float64 `json:"priorL"`
	EffectiveGuess float64 `json:"effectiveGuess"`
	EffectiveSlip  float64 `json:"effectiveSlip"`
	Transition     float64 `json:"transition"`
	UpdatedL       float64 `json:"updatedL"`
}
