package repository

import (
	"bkt_predictor/internal/model"

	"gorm.io/gorm"
)

type PredictionLogRepository struct {
	DB *gorm.DB
}

func NewPredictionLogRepository(db *gorm.DB) *PredictionLogRepository {
	return &PredictionLogRepository{DB: db}
}

func (r *PredictionLogRepository) Create(log *model.PredictionLog) error {
	return r.DB.Create(log).Error
}

// List returns the newest predictions first, optionally filtered by
// theme.
func (r *PredictionLogRepository) List(themeID string, page, limit int) ([]*model.PredictionLog, int64, error) {
	var logs []*model.PredictionLog
	var total int64

	query := r.DB.Model(&model.PredictionLog{})
	if themeID != "" {
		query = query.Where("theme_id = ?", themeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}
