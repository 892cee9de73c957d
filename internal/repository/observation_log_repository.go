package repository

import (
	"bkt_predictor/internal/model"

	"gorm.io/gorm"
)

type ObservationLogRepository struct {
	DB *gorm.DB
}

func NewObservationLogRepository(db *gorm.DB) *ObservationLogRepository {
	return &ObservationLogRepository{DB: db}
}

func (r *ObservationLogRepository) Create(log *model.ObservationLog) error {
	return r.DB.Create(log).Error
}

func (r *ObservationLogRepository) List(themeID string, page, limit int) ([]*model.ObservationLog, int64, error) {
	var logs []*model.ObservationLog
	var total int64

	query := r.DB.Model(&model.ObservationLog{})
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
