package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const masteryKeyPrefix = "bkt:mastery:"

// masteryTTL bounds how long a stale mastery value is served after the
// learner stops reporting observations.
const masteryTTL = 30 * 24 * time.Hour

// MasteryService caches the last observed mastery per theme in redis so
// read paths can serve it without replaying the observation history.
// With redis disabled every call is a no-op miss.
type MasteryService struct {
	rdb *redis.Client
}

func NewMasteryService(rdb *redis.Client) *MasteryService {
	return &MasteryService{rdb: rdb}
}

func (s *MasteryService) Enabled() bool {
	return s.rdb != nil
}

func (s *MasteryService) Set(ctx context.Context, themeID string, mastery float64) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, masteryKeyPrefix+themeID, fmt.Sprintf("%.6f", mastery), masteryTTL).Err()
}

func (s *MasteryService) Get(ctx context.Context, themeID string) (float64, error) {
	if s.rdb == nil {
		return 0, redis.Nil
	}
	return s.rdb.Get(ctx, masteryKeyPrefix+themeID).Float64()
}
