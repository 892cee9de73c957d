package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"bkt_predictor/internal/config"
	"bkt_predictor/internal/model"
	"bkt_predictor/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Parameter sources reported alongside predictions.
const (
	SourceTrained = "trained"
	SourceDefault = "default"
)

var ErrReadOnlyStore = errors.New("params store is not file-backed, writes are disabled")

// ParamsService holds the trained pyBKT parameters per theme. The
// snapshot comes from a local JSON file (BKT_PARAMS_JSON) or a MinIO
// object published by the training job; themes without an entry fall
// back to the configured defaults.
type ParamsService struct {
	mu     sync.RWMutex
	params map[string]model.ThemeParams

	cfg      *config.Config
	filePath string // non-empty when the store is file-backed
}

func NewParamsService(cfg *config.Config) *ParamsService {
	s := &ParamsService{
		params: make(map[string]model.ThemeParams),
		cfg:    cfg,
	}
	if cfg.Storage.Type != "minio" {
		s.filePath = cfg.BKT.ParamsFile
	}
	return s
}

// Load populates the store from the configured source. A missing local
// path is not an error: the service stays fully functional on default
// parameters, matching how the original deployment boots without a
// trained export.
func (s *ParamsService) Load() error {
	if s.cfg.Storage.Type == "minio" {
		return s.loadFromMinio()
	}

	if s.filePath == "" {
		logger.Log.Info("No trained params file configured, using default BKT parameters")
		return nil
	}
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		logger.Log.Warn("Trained params file does not exist, using default BKT parameters",
			zap.String("path", s.filePath))
		return nil
	}
	return s.loadFromFile()
}

func (s *ParamsService) loadFromFile() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read params file: %w", err)
	}
	return s.replace(data, "file", s.filePath)
}

func (s *ParamsService) loadFromMinio() error {
	sc := s.cfg.Storage
	client, err := minio.New(sc.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(sc.MinioAccessID, sc.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}

	obj, err := client.GetObject(context.Background(), sc.MinioBucket, sc.MinioObject, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("fetch params object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return fmt.Errorf("read params object: %w", err)
	}
	return s.replace(data, "minio", sc.MinioBucket+"/"+sc.MinioObject)
}

func (s *ParamsService) replace(data []byte, source, location string) error {
	parsed := make(map[string]model.ThemeParams)
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse params snapshot: %w", err)
	}

	s.mu.Lock()
	s.params = parsed
	s.mu.Unlock()

	logger.Log.Info("Trained BKT params loaded",
		zap.String("source", source),
		zap.String("location", location),
		zap.Int("themes", len(parsed)))
	return nil
}

// Reload re-reads the snapshot from its source.
func (s *ParamsService) Reload() error {
	return s.Load()
}

// Get returns the trained parameters for a theme.
func (s *ParamsService) Get(themeID string) (model.ThemeParams, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.params[themeID]
	return p, ok
}

// Defaults returns the configured fallback parameters.
func (s *ParamsService) Defaults() model.ThemeParams {
	return model.ThemeParams{
		Transition: s.cfg.BKT.Transition,
		Guess:      s.cfg.BKT.Guess,
		Slip:       s.cfg.BKT.Slip,
		Prior:      s.cfg.BKT.Prior,
	}
}

// Resolve returns the parameters to use for a theme and which source
// they came from.
func (s *ParamsService) Resolve(themeID string) (model.ThemeParams, string) {
	if p, ok := s.Get(themeID); ok {
		return p, SourceTrained
	}
	return s.Defaults(), SourceDefault
}

// All returns a copy of the trained parameter map.
func (s *ParamsService) All() map[string]model.ThemeParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.ThemeParams, len(s.params))
	for k, v := range s.params {
		out[k] = v
	}
	return out
}

// Upsert replaces the parameters for one theme and persists the
// snapshot. MinIO-backed stores are owned by the training pipeline and
// refuse writes.
func (s *ParamsService) Upsert(themeID string, p model.ThemeParams) error {
	if s.filePath == "" {
		return ErrReadOnlyStore
	}

	s.mu.Lock()
	s.params[themeID] = p
	snapshot, err := json.MarshalIndent(s.params, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, snapshot, 0644)
}

// FilePath returns the watched local snapshot path, empty for remote
// stores.
func (s *ParamsService) FilePath() string {
	return s.filePath
}
