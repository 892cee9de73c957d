package service

import (
	"errors"

	"bkt_predictor/internal/config"
	"bkt_predictor/internal/util"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService authenticates the single operations principal configured
// for the admin surface.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Login(username, password string) (string, error) {
	if s.cfg.JWT.AdminUser == "" || username != s.cfg.JWT.AdminUser {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.JWT.AdminPassHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return util.GenerateJWT(username, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}
