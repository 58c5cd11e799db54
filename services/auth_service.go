package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/river20s/task-manager/models"
	"github.com/river20s/task-manager/utils"
)

// AuthService handles account registration and credential verification.
type AuthService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewAuthService(db *gorm.DB, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{db: db, logger: logger}
}

// Register creates a new user with a hashed password. Returns
// ErrDuplicateUsername when the username is already taken.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// The unique constraint is the authority, concurrent registrations
		// surface here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		s.logger.Errorw("user creation failed", "error", err, "username", username)
		return nil, err
	}

	s.logger.Infow("user registered", "userID", user.ID, "username", username)
	return user, nil
}

// Login verifies the credentials and returns the matching user. A missing
// user and a wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
