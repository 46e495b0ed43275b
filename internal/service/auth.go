package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"moodbot/internal/models"
	"moodbot/internal/repository"
)

var (
	ErrAdminAlreadyExists = errors.New("admin already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.Admin, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	JWTSecret() []byte
}

type authService struct {
	repo      repository.AdminRepository
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(repo repository.AdminRepository, jwtSecret string, logger *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

func (s *authService) JWTSecret() []byte {
	return s.jwtSecret
}

// Register creates the dashboard admin account. Only the first
// registration succeeds; there is a single operator.
func (s *authService) Register(ctx context.Context, username, password string) (*models.Admin, error) {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		s.logger.Error("Failed to count admins", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing admins: %w", err)
	}
	if count > 0 {
		return nil, ErrAdminAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		s.logger.Error("Failed to create admin", zap.Error(err))
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to get admin by username", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve admin: %w", err)
	}
	if admin == nil {
		return "", time.Time{}, ErrAdminNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &models.Claims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Admin logged in successfully.", zap.String("username", admin.Username))
	return tokenString, expirationTime, nil
}
