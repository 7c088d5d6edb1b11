package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/repositories"
	"github.com/okanv/uniregistry/internal/pkg/apperrors"
	"github.com/okanv/uniregistry/internal/pkg/auth"
	"github.com/okanv/uniregistry/internal/pkg/dberrors"
	"github.com/rs/zerolog"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration and login
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateCredentials validates registration input
func (s *AuthService) validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.NewValidationError("invalid email format")
	}
	if password == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}

	return nil
}

// Register creates a new user with a hashed password and returns its public view
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*models.User, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return nil, err
	}

	if role == "" {
		role = models.DefaultUserRole
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking user email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyRegistered
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("User registered")

	return user, nil
}

// Login verifies credentials and issues a signed bearer token.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("error retrieving user: %w", err)
	}

	if user == nil || !auth.CheckPassword(user.HashedPassword, password) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")

	return token, nil
}

// GetUserByID retrieves a user's public view by id
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return user, nil
}
