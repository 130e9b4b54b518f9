package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/models"
	"github.com/barryallent/expense-tracker-app/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		logger:          logger,
	}
}

// Register creates a new user account. It does not authenticate the caller:
// no token is issued and a subsequent explicit login is expected.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "username", user.Username, "user_id", user.ID)

	return user, nil
}

// Login authenticates a user and returns the bearer token with the profile
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Never reveal which half of the credential pair was wrong.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.logger.Info("login rejected", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login succeeded", "username", user.Username, "user_id", user.ID)

	return authResponse(user, token), nil
}

// ProfileResponse builds the validate-endpoint payload: the caller's current
// profile with the presented token echoed back.
func (s *AuthService) ProfileResponse(userID uuid.UUID, token string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return authResponse(user, token), nil
}

func authResponse(user *models.User, token string) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token: token,
		UserProfile: dto.UserProfile{
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
			Currency: user.Currency,
		},
	}
}
