package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/barryallent/expense-tracker-app/internal/database"
	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/repositories"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceSuite struct {
	suite.Suite
	db      *database.DB
	service AuthServiceInterface
	tokens  TokenServiceInterface
}

func (s *AuthServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := repositories.NewUserRepository(s.db.DB)
	s.tokens = NewTokenService(testJWTConfig())
	s.service = NewAuthService(userRepo, NewPasswordService(bcrypt.MinCost), s.tokens, logger)
}

func (s *AuthServiceSuite) register(username, email string) {
	_, err := s.service.Register(&dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret12",
		FullName: "Test User",
	})
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestRegisterCreatesUser() {
	user, err := s.service.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret12",
		FullName: "Alice Doe",
	})
	s.Require().NoError(err)
	s.NotEqual("secret12", user.PasswordHash, "password must be stored hashed")
	s.Equal("USD", user.Currency, "new accounts start on the default currency")
	s.NotEqual("", user.ID.String())
}

func (s *AuthServiceSuite) TestRegisterRejectsDuplicates() {
	s.register("alice", "alice@example.com")

	_, err := s.service.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret12",
	})
	s.ErrorIs(err, ErrUsernameTaken)

	_, err = s.service.Register(&dto.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret12",
	})
	s.ErrorIs(err, ErrEmailTaken)
}

func (s *AuthServiceSuite) TestLoginSuccess() {
	s.register("alice", "alice@example.com")

	resp, err := s.service.Login(&dto.LoginRequest{Username: "alice", Password: "secret12"})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("alice", resp.Username)
	s.Equal("alice@example.com", resp.Email)
	s.Equal("USD", resp.Currency)

	// The issued token validates against the same service configuration.
	claims, err := s.tokens.ValidateToken(resp.Token)
	s.Require().NoError(err)
	s.Equal("alice", claims.Username)
}

func (s *AuthServiceSuite) TestLoginRejectsBadCredentials() {
	s.register("alice", "alice@example.com")

	_, err := s.service.Login(&dto.LoginRequest{Username: "alice", Password: "wrong-pass"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.service.Login(&dto.LoginRequest{Username: "nobody", Password: "secret12"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestProfileResponse() {
	user, err := s.service.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret12",
		FullName: "Alice Doe",
	})
	s.Require().NoError(err)

	resp, err := s.service.ProfileResponse(user.ID, "presented-token")
	s.Require().NoError(err)
	s.Equal("presented-token", resp.Token)
	s.Equal("alice", resp.Username)
	s.Equal("Alice Doe", resp.FullName)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
