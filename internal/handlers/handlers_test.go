package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/barryallent/expense-tracker-app/internal/config"
	"github.com/barryallent/expense-tracker-app/internal/database"
	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/handlers"
	"github.com/barryallent/expense-tracker-app/internal/metrics"
	custommw "github.com/barryallent/expense-tracker-app/internal/middleware"
	"github.com/barryallent/expense-tracker-app/internal/models"
	"github.com/barryallent/expense-tracker-app/internal/repositories"
	"github.com/barryallent/expense-tracker-app/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// HandlersSuite exercises the HTTP surface end to end: echo routing, the auth
// middleware, handlers, services, and the sqlite in-memory database.
type HandlersSuite struct {
	suite.Suite
	db     *database.DB
	router *echo.Echo
}

func (s *HandlersSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NoopRecorder{}

	userRepo := repositories.NewUserRepository(s.db.DB)
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)

	jwtConfig := &config.JWTConfig{
		Secret:        "test-secret",
		TokenDuration: time.Hour,
		Issuer:        "expense-tracker",
	}
	passwordService := services.NewPasswordService(bcrypt.MinCost)
	tokenService := services.NewTokenService(jwtConfig)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, logger)
	userService := services.NewUserService(userRepo, logger)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo, logger)

	authHandler := handlers.NewAuthHandler(authService, recorder)
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, recorder)

	e := echo.New()
	e.Validator = handlers.NewValidator()

	api := e.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/validate", authHandler.Validate, custommw.RequireAuth(tokenService))

	users := api.Group("/users", custommw.RequireAuth(tokenService))
	users.PUT("/currency", userHandler.UpdateCurrency)

	transactions := api.Group("/transactions", custommw.RequireAuth(tokenService))
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/summary", transactionHandler.Summary)

	s.router = e
}

func (s *HandlersSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlersSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.T().Helper()
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
}

func (s *HandlersSuite) registerAlice() {
	rec := s.request(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret12",
		FullName: "Alice Doe",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *HandlersSuite) loginAlice() string {
	rec := s.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "alice",
		Password: "secret12",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.AuthResponse
	s.decode(rec, &resp)
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *HandlersSuite) TestRegister() {
	rec := s.request(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret12",
		FullName: "Alice Doe",
	})
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Equal("User registered successfully!", body["message"])
}

func (s *HandlersSuite) TestRegisterDuplicateUsername() {
	s.registerAlice()

	rec := s.request(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "second@example.com",
		Password: "secret12",
		FullName: "Second Alice",
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Equal("Username is already taken!", body["error"])
}

func (s *HandlersSuite) TestRegisterValidation() {
	rec := s.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "al",
		"email":    "not-an-email",
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	// Validation failures surface through echo's error handler as a
	// message body, not an error body.
	var body map[string]interface{}
	s.decode(rec, &body)
	s.Contains(body, "message")
}

func (s *HandlersSuite) TestLogin() {
	s.registerAlice()

	rec := s.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "alice",
		Password: "secret12",
	})
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AuthResponse
	s.decode(rec, &resp)
	s.NotEmpty(resp.Token)
	s.Equal("alice", resp.Username)
	s.Equal("alice@example.com", resp.Email)
	s.Equal("Alice Doe", resp.FullName)
	s.Equal("USD", resp.Currency)
}

func (s *HandlersSuite) TestLoginWrongPassword() {
	s.registerAlice()

	rec := s.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "alice",
		Password: "wrong-pass",
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Equal("Invalid username or password!", body["error"])
}

func (s *HandlersSuite) TestValidate() {
	s.registerAlice()
	token := s.loginAlice()

	rec := s.request(http.MethodGet, "/api/auth/validate", token, nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AuthResponse
	s.decode(rec, &resp)
	s.Equal(token, resp.Token, "validate echoes the presented token")
	s.Equal("alice", resp.Username)
}

func (s *HandlersSuite) TestValidateRejectsMissingAndBadTokens() {
	rec := s.request(http.MethodGet, "/api/auth/validate", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	var body map[string]string
	s.decode(rec, &body)
	s.Equal("Authorization token is required", body["error"])

	rec = s.request(http.MethodGet, "/api/auth/validate", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.decode(rec, &body)
	s.Equal("Invalid token", body["error"])
}

func (s *HandlersSuite) TestUpdateCurrency() {
	s.registerAlice()
	token := s.loginAlice()

	rec := s.request(http.MethodPut, "/api/users/currency", token, dto.CurrencyUpdateRequest{Currency: "EUR"})
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	// The change is visible on the next validate.
	rec = s.request(http.MethodGet, "/api/auth/validate", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp dto.AuthResponse
	s.decode(rec, &resp)
	s.Equal("EUR", resp.Currency)
}

func (s *HandlersSuite) TestUpdateCurrencyRequiresValue() {
	s.registerAlice()
	token := s.loginAlice()

	rec := s.request(http.MethodPut, "/api/users/currency", token, map[string]string{})
	s.Equal(http.StatusBadRequest, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Equal("Currency is required", body["error"])
}

func (s *HandlersSuite) TestTransactionLifecycle() {
	s.registerAlice()
	token := s.loginAlice()

	category := &models.Category{Name: "Groceries", Type: models.CategoryTypeExpense}
	s.Require().NoError(s.db.Create(category).Error)

	create := func(txType string, amount float64, desc string, day dto.Date, categoryID string) {
		rec := s.request(http.MethodPost, "/api/transactions", token, dto.TransactionRequest{
			Type:            txType,
			Amount:          amount,
			Description:     desc,
			CategoryID:      categoryID,
			TransactionDate: day,
		})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	now := time.Now().UTC()
	create("INCOME", 1000, "salary", dto.NewDate(now.Year(), now.Month(), 1), "")
	create("EXPENSE", 250.50, "groceries", dto.NewDate(now.Year(), now.Month(), 2), category.ID.String())

	rec := s.request(http.MethodGet, "/api/transactions", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list []dto.TransactionResponse
	s.decode(rec, &list)
	s.Require().Len(list, 2)
	s.Equal("groceries", list[0].Description, "most recent first")
	s.Equal("Groceries", list[0].CategoryName())
	s.Equal("", list[1].CategoryName())

	rec = s.request(http.MethodGet, "/api/transactions/summary", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var summary dto.SummaryResponse
	s.decode(rec, &summary)
	s.Equal(1000.0, summary.Income)
	s.Equal(250.5, summary.Expense)
	s.Equal(749.5, summary.Balance)
}

func (s *HandlersSuite) TestCreateTransactionUnknownCategory() {
	s.registerAlice()
	token := s.loginAlice()

	rec := s.request(http.MethodPost, "/api/transactions", token, dto.TransactionRequest{
		Type:        "EXPENSE",
		Amount:      10,
		Description: "x",
		CategoryID:  "2f9a4c9e-0000-4000-8000-000000000000",
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Equal("Category not found", body["error"])
}

func (s *HandlersSuite) TestProtectedEndpointsRequireAuth() {
	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/transactions"},
		{http.MethodPost, "/api/transactions"},
		{http.MethodGet, "/api/transactions/summary"},
		{http.MethodPut, "/api/users/currency"},
	} {
		rec := s.request(route.method, route.path, "", nil)
		s.Equal(http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}
