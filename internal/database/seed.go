package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/barryallent/expense-tracker-app/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedCategory struct {
	name        string
	description string
	color       string
}

var defaultExpenseCategories = []seedCategory{
	{"Food & Dining", "Restaurant, groceries, food delivery", "#FF6B6B"},
	{"Transportation", "Gas, public transport, taxi, uber", "#4ECDC4"},
	{"Shopping", "Clothing, electronics, personal items", "#45B7D1"},
	{"Entertainment", "Movies, games, concerts, subscriptions", "#FD79A8"},
	{"Bills & Utilities", "Electricity, water, internet, phone", "#FDCB6E"},
	{"Healthcare", "Medical expenses, pharmacy, insurance", "#6C5CE7"},
	{"Education", "Books, courses, school fees", "#A29BFE"},
	{"Travel", "Hotels, flights, vacation expenses", "#00B894"},
	{"Personal Care", "Haircut, cosmetics, spa", "#E17055"},
	{"Home & Garden", "Furniture, repairs, gardening", "#81ECEC"},
}

var defaultIncomeCategories = []seedCategory{
	{"Salary", "Monthly salary, wages", "#00B894"},
	{"Freelance", "Freelance work, consulting", "#FDCB6E"},
	{"Business", "Business income, profits", "#6C5CE7"},
	{"Investment", "Dividends, interest, capital gains", "#A29BFE"},
	{"Bonus", "Work bonus, incentives", "#FD79A8"},
	{"Gift", "Money gifts, cash gifts", "#FF6B6B"},
	{"Other Income", "Miscellaneous income", "#74B9FF"},
}

// SeedDefaultCategories creates the shared default categories once.
func (db *DB) SeedDefaultCategories(logger *slog.Logger) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count default categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range defaultExpenseCategories {
		category := models.Category{
			Name:        c.name,
			Description: c.description,
			Type:        models.CategoryTypeExpense,
			Color:       c.color,
			IsDefault:   true,
		}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.name, err)
		}
	}
	for _, c := range defaultIncomeCategories {
		category := models.Category{
			Name:        c.name,
			Description: c.description,
			Type:        models.CategoryTypeIncome,
			Color:       c.color,
			IsDefault:   true,
		}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.name, err)
		}
	}

	logger.Info("default categories created")
	return nil
}

// SeedDemoData creates a demo user with a month of fake transactions so a
// fresh dev setup has something to show on the dashboard. Idempotent.
func (db *DB) SeedDemoData(logger *slog.Logger) error {
	var existing models.User
	if err := db.Where("username = ?", "demo").First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := models.User{
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		FullName:     gofakeit.Name(),
		Currency:     models.DefaultCurrency,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	var categories []models.Category
	if err := db.Where("is_default = ?", true).Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	byType := map[string][]models.Category{}
	for _, c := range categories {
		byType[c.Type] = append(byType[c.Type], c)
	}

	now := time.Now().UTC()
	for i := 0; i < 25; i++ {
		txType := models.TransactionTypeExpense
		maxAmount := 250.0
		if gofakeit.Number(0, 4) == 0 {
			txType = models.TransactionTypeIncome
			maxAmount = 3000.0
		}

		tx := models.Transaction{
			UserID:          user.ID,
			Type:            txType,
			Amount:          decimal.NewFromFloat(gofakeit.Float64Range(5, maxAmount)).Round(2),
			Description:     gofakeit.ProductName(),
			TransactionDate: now.AddDate(0, 0, -gofakeit.Number(0, 27)),
		}
		if pool := byType[txType]; len(pool) > 0 {
			id := pool[gofakeit.Number(0, len(pool)-1)].ID
			tx.CategoryID = &id
		}
		if err := db.Create(&tx).Error; err != nil {
			return fmt.Errorf("failed to create demo transaction: %w", err)
		}
	}

	logger.Info("demo data created", "username", "demo", "password", "demo1234")
	return nil
}
