package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/barryallent/expense-tracker-app/internal/apiclient"
	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/session"

	"github.com/google/subcommands"
)

// reportError prints err; a rejected credential additionally drops the stored
// session so the next run starts clean.
func (a *app) reportError(err error) {
	if apiclient.IsUnauthorized(err) {
		a.sessions.Logout()
		fmt.Fprintln(os.Stderr, "Session expired. Run `spendwise login` again.")
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

type loginCmd struct {
	app      *app
	username string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authenticate and persist the session" }
func (*loginCmd) Usage() string {
	return "login -u <username> -p <password>\n"
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username")
	f.StringVar(&c.password, "p", "", "password")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "username and password are required")
		return subcommands.ExitUsageError
	}

	res := c.app.sessions.Login(ctx, c.username, c.password)
	if !res.OK {
		fmt.Fprintln(os.Stderr, res.Message)
		return subcommands.ExitFailure
	}

	s := c.app.sessions.Current()
	fmt.Printf("Logged in as %s (%s)\n", s.User.Username, s.User.FullName)
	return subcommands.ExitSuccess
}

type registerCmd struct {
	app      *app
	username string
	email    string
	password string
	fullName string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new account" }
func (*registerCmd) Usage() string {
	return "register -u <username> -e <email> -p <password> -n <full name>\n"
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username")
	f.StringVar(&c.email, "e", "", "email address")
	f.StringVar(&c.password, "p", "", "password")
	f.StringVar(&c.fullName, "n", "", "full name")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := dto.RegisterRequest{
		Username: c.username,
		Email:    c.email,
		Password: c.password,
		FullName: c.fullName,
	}
	res := c.app.sessions.Register(ctx, req)
	if !res.OK {
		fmt.Fprintln(os.Stderr, res.Message)
		return subcommands.ExitFailure
	}

	// Registration never authenticates; log in explicitly.
	fmt.Println("Account created. Run `spendwise login` to sign in.")
	return subcommands.ExitSuccess
}

type logoutCmd struct {
	app *app
}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "discard the stored session" }
func (*logoutCmd) Usage() string            { return "logout\n" }
func (*logoutCmd) SetFlags(*flag.FlagSet)   {}

func (c *logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.app.sessions.Logout()
	fmt.Println("Logged out.")
	return subcommands.ExitSuccess
}

type statusCmd struct {
	app *app
}

func (*statusCmd) Name() string           { return "status" }
func (*statusCmd) Synopsis() string       { return "show the current session" }
func (*statusCmd) Usage() string          { return "status\n" }
func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := c.app.sessions.ValidateStoredCredential(ctx)
	if s.Status != session.StatusAuthenticated {
		fmt.Println("Not logged in.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Logged in as %s <%s>, currency %s\n", s.User.Username, s.User.Email, s.Currency)
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	app *app
}

func (*dashboardCmd) Name() string           { return "dashboard" }
func (*dashboardCmd) Synopsis() string       { return "show the monthly overview" }
func (*dashboardCmd) Usage() string          { return "dashboard\n" }
func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.requireSession(ctx) {
		return subcommands.ExitFailure
	}

	overview, err := c.app.aggregator.Refresh(ctx)
	if err != nil {
		c.app.reportError(err)
		return subcommands.ExitFailure
	}

	s := c.app.sessions.Current()
	cur := s.Currency
	fmt.Printf("This month (%s)\n", cur)
	fmt.Printf("  Income:       %10.2f\n", overview.Summary.Income)
	fmt.Printf("  Expenses:     %10.2f\n", overview.Summary.Expense)
	fmt.Printf("  Balance:      %10.2f\n", overview.Summary.Balance)
	fmt.Printf("  Savings rate: %9.1f%%\n", overview.Summary.SavingsRate)
	fmt.Printf("  Transactions: %10d\n", overview.Summary.TransactionCount)

	if len(overview.Recent) > 0 {
		fmt.Println("\nRecent transactions")
		for _, tx := range overview.Recent {
			sign := "-"
			if tx.Type == "INCOME" {
				sign = "+"
			}
			fmt.Printf("  %s  %s%8.2f  %-20s %s\n",
				tx.TransactionDate.Format("Jan 02"), sign, tx.Amount, tx.Description, tx.CategoryName())
		}
	}
	return subcommands.ExitSuccess
}

type addCmd struct {
	app         *app
	txType      string
	amount      float64
	description string
	category    string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return "add -type INCOME|EXPENSE -amount <n> -desc <text> [-category <id>] [-date YYYY-MM-DD]\n"
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "type", "EXPENSE", "transaction type (INCOME or EXPENSE)")
	f.Float64Var(&c.amount, "amount", 0, "amount")
	f.StringVar(&c.description, "desc", "", "description")
	f.StringVar(&c.category, "category", "", "category ID")
	f.StringVar(&c.date, "date", "", "transaction date (YYYY-MM-DD, default today)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.requireSession(ctx) {
		return subcommands.ExitFailure
	}

	day := time.Now().UTC()
	if c.date != "" {
		parsed, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid date, expected YYYY-MM-DD")
			return subcommands.ExitUsageError
		}
		day = parsed
	}

	req := dto.TransactionRequest{
		Type:            c.txType,
		Amount:          c.amount,
		Description:     c.description,
		CategoryID:      c.category,
		TransactionDate: dto.Date{Time: day},
	}

	var resp dto.TransactionResponse
	if err := c.app.sessions.Client().Post(ctx, "/transactions", req, &resp); err != nil {
		c.app.reportError(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s of %.2f\n", resp.Type, resp.Amount)
	return subcommands.ExitSuccess
}

type currencyCmd struct {
	app *app
}

func (*currencyCmd) Name() string           { return "currency" }
func (*currencyCmd) Synopsis() string       { return "set the preferred display currency" }
func (*currencyCmd) Usage() string          { return "currency <code>\n" }
func (*currencyCmd) SetFlags(*flag.FlagSet) {}

func (c *currencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "a 3-letter currency code is required")
		return subcommands.ExitUsageError
	}
	if !c.app.requireSession(ctx) {
		return subcommands.ExitFailure
	}

	res := c.app.sessions.UpdateCurrency(ctx, f.Arg(0))
	if !res.OK {
		fmt.Fprintln(os.Stderr, res.Message)
		return subcommands.ExitFailure
	}
	fmt.Printf("Currency set to %s\n", c.app.sessions.Current().Currency)
	return subcommands.ExitSuccess
}
