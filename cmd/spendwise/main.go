// Command spendwise is the terminal client for the expense tracker API. It
// keeps a login session across invocations: the credential obtained by
// `spendwise login` is persisted and revalidated at the start of every run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/barryallent/expense-tracker-app/internal/apiclient"
	"github.com/barryallent/expense-tracker-app/internal/config"
	"github.com/barryallent/expense-tracker-app/internal/credstore"
	"github.com/barryallent/expense-tracker-app/internal/dashboard"
	"github.com/barryallent/expense-tracker-app/internal/session"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// app carries the wired client components shared by all subcommands.
type app struct {
	sessions   *session.Manager
	aggregator *dashboard.Aggregator
}

func newApp() (*app, error) {
	_ = godotenv.Load()

	level := slog.LevelWarn
	if os.Getenv("SPENDWISE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Load()

	credPath, err := cfg.Client.ResolveCredentialPath()
	if err != nil {
		return nil, err
	}

	api := apiclient.New(cfg.Client.BaseURL, apiclient.WithTimeout(cfg.Client.RequestTimeout))
	manager := session.NewManager(api, credstore.NewFileStore(credPath), logger)

	return &app{
		sessions:   manager,
		aggregator: dashboard.NewAggregator(api, logger),
	}, nil
}

// requireSession runs startup revalidation and reports whether the user ends
// up authenticated. While validation is in flight no protected output is
// rendered.
func (a *app) requireSession(ctx context.Context) bool {
	s := a.sessions.ValidateStoredCredential(ctx)
	if s.Status != session.StatusAuthenticated {
		fmt.Fprintln(os.Stderr, "Not logged in. Run `spendwise login` first.")
		return false
	}
	return true
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&loginCmd{app: a}, "session")
	commander.Register(&registerCmd{app: a}, "session")
	commander.Register(&logoutCmd{app: a}, "session")
	commander.Register(&statusCmd{app: a}, "session")
	commander.Register(&dashboardCmd{app: a}, "data")
	commander.Register(&addCmd{app: a}, "data")
	commander.Register(&currencyCmd{app: a}, "data")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
