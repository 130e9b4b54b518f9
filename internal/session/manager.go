// Package session owns the client-side authentication lifecycle: it gates
// the request channel behind the current credential, persists the credential
// across restarts, and publishes session transitions to subscribers.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/barryallent/expense-tracker-app/internal/apiclient"
	"github.com/barryallent/expense-tracker-app/internal/credstore"
	"github.com/barryallent/expense-tracker-app/internal/dto"
)

// DefaultCurrency applies until a profile supplies a preferred currency.
const DefaultCurrency = "USD"

// Fallback messages when the server supplies no usable error text.
const (
	loginFailedMessage    = "Login failed"
	registerFailedMessage = "Registration failed"
	currencyFailedMessage = "Failed to update currency"
)

// Status is the session state. Authenticated holds exactly when a user
// profile is present.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusValidating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusValidating:
		return "validating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is a snapshot of the current authentication state. User is nil
// unless Status is StatusAuthenticated.
type Session struct {
	User     *dto.UserProfile
	Status   Status
	Currency string
}

// Result is the outcome of a fallible session operation. Message carries the
// resolved human-readable error when OK is false.
type Result struct {
	OK      bool
	Message string
}

// Manager drives the session state machine. It is the single writer of the
// credential: after any completed operation the store, the request channel
// and the in-memory state agree.
type Manager struct {
	api    *apiclient.Client
	creds  credstore.Store
	logger *slog.Logger

	mu          sync.RWMutex
	session     Session
	subscribers []func(Session)
}

// NewManager wires the session manager to its request channel and credential
// store. If a stored credential exists it is installed into the channel and
// the session starts in StatusValidating; the caller must invoke
// ValidateStoredCredential before rendering any authenticated view.
func NewManager(api *apiclient.Client, creds credstore.Store, logger *slog.Logger) *Manager {
	m := &Manager{
		api:    api,
		creds:  creds,
		logger: logger,
		session: Session{
			Status:   StatusUnauthenticated,
			Currency: DefaultCurrency,
		},
	}

	token, ok, err := creds.Load()
	if err != nil {
		logger.Warn("failed to load stored credential", "error", err)
		return m
	}
	if ok {
		api.SetToken(token)
		m.session.Status = StatusValidating
	}
	return m
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Client exposes the authorized request channel to collaborators such as the
// dashboard aggregator.
func (m *Manager) Client() *apiclient.Client {
	return m.api
}

// Subscribe registers a callback invoked after every session transition with
// the new snapshot. The returned function unsubscribes.
func (m *Manager) Subscribe(fn func(Session)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
	idx := len(m.subscribers) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.subscribers[idx] = nil
	}
}

// ValidateStoredCredential revalidates the credential found at startup. On
// success the session becomes authenticated with the fresh profile; on any
// failure the credential is cleared everywhere and the session is demoted to
// unauthenticated. No error escapes.
func (m *Manager) ValidateStoredCredential(ctx context.Context) Session {
	if m.Current().Status != StatusValidating {
		return m.Current()
	}

	var resp dto.AuthResponse
	if err := m.api.Get(ctx, "/auth/validate", &resp); err != nil {
		m.logger.Info("stored credential rejected, logging out", "error", err)
		m.clearCredential()
		m.setSession(Session{Status: StatusUnauthenticated, Currency: DefaultCurrency})
		return m.Current()
	}

	m.installProfile(resp.Profile())
	return m.Current()
}

// Login authenticates with the server. On success the returned credential is
// persisted, installed into the channel, and the session becomes
// authenticated — in that order. On failure nothing changes.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	req := dto.LoginRequest{Username: username, Password: password}

	var resp dto.AuthResponse
	if err := m.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		m.logger.Info("login failed", "username", username, "error", err)
		return Result{Message: apiclient.ErrorMessage(err, loginFailedMessage)}
	}

	if err := m.creds.Save(resp.Token); err != nil {
		// Storage trouble is best-effort: the session still works for this
		// process, it just will not survive a restart.
		m.logger.Warn("failed to persist credential", "error", err)
	}
	m.api.SetToken(resp.Token)
	m.installProfile(resp.Profile())

	m.logger.Info("login succeeded", "username", username)
	return Result{OK: true}
}

// Register creates an account. It does not authenticate: no credential is
// produced or stored, and callers perform an explicit login afterwards.
func (m *Manager) Register(ctx context.Context, req dto.RegisterRequest) Result {
	if err := m.api.Post(ctx, "/auth/register", req, nil); err != nil {
		m.logger.Info("registration failed", "username", req.Username, "error", err)
		return Result{Message: apiclient.ErrorMessage(err, registerFailedMessage)}
	}
	m.logger.Info("registration succeeded", "username", req.Username)
	return Result{OK: true}
}

// Logout clears the credential from the store and the channel, then resets
// the in-memory session. It is synchronous, never fails, and is idempotent.
func (m *Manager) Logout() {
	m.clearCredential()
	m.setSession(Session{Status: StatusUnauthenticated, Currency: DefaultCurrency})
	m.logger.Info("logged out")
}

// UpdateCurrency changes the preferred display currency on the server and
// refreshes the profile in place rather than forcing a restart.
func (m *Manager) UpdateCurrency(ctx context.Context, currency string) Result {
	req := dto.CurrencyUpdateRequest{Currency: currency}
	if err := m.api.Put(ctx, "/users/currency", req, nil); err != nil {
		if apiclient.IsUnauthorized(err) {
			// The server no longer accepts the credential; same cleanup as a
			// failed startup validation.
			m.logger.Info("credential rejected, logging out", "error", err)
			m.clearCredential()
			m.setSession(Session{Status: StatusUnauthenticated, Currency: DefaultCurrency})
		}
		m.logger.Info("currency update failed", "currency", currency, "error", err)
		return Result{Message: apiclient.ErrorMessage(err, currencyFailedMessage)}
	}

	var resp dto.AuthResponse
	if err := m.api.Get(ctx, "/auth/validate", &resp); err != nil {
		// The preference was stored; surface the refreshed value locally.
		m.logger.Warn("profile refresh after currency update failed", "error", err)
		m.mu.Lock()
		if m.session.User != nil {
			user := *m.session.User
			user.Currency = currency
			m.session.User = &user
			m.session.Currency = currency
		}
		snapshot := m.session
		m.mu.Unlock()
		m.notify(snapshot)
		return Result{OK: true}
	}

	m.installProfile(resp.Profile())
	return Result{OK: true}
}

// clearCredential removes the credential from durable storage and from the
// request channel, before any in-memory reset, so no stale credential is
// left attached once the session says unauthenticated.
func (m *Manager) clearCredential() {
	if err := m.creds.Clear(); err != nil {
		m.logger.Warn("failed to clear stored credential", "error", err)
	}
	m.api.ClearToken()
}

func (m *Manager) installProfile(profile dto.UserProfile) {
	currency := profile.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	m.setSession(Session{
		User:     &profile,
		Status:   StatusAuthenticated,
		Currency: currency,
	})
}

func (m *Manager) setSession(s Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	m.notify(s)
}

func (m *Manager) notify(s Session) {
	m.mu.RLock()
	subs := make([]func(Session), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()
	for _, fn := range subs {
		if fn != nil {
			fn(s)
		}
	}
}
