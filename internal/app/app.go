// Package app wires the monetr client components together and runs the authenticated shell's
// startup sequence.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/config"
	"github.com/Veraticus/monetr-client/internal/fetch"
	"github.com/Veraticus/monetr-client/internal/monetr"
	"github.com/Veraticus/monetr-client/internal/selectors"
	"github.com/Veraticus/monetr-client/internal/session"
	"github.com/Veraticus/monetr-client/internal/storage"
	"github.com/Veraticus/monetr-client/internal/store"
)

// SelectedBankAccountKey is the local storage key remembering the selected bank account.
const SelectedBankAccountKey = "selectedBankAccountId"

// App holds every component of one client instance.
type App struct {
	Client    *monetr.Client
	Storage   *storage.SQLiteStorage
	Store     *store.Store
	Selectors *selectors.Selectors
	Fetcher   *fetch.Fetcher
	Session   *session.Session
	logger    *slog.Logger
}

// Result is the outcome of starting or logging in.
type Result struct {
	Report *fetch.Report
	Route  session.Route
}

// New builds an App from cfg, opening local storage.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := monetr.NewClient(monetr.Config{
		BaseURL:      cfg.APIURL,
		Timeout:      cfg.APITimeout,
		CookieDomain: cfg.CookieDomain,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create monetr client: %w", err)
	}

	db, err := storage.Open(ctx, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	st := store.New()
	sel := selectors.New()

	return &App{
		Client:    client,
		Storage:   db,
		Store:     st,
		Selectors: sel,
		Fetcher:   fetch.New(client, st, sel),
		Session:   session.New(client, db, st),
		logger:    slog.Default().With("component", "app"),
	}, nil
}

// Close releases local storage.
func (a *App) Close() error {
	return a.Storage.Close()
}

// Start bootstraps, resumes a persisted session and, when authenticated, loads everything the
// main views need. The returned route says where the user belongs.
func (a *App) Start(ctx context.Context) (Result, error) {
	if _, err := a.Session.Bootstrap(ctx); err != nil {
		return Result{Route: session.RouteLogin}, fmt.Errorf("failed to bootstrap: %w", err)
	}

	auth, err := a.Session.Resume(ctx)
	if err != nil {
		if route, ok := a.Session.HandleError(ctx, err); ok {
			return Result{Route: route}, nil
		}
		return Result{Route: session.RouteLogin}, fmt.Errorf("failed to resume session: %w", err)
	}
	if !auth.IsAuthenticated {
		return Result{Route: session.RouteLogin}, nil
	}

	a.restoreSelection(ctx)
	return a.load(ctx), nil
}

// Login authenticates and then loads everything the main views need.
func (a *App) Login(ctx context.Context, email, password string) (Result, error) {
	if _, err := a.Session.Login(ctx, email, password); err != nil {
		if route, ok := a.Session.HandleError(ctx, err); ok {
			return Result{Route: route}, err
		}
		return Result{Route: session.RouteLogin}, err
	}
	return a.load(ctx), nil
}

// Logout ends the session and forgets the selected bank account.
func (a *App) Logout(ctx context.Context) error {
	if err := a.Session.Logout(ctx); err != nil {
		return err
	}
	if err := a.Storage.RemoveItem(ctx, SelectedBankAccountKey); err != nil {
		return fmt.Errorf("failed to forget selected bank account: %w", err)
	}
	return nil
}

// SelectBankAccount selects a bank account and remembers it for later runs.
func (a *App) SelectBankAccount(ctx context.Context, bankAccountID uint64) error {
	if bankAccountID == 0 {
		return fmt.Errorf("%w: bank account id is required", common.ErrInvalidInput)
	}
	if err := a.Storage.SetItem(ctx, SelectedBankAccountKey, strconv.FormatUint(bankAccountID, 10)); err != nil {
		return fmt.Errorf("failed to remember selected bank account: %w", err)
	}
	a.Fetcher.SelectBankAccount(bankAccountID)
	return nil
}

// restoreSelection applies the remembered bank account before per-account data loads. An
// account that no longer exists falls back to the first one.
func (a *App) restoreSelection(ctx context.Context) {
	value, err := a.Storage.GetItem(ctx, SelectedBankAccountKey)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			a.logger.Warn("failed to read selected bank account", "error", err)
		}
		return
	}
	bankAccountID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		a.logger.Warn("ignoring invalid selected bank account", "value", value)
		return
	}
	a.Fetcher.SelectBankAccount(bankAccountID)
}

func (a *App) load(ctx context.Context) Result {
	report := a.Fetcher.FetchAfterLogin(ctx)
	result := Result{Report: report}

	if err := report.Err(); err != nil {
		if route, ok := a.Session.HandleError(ctx, err); ok {
			result.Route = route
			return result
		}
		a.logger.Warn("starting with incomplete data", "error", err)
	}

	result.Route = a.Session.Route(a.Selectors.HasAnyLinks(a.Store.Snapshot()))
	return result
}
