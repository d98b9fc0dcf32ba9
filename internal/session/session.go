// Package session tracks bootstrap configuration and authentication, and decides which view
// the user belongs on.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/model"
	"github.com/Veraticus/monetr-client/internal/monetr"
	"github.com/Veraticus/monetr-client/internal/store"
)

// TokenKey is the local storage key holding the session token.
const TokenKey = monetr.TokenHeader

// API is the part of the monetr client a session uses.
type API interface {
	GetConfig(ctx context.Context) (model.BootstrapState, error)
	Login(ctx context.Context, request monetr.LoginRequest) (monetr.LoginResponse, error)
	GetMe(ctx context.Context) (model.User, error)
	SetToken(token string)
	ClearToken()
	SessionCookie(token string) *http.Cookie
}

// TokenStorage persists the session token between runs.
type TokenStorage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	SaveCookie(ctx context.Context, cookie *http.Cookie) error
	LoadCookie(ctx context.Context, name string) (*http.Cookie, error)
	DeleteCookie(ctx context.Context, name string) error
}

// Session owns the bootstrap and authentication state. It is safe for concurrent use.
type Session struct {
	api       API
	storage   TokenStorage
	store     *store.Store
	logger    *slog.Logger
	bootstrap model.BootstrapState
	auth      model.AuthenticationState
	mu        sync.RWMutex
}

// New creates an unauthenticated session. Logout clears st.
func New(api API, storage TokenStorage, st *store.Store) *Session {
	return &Session{
		api:     api,
		storage: storage,
		store:   st,
		logger:  slog.Default().With("component", "session"),
	}
}

// BootstrapState returns the loaded application configuration.
func (s *Session) BootstrapState() model.BootstrapState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bootstrap
}

// Authentication returns the current authentication state.
func (s *Session) Authentication() model.AuthenticationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s.Authentication().IsAuthenticated
}

// Bootstrap loads the application configuration.
func (s *Session) Bootstrap(ctx context.Context) (model.BootstrapState, error) {
	s.mu.Lock()
	s.bootstrap.IsBootstrapping = true
	s.mu.Unlock()

	config, err := s.api.GetConfig(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.bootstrap.IsBootstrapping = false
		return s.bootstrap, err
	}
	config.IsReady = true
	config.IsBootstrapping = false
	s.bootstrap = config
	return config, nil
}

// Login authenticates with email and password, persists the token, and loads the user.
func (s *Session) Login(ctx context.Context, email, password string) (model.AuthenticationState, error) {
	if email == "" || password == "" {
		return model.AuthenticationState{}, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	result, err := s.api.Login(ctx, monetr.LoginRequest{Email: email, Password: password})
	if err != nil {
		return model.AuthenticationState{}, err
	}
	if result.Token == "" {
		return model.AuthenticationState{}, fmt.Errorf("%w: login returned no token", common.ErrUnauthorized)
	}

	s.api.SetToken(result.Token)
	if err := s.persistToken(ctx, result.Token); err != nil {
		return model.AuthenticationState{}, err
	}

	if result.User != nil {
		return s.authenticate(*result.User, result.Token), nil
	}
	return s.loadUser(ctx, result.Token)
}

// Resume restores a persisted session: the token from local storage, otherwise from the stored
// cookie. A token the API rejects is removed and the session stays unauthenticated.
func (s *Session) Resume(ctx context.Context) (model.AuthenticationState, error) {
	token, err := s.persistedToken(ctx)
	if err != nil {
		return model.AuthenticationState{}, err
	}
	if token == "" {
		s.logger.Debug("no persisted session")
		return model.AuthenticationState{}, nil
	}

	s.api.SetToken(token)
	auth, err := s.loadUser(ctx, token)
	if errors.Is(err, common.ErrUnauthorized) {
		s.logger.Info("persisted session is no longer valid")
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			return model.AuthenticationState{}, logoutErr
		}
		return model.AuthenticationState{}, nil
	}
	return auth, err
}

// Logout clears the cached state, the token and the token cookie.
func (s *Session) Logout(ctx context.Context) error {
	s.store.Clear()
	s.api.ClearToken()

	s.mu.Lock()
	s.auth = model.AuthenticationState{}
	s.mu.Unlock()

	if err := s.storage.RemoveItem(ctx, TokenKey); err != nil {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	if err := s.storage.DeleteCookie(ctx, monetr.TokenCookie); err != nil {
		return fmt.Errorf("failed to remove session cookie: %w", err)
	}
	return nil
}

func (s *Session) loadUser(ctx context.Context, token string) (model.AuthenticationState, error) {
	user, err := s.api.GetMe(ctx)
	if err != nil {
		return model.AuthenticationState{}, err
	}
	return s.authenticate(user, token), nil
}

func (s *Session) authenticate(user model.User, token string) model.AuthenticationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = model.AuthenticationState{
		User:            &user,
		Token:           token,
		IsAuthenticated: true,
	}
	s.logger.Debug("authenticated", "user_id", user.UserID)
	return s.auth
}

func (s *Session) persistToken(ctx context.Context, token string) error {
	if err := s.storage.SetItem(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	if err := s.storage.SaveCookie(ctx, s.api.SessionCookie(token)); err != nil {
		return fmt.Errorf("failed to store session cookie: %w", err)
	}
	return nil
}

func (s *Session) persistedToken(ctx context.Context) (string, error) {
	token, err := s.storage.GetItem(ctx, TokenKey)
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("failed to read session token: %w", err)
	}

	cookie, err := s.storage.LoadCookie(ctx, monetr.TokenCookie)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session cookie: %w", err)
	}
	return cookie.Value, nil
}
