// Package session keeps track of the signed-in user between CLI invocations.
package session

import (
	"context"
	"fmt"

	"github.com/edvin/tradelink/internal/client"
	"github.com/edvin/tradelink/internal/model"
)

// Session is the persisted login state.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// Store persists a session across process restarts.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// Manager drives sign-in, sign-up, and sign-out against the API and keeps
// the store in sync.
type Manager struct {
	api   *client.Client
	store Store
}

func NewManager(api *client.Client, store Store) *Manager {
	return &Manager{api: api, store: store}
}

// Restore loads a saved session, if any, and attaches its token to the API
// client. Returns nil when no session is stored.
func (m *Manager) Restore() (*Session, error) {
	s, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s != nil {
		m.api.SetToken(s.Token)
	}
	return s, nil
}

// SignIn authenticates and persists the resulting session.
func (m *Manager) SignIn(ctx context.Context, email, phone, password string) (*Session, error) {
	result, err := m.api.Login(ctx, email, phone, password)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Token:  result.Token,
		UserID: result.User.ID,
		Email:  result.User.Email,
	}
	if err := m.store.Save(s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.api.SetToken(s.Token)
	return s, nil
}

// SignUp registers a new account. The account is not signed in afterwards;
// call SignIn next.
func (m *Manager) SignUp(ctx context.Context, input client.RegisterInput) (*model.User, error) {
	return m.api.Register(ctx, input)
}

// SignOut clears the persisted session and drops the client token.
func (m *Manager) SignOut() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.api.SetToken("")
	return nil
}
