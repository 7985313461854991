// Package service provides the business logic for authentication and
// catalog operations, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned when a login attempt does not match
// a stored account.
var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialRepository defines the persistence operations required by
// the authentication service.
type CredentialRepository interface {
	// Register creates an account, failing when the username is taken.
	Register(ctx context.Context, username, password string) error
	// Verify reports whether the username/password pair matches a
	// stored account.
	Verify(ctx context.Context, username, password string) (bool, error)
}

// SessionStore defines the current-user persistence required by the
// authentication service.
type SessionStore interface {
	Current(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, userID string) error
	Clear(ctx context.Context) error
}

// AuthService implements sign-up, login, and logout.
type AuthService struct {
	creds   CredentialRepository
	session SessionStore
}

// NewAuthService constructs an AuthService using the provided
// repository and session store.
func NewAuthService(creds CredentialRepository, session SessionStore) *AuthService {
	return &AuthService{creds: creds, session: session}
}

// Register creates a new account and signs the user in, matching the
// sign-up flow where a successful registration lands on the catalog.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if err := s.creds.Register(ctx, username, password); err != nil {
		return err
	}
	return s.session.Set(ctx, username)
}

// Login verifies the credentials and persists the session. It fails
// with ErrInvalidCredentials when the pair does not match.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	ok, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if err := s.session.Set(ctx, username); err != nil {
		return fmt.Errorf("login %q: %w", username, err)
	}
	return nil
}

// Logout clears the persisted session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// CurrentUser returns the signed-in username, or ok=false when signed
// out.
func (s *AuthService) CurrentUser(ctx context.Context) (string, bool, error) {
	return s.session.Current(ctx)
}
