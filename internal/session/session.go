// Package session tracks which user is currently signed in, persisted
// so it survives application restarts.
package session

import (
	"context"
	"fmt"

	"github.com/pustaka-app/pustaka/internal/kvstore"
)

// currentUserKey is the storage key holding the signed-in username.
const currentUserKey = "currentUserId"

// Session resolves and persists the identity of the current user.
type Session struct {
	store kvstore.Store
}

// New creates a Session backed by the given store.
func New(store kvstore.Store) *Session {
	return &Session{store: store}
}

// Current returns the persisted current user id. ok is false when no
// user is signed in.
func (s *Session) Current(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.store.Get(ctx, currentUserKey)
	if err != nil {
		return "", false, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return string(raw), true, nil
}

// Set persists userID as the current user.
func (s *Session) Set(ctx context.Context, userID string) error {
	if err := s.store.Set(ctx, currentUserKey, []byte(userID)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the current-user marker (logout).
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, currentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
