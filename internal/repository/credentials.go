package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pustaka-app/pustaka/internal/kvstore"
	"github.com/pustaka-app/pustaka/internal/models"
)

// ErrAlreadyExists is returned when registering a username that is
// already taken.
var ErrAlreadyExists = errors.New("username already registered")

// accountKeyPrefix is the storage key prefix for account records.
const accountKeyPrefix = "account:"

// CredentialRepository stores one account record per username, with the
// password kept only as a bcrypt hash. The plaintext password never
// reaches storage.
type CredentialRepository struct {
	store kvstore.Store
}

// NewCredentialRepository creates a CredentialRepository backed by the
// given store.
func NewCredentialRepository(store kvstore.Store) *CredentialRepository {
	return &CredentialRepository{store: store}
}

func accountKey(username string) string {
	return accountKeyPrefix + username
}

// Register creates an account for username. It fails with
// ErrAlreadyExists when that username is taken; other usernames are
// unaffected.
func (r *CredentialRepository) Register(ctx context.Context, username, password string) error {
	key := accountKey(username)
	_, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("check account %q: %w", username, err)
	}
	if ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	raw, err := json.Marshal(models.Account{Username: username, PasswordHash: hash})
	if err != nil {
		return fmt.Errorf("encode account %q: %w", username, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save account %q: %w", username, err)
	}
	return nil
}

// Verify reports whether the username exists and the password matches
// its stored hash. An unknown username is a mismatch, not an error.
func (r *CredentialRepository) Verify(ctx context.Context, username, password string) (bool, error) {
	raw, ok, err := r.store.Get(ctx, accountKey(username))
	if err != nil {
		return false, fmt.Errorf("load account %q: %w", username, err)
	}
	if !ok {
		return false, nil
	}
	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return false, fmt.Errorf("decode account %q: %w", username, err)
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
