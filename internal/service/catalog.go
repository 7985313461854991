package service

import (
	"context"
	"errors"

	"github.com/pustaka-app/pustaka/internal/models"
	"github.com/pustaka-app/pustaka/internal/search"
)

// ErrUnauthenticated is returned when a user-scoped operation is
// attempted with no user signed in.
var ErrUnauthenticated = errors.New("no user signed in")

// ItemRepository defines the persistence operations required by the
// catalog service.
type ItemRepository interface {
	List(ctx context.Context, userID string) ([]models.Item, error)
	GetByID(ctx context.Context, userID, id string) (*models.Item, error)
	Create(ctx context.Context, userID string, patch models.ItemPatch) (*models.Item, error)
	Update(ctx context.Context, userID, id string, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, userID, id string) error
}

// CatalogService implements the user-scoped item operations. Every
// operation resolves the session first and fails fast with
// ErrUnauthenticated rather than touching an absent user's key.
type CatalogService struct {
	items   ItemRepository
	session SessionStore
}

// NewCatalogService constructs a CatalogService with the provided
// repository and session store.
func NewCatalogService(items ItemRepository, session SessionStore) *CatalogService {
	return &CatalogService{items: items, session: session}
}

// user resolves the current user id or fails with ErrUnauthenticated.
func (s *CatalogService) user(ctx context.Context) (string, error) {
	id, ok, err := s.session.Current(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnauthenticated
	}
	return id, nil
}

// List returns all items of the signed-in user.
func (s *CatalogService) List(ctx context.Context) ([]models.Item, error) {
	userID, err := s.user(ctx)
	if err != nil {
		return nil, err
	}
	return s.items.List(ctx, userID)
}

// Search returns the signed-in user's items matching the query, in
// stored order. An empty query returns everything.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, query), nil
}

// Get returns a single item of the signed-in user by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Item, error) {
	userID, err := s.user(ctx)
	if err != nil {
		return nil, err
	}
	return s.items.GetByID(ctx, userID, id)
}

// Create adds a new item for the signed-in user.
func (s *CatalogService) Create(ctx context.Context, patch models.ItemPatch) (*models.Item, error) {
	userID, err := s.user(ctx)
	if err != nil {
		return nil, err
	}
	return s.items.Create(ctx, userID, patch)
}

// Update merges the patch into the signed-in user's item with the
// given id.
func (s *CatalogService) Update(ctx context.Context, id string, patch models.ItemPatch) (*models.Item, error) {
	userID, err := s.user(ctx)
	if err != nil {
		return nil, err
	}
	return s.items.Update(ctx, userID, id, patch)
}

// Delete removes the signed-in user's item with the given id.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	userID, err := s.user(ctx)
	if err != nil {
		return err
	}
	return s.items.Delete(ctx, userID, id)
}
