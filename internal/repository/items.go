// Package repository provides persistence for item collections and
// account credentials on top of the key-value store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pustaka-app/pustaka/internal/kvstore"
	"github.com/pustaka-app/pustaka/internal/models"
)

// ErrNotFound is returned when the requested item is absent from the
// user's collection.
var ErrNotFound = errors.New("item not found")

// itemsKeyPrefix is the storage key prefix for per-user item collections.
const itemsKeyPrefix = "libraryItems_"

// ItemRepository stores each user's items as a single JSON array under
// one key. Every operation is a read-modify-write of the whole
// collection, serialized per user so overlapping calls cannot lose
// updates. Operations on different users do not contend.
type ItemRepository struct {
	store kvstore.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewItemRepository creates an ItemRepository backed by the given store.
func NewItemRepository(store kvstore.Store) *ItemRepository {
	return &ItemRepository{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations for userID,
// creating it on first use.
func (r *ItemRepository) userLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	return l
}

func itemsKey(userID string) string {
	return itemsKeyPrefix + userID
}

// load reads and decodes the user's collection. A key that has never
// been written decodes to an empty collection.
func (r *ItemRepository) load(ctx context.Context, userID string) ([]models.Item, error) {
	raw, ok, err := r.store.Get(ctx, itemsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load items for %q: %w", userID, err)
	}
	if !ok {
		return []models.Item{}, nil
	}
	var items []models.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode items for %q: %w", userID, err)
	}
	return items, nil
}

// save encodes and writes the user's whole collection as one atomic set.
func (r *ItemRepository) save(ctx context.Context, userID string, items []models.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items for %q: %w", userID, err)
	}
	if err := r.store.Set(ctx, itemsKey(userID), raw); err != nil {
		return fmt.Errorf("save items for %q: %w", userID, err)
	}
	return nil
}

// List returns all items in the user's collection, in insertion order.
// It returns an empty slice when the user has never stored anything.
func (r *ItemRepository) List(ctx context.Context, userID string) ([]models.Item, error) {
	l := r.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return r.load(ctx, userID)
}

// GetByID returns the item with the given id, or ErrNotFound.
func (r *ItemRepository) GetByID(ctx context.Context, userID, id string) (*models.Item, error) {
	items, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create builds a new item from the patch, assigns it a fresh id, and
// appends it to the user's collection.
func (r *ItemRepository) Create(ctx context.Context, userID string, patch models.ItemPatch) (*models.Item, error) {
	l := r.userLock(userID)
	l.Lock()
	defer l.Unlock()

	items, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := models.Item{ID: newItemID(items)}
	patch.Apply(&item)

	items = append(items, item)
	if err := r.save(ctx, userID, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// newItemID generates a random id and verifies it does not collide with
// an existing entry before accepting it.
func newItemID(items []models.Item) string {
	for {
		id := uuid.NewString()
		taken := false
		for i := range items {
			if items[i].ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// Update merges the set fields of patch into the item with the given id
// and writes the collection back. It fails with ErrNotFound when no
// entry matches; nothing is written in that case.
func (r *ItemRepository) Update(ctx context.Context, userID, id string, patch models.ItemPatch) (*models.Item, error) {
	l := r.userLock(userID)
	l.Lock()
	defer l.Unlock()

	items, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		patch.Apply(&items[i])
		if err := r.save(ctx, userID, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the item with the given id from the user's collection.
// It fails with ErrNotFound when no entry matches.
func (r *ItemRepository) Delete(ctx context.Context, userID, id string) error {
	l := r.userLock(userID)
	l.Lock()
	defer l.Unlock()

	items, err := r.load(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		return r.save(ctx, userID, items)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
