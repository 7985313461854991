package repository_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/pustaka-app/pustaka/internal/kvstore"
	"github.com/pustaka-app/pustaka/internal/models"
	"github.com/pustaka-app/pustaka/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestCreateThenGetByID(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", models.ItemPatch{
		Name:   strPtr("Dune"),
		Author: strPtr("Herbert"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.Name != "Dune" || created.Author != "Herbert" {
		t.Errorf("unexpected created item: %+v", created)
	}

	got, err := repo.GetByID(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Errorf("GetByID = %+v; want %+v", got, created)
	}
}

func TestListEmptyCollection(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())

	items, err := repo.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty collection, got %d items", len(items))
	}
}

func TestIDsAreUnique(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("book %d", i)
		if _, err := repo.Create(ctx, "alice", models.ItemPatch{Name: &name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	items, err := repo.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", models.ItemPatch{
		Name:     strPtr("Dune"),
		Author:   strPtr("Herbert"),
		Category: strPtr("sf"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	patch := models.ItemPatch{Name: strPtr("Dune Messiah"), Rating: strPtr("5")}
	updated, err := repo.Update(ctx, "alice", created.ID, patch)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Dune Messiah" || updated.Rating != "5" {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Author != "Herbert" || updated.Category != "sf" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}

	// Applying the same patch again must not change the final state.
	again, err := repo.Update(ctx, "alice", created.ID, patch)
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if !reflect.DeepEqual(again, updated) {
		t.Errorf("update not idempotent: %+v vs %+v", again, updated)
	}
}

func TestUpdateEmptyPatchIsNoop(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", models.ItemPatch{Name: strPtr("Dune")})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	updated, err := repo.Update(ctx, "alice", created.ID, models.ItemPatch{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !reflect.DeepEqual(updated, created) {
		t.Errorf("empty patch changed the item: %+v vs %+v", updated, created)
	}
}

func TestUpdateMissingIDFails(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())

	_, err := repo.Update(context.Background(), "alice", "no-such-id", models.ItemPatch{Name: strPtr("x")})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Update error = %v; want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", models.ItemPatch{Name: strPtr("Dune")})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, "alice", created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID after delete = %v; want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "alice", created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete = %v; want ErrNotFound", err)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", models.ItemPatch{Name: strPtr("Dune")}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	items, err := repo.List(ctx, "bob")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("bob sees alice's items: %+v", items)
	}
}

func TestConcurrentCreatesLoseNothing(t *testing.T) {
	repo := repository.NewItemRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("book %d", i)
			if _, err := repo.Create(ctx, "alice", models.ItemPatch{Name: &name}); err != nil {
				t.Errorf("Create failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	items, err := repo.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != n {
		t.Errorf("expected %d items, got %d (lost updates)", n, len(items))
	}
}

type failingStore struct {
	kvstore.Store
	err error
}

func (s failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, s.err
}

func TestStoreErrorPropagates(t *testing.T) {
	wantErr := errors.New("disk full")
	repo := repository.NewItemRepository(failingStore{err: wantErr})

	if _, err := repo.List(context.Background(), "alice"); !errors.Is(err, wantErr) {
		t.Fatalf("List error = %v; want wrapped %v", err, wantErr)
	}
}
