package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/storage"
	"github.com/Hariksh/Expense-tracker/internal/storage/sqlite"
)

// newTestStore creates a SQLite store backed by a throwaway database file.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store storage.Store, name, email string) *models.User {
	t.Helper()

	user := models.NewUser(name, email, "not-a-real-hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

// createTestGroup makes a group owned by creator with the given entries and
// returns it with members loaded.
func createTestGroup(t *testing.T, store storage.Store, creator *models.User, name string, entries []MemberEntry) *models.Group {
	t.Helper()

	group, err := NewGroupService(store).Create(context.Background(), creator.ID, name, entries)
	if err != nil {
		t.Fatalf("Create group failed: %v", err)
	}
	return group
}

// virtualMember finds the virtual member slot with the given display name.
func virtualMember(t *testing.T, group *models.Group, name string) models.GroupMember {
	t.Helper()

	for _, m := range group.Members {
		if m.IsVirtual() && m.Name == name {
			return m
		}
	}
	t.Fatalf("no virtual member named %q in group %s", name, group.ID)
	return models.GroupMember{}
}
