package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitly/internal/models"
	"github.com/mmynk/splitly/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, name, email string) *models.User {
	t.Helper()
	user := models.NewUser(name, email, "")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return user
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID", func(t *testing.T) {
		user := models.NewUser("Alice", " Alice@Example.com ", "555-0100")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}

		got, err := store.GetUserByEmail(ctx, "ALICE@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.Phone != "555-0100" {
			t.Errorf("GetUserByEmail = %+v, want %+v", got, user)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		mustCreateUser(t, store, "Bob", "bob@example.com")
		err := store.CreateUser(ctx, models.NewUser("Bobby", "bob@example.com", ""))
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("UpdateUser changes profile", func(t *testing.T) {
		user := mustCreateUser(t, store, "Carol", "carol@example.com")
		user.Name = "Caroline"
		if err := store.UpdateUser(ctx, user); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		got, err := store.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Name != "Caroline" {
			t.Errorf("Name = %s, want Caroline", got.Name)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if _, err := store.GetUser(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		err := store.UpdateUser(ctx, &models.User{ID: "nonexistent-id", Name: "X", Email: "x@example.com"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListUsers sorted by name", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("Expected 3 users, got %d", len(users))
		}
		if users[0].Name != "Alice" || users[2].Name != "Caroline" {
			t.Errorf("unexpected order: %s, %s, %s", users[0].Name, users[1].Name, users[2].Name)
		}
	})
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "Alice", "alice@example.com")
	bob := mustCreateUser(t, store, "Bob", "bob@example.com")
	carol := mustCreateUser(t, store, "Carol", "carol@example.com")

	group := &models.Group{Name: "Roommates", CreatedBy: alice.ID}
	if err := store.CreateGroup(ctx, group, []string{bob.ID, alice.ID}); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("creator and members are added once", func(t *testing.T) {
		if group.ID == "" || group.CreatedAt == 0 {
			t.Error("Expected ID and CreatedAt to be set")
		}
		ids := group.MemberIDs()
		if len(ids) != 2 || ids[0] != alice.ID || ids[1] != bob.ID {
			t.Errorf("MemberIDs = %v, want [alice bob]", ids)
		}
		if group.Members[1].Name != "Bob" {
			t.Errorf("member name = %s, want Bob", group.Members[1].Name)
		}
	})

	t.Run("AddGroupMember is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := store.AddGroupMember(ctx, group.ID, carol.ID); err != nil {
				t.Fatalf("AddGroupMember failed: %v", err)
			}
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Members) != 3 || !got.HasMember(carol.ID) {
			t.Errorf("expected 3 members including carol, got %v", got.MemberIDs())
		}
	})

	t.Run("AddGroupMember unknown group or user", func(t *testing.T) {
		if err := store.AddGroupMember(ctx, "nope", carol.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for group, got %v", err)
		}
		if err := store.AddGroupMember(ctx, group.ID, "ghost"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for user, got %v", err)
		}
	})

	t.Run("ListGroups filters by user", func(t *testing.T) {
		other := &models.Group{Name: "Work Lunch", CreatedBy: bob.ID}
		if err := store.CreateGroup(ctx, other, nil); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		all, err := store.ListGroups(ctx, "")
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 groups, got %d", len(all))
		}

		mine, err := store.ListGroups(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(mine) != 1 || mine[0].ID != group.ID {
			t.Fatalf("expected only Roommates for alice, got %d groups", len(mine))
		}
		if len(mine[0].Members) != 3 {
			t.Errorf("expected members to be loaded, got %d", len(mine[0].Members))
		}
	})

	t.Run("GetGroup returns error for nonexistent group", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateGroup with unknown creator", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Ghosts", CreatedBy: "ghost"}, nil)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_ExpensesAndSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "Alice", "alice@example.com")
	bob := mustCreateUser(t, store, "Bob", "bob@example.com")
	group := &models.Group{Name: "Trip", CreatedBy: alice.ID}
	if err := store.CreateGroup(ctx, group, []string{bob.ID}); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		PaidBy:      alice.ID,
		Description: "Dinner",
		Amount:      decimal.RequireFromString("90.50"),
		SplitMethod: models.SplitEqual,
		Splits: []models.Split{
			{UserID: bob.ID, Share: decimal.RequireFromString("45.25")},
			{UserID: alice.ID, Share: decimal.RequireFromString("45.25")},
		},
	}

	t.Run("CreateExpense round trips splits in order", func(t *testing.T) {
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(expense.Amount) {
			t.Errorf("Amount = %s, want %s", got.Amount, expense.Amount)
		}
		if got.SplitMethod != models.SplitEqual {
			t.Errorf("SplitMethod = %s, want equal", got.SplitMethod)
		}
		if len(got.Splits) != 2 || got.Splits[0].UserID != bob.ID {
			t.Fatalf("Splits = %+v, want bob first", got.Splits)
		}
		if !got.ShareOf(alice.ID).Equal(decimal.RequireFromString("45.25")) {
			t.Errorf("alice share = %s", got.ShareOf(alice.ID))
		}
	})

	t.Run("CreateExpense is atomic", func(t *testing.T) {
		bad := &models.Expense{
			GroupID: group.ID,
			PaidBy:  alice.ID,
			Amount:  decimal.NewFromInt(10),
			Splits:  []models.Split{{UserID: alice.ID, Share: decimal.NewFromInt(5)}, {UserID: "ghost", Share: decimal.NewFromInt(5)}},
		}
		if err := store.CreateExpense(ctx, bad); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetExpense(ctx, bad.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expense should have been rolled back, got %v", err)
		}
	})

	settlement := &models.Settlement{
		GroupID: group.ID,
		PaidBy:  bob.ID,
		PaidTo:  alice.ID,
		Amount:  decimal.RequireFromString("20"),
		Note:    "cash",
	}

	t.Run("CreateSettlement and list", func(t *testing.T) {
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Note != "cash" || !got.Amount.Equal(settlement.Amount) {
			t.Errorf("GetSettlement = %+v", got)
		}

		byGroup, err := store.ListSettlementsByGroup(ctx, group.ID)
		if err != nil || len(byGroup) != 1 {
			t.Errorf("ListSettlementsByGroup = %d, %v", len(byGroup), err)
		}
		byUser, err := store.ListSettlementsByUser(ctx, alice.ID)
		if err != nil || len(byUser) != 1 {
			t.Errorf("ListSettlementsByUser = %d, %v", len(byUser), err)
		}
	})

	t.Run("ListExpensesByUser includes split participants", func(t *testing.T) {
		expenses, err := store.ListExpensesByUser(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListExpensesByUser failed: %v", err)
		}
		if len(expenses) != 1 || len(expenses[0].Splits) != 2 {
			t.Errorf("expected bob's one expense with splits, got %d", len(expenses))
		}
		byGroup, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil || len(byGroup) != 1 {
			t.Errorf("ListExpensesByGroup = %d, %v", len(byGroup), err)
		}
	})

	t.Run("GetGroupSnapshot", func(t *testing.T) {
		snap, err := store.GetGroupSnapshot(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupSnapshot failed: %v", err)
		}
		if len(snap.Group.Members) != 2 || len(snap.Expenses) != 1 || len(snap.Settlements) != 1 {
			t.Errorf("snapshot = %d members, %d expenses, %d settlements",
				len(snap.Group.Members), len(snap.Expenses), len(snap.Settlements))
		}
		if len(snap.Expenses[0].Splits) != 2 {
			t.Errorf("expected splits in snapshot, got %d", len(snap.Expenses[0].Splits))
		}

		if _, err := store.GetGroupSnapshot(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteSettlement", func(t *testing.T) {
		if err := store.DeleteSettlement(ctx, settlement.ID); err != nil {
			t.Fatalf("DeleteSettlement failed: %v", err)
		}
		if err := store.DeleteSettlement(ctx, settlement.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	user := models.NewUser("Alice", "alice@example.com", "")
	if err := first.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("New on existing database failed: %v", err)
	}
	defer second.Close()
	if _, err := second.GetUser(context.Background(), user.ID); err != nil {
		t.Errorf("user not found after reopen: %v", err)
	}
}
