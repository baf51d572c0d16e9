// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitly/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned (wrapped) when a unique constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
)

// GroupSnapshot is a consistent view of everything that affects a group's balances.
// It is read inside a single transaction so no concurrent write is half-visible.
type GroupSnapshot struct {
	Group       *models.Group
	Expenses    []*models.Expense
	Settlements []*models.Settlement
}

// Store defines the interface for Splitly storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user.ID field will be populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser updates name, email and phone of an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// CreateGroup persists a group and its initial members (creator included).
	CreateGroup(ctx context.Context, group *models.Group, memberIDs []string) error

	// GetGroup retrieves a group by ID, including its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, or only those userID belongs to when set.
	ListGroups(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to a group. Adding an existing member is a no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// CreateExpense persists an expense with its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesByUser returns expenses the user paid or has a split in, newest first.
	ListExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByGroup returns a group's settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ListSettlementsByUser returns settlements the user sent or received, newest first.
	ListSettlementsByUser(ctx context.Context, userID string) ([]*models.Settlement, error)

	// DeleteSettlement removes a settlement recorded by mistake.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// GetGroupSnapshot loads a group's members, expenses and settlements in one read transaction.
	GetGroupSnapshot(ctx context.Context, groupID string) (*GroupSnapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
