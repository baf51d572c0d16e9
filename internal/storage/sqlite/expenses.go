package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/splitly/internal/models"
	"github.com/mmynk/splitly/internal/storage"
)

const expenseColumns = `id, group_id, paid_by, description, amount, split_method, created_at`

// CreateExpense persists a new expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.SplitMethod == "" {
		expense.SplitMethod = models.SplitCustom
	}

	return s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO expenses (`+expenseColumns+`)
			 VALUES (:id, :group_id, :paid_by, :description, :amount, :split_method, :created_at)`,
			expense,
		)
		if isForeignKeyViolation(err) {
			return fmt.Errorf("group %s or payer %s: %w", expense.GroupID, expense.PaidBy, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i := range expense.Splits {
			split := &expense.Splits[i]
			split.ExpenseID = expense.ID
			_, err := tx.ExecContext(ctx,
				`INSERT INTO expense_splits (expense_id, user_id, share, position) VALUES (?, ?, ?, ?)`,
				expense.ID, split.UserID, split.Share, i,
			)
			if isForeignKeyViolation(err) {
				return fmt.Errorf("split user %s: %w", split.UserID, storage.ErrNotFound)
			}
			if isUniqueViolation(err) {
				return fmt.Errorf("split for user %s: %w", split.UserID, storage.ErrAlreadyExists)
			}
			if err != nil {
				return fmt.Errorf("failed to insert split: %w", err)
			}
		}
		return nil
	})
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.GetContext(ctx, expense, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	if err != nil {
		return nil, notFound(err, "expense", expenseID)
	}
	if err := loadSplits(ctx, s.db, []*models.Expense{expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := s.db.SelectContext(ctx, &expenses,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	if err := loadSplits(ctx, s.db, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ListExpensesByUser retrieves expenses the user paid for or shares in, newest first.
func (s *SQLiteStore) ListExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := s.db.SelectContext(ctx, &expenses,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE paid_by = ? OR id IN (SELECT expense_id FROM expense_splits WHERE user_id = ?)
		 ORDER BY created_at DESC, rowid DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by user: %w", err)
	}
	if err := loadSplits(ctx, s.db, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// loadSplits fills in Splits for every expense with a single IN query.
func loadSplits(ctx context.Context, q queryer, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	ids := make([]string, len(expenses))
	byID := make(map[string]*models.Expense, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	query, args, err := sqlx.In(
		`SELECT expense_id, user_id, share FROM expense_splits
		 WHERE expense_id IN (?) ORDER BY expense_id, position`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to build split query: %w", err)
	}

	var splits []models.Split
	if err := sqlx.SelectContext(ctx, q, &splits, q.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to get expense splits: %w", err)
	}
	for _, split := range splits {
		e := byID[split.ExpenseID]
		e.Splits = append(e.Splits, split)
	}
	return nil
}
