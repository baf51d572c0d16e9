package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mmynk/splitly/internal/storage"
)

// GetGroupSnapshot loads the group with its members, expenses (with splits) and
// settlements inside one transaction. SQLite gives a deferred transaction a
// single read snapshot, so a concurrent write is either fully visible or not at
// all. Rows come back oldest first so repeated reads of unchanged data are identical.
func (s *SQLiteStore) GetGroupSnapshot(ctx context.Context, groupID string) (*storage.GroupSnapshot, error) {
	snap := &storage.GroupSnapshot{}

	err := s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		group, err := getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		snap.Group = group

		if err := tx.SelectContext(ctx, &snap.Expenses,
			`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY created_at, rowid`,
			groupID,
		); err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		if err := loadSplits(ctx, tx, snap.Expenses); err != nil {
			return err
		}

		if err := tx.SelectContext(ctx, &snap.Settlements,
			`SELECT `+settlementColumns+` FROM settlements WHERE group_id = ? ORDER BY created_at, rowid`,
			groupID,
		); err != nil {
			return fmt.Errorf("failed to load settlements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
