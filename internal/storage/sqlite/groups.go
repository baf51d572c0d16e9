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

const groupColumns = `id, name, description, created_by, created_at`

// CreateGroup persists a new group. The creator and every listed user become members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, memberIDs []string) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	// Creator first, then the rest in the order given
	ids := []string{group.CreatedBy}
	seen := map[string]bool{group.CreatedBy: true}
	for _, id := range memberIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	err := s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO groups (`+groupColumns+`)
			 VALUES (:id, :name, :description, :created_by, :created_at)`,
			group,
		)
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %s: %w", group.CreatedBy, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		for _, userID := range ids {
			if err := insertMember(ctx, tx, group.ID, userID, group.CreatedAt); err != nil {
				return err
			}
		}

		members, err := listMembers(ctx, tx, group.ID)
		if err != nil {
			return err
		}
		group.Members = members
		return nil
	})
	return err
}

// GetGroup retrieves a group by ID, including members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return getGroup(ctx, s.db, groupID)
}

func getGroup(ctx context.Context, q queryer, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := sqlx.GetContext(ctx, q, group, `SELECT `+groupColumns+` FROM groups WHERE id = ?`, groupID)
	if err != nil {
		return nil, notFound(err, "group", groupID)
	}

	members, err := listMembers(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// ListGroups retrieves all groups, or the groups userID belongs to, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	var groups []*models.Group
	var err error
	if userID == "" {
		err = s.db.SelectContext(ctx, &groups,
			`SELECT `+groupColumns+` FROM groups ORDER BY created_at DESC, rowid DESC`)
	} else {
		err = s.db.SelectContext(ctx, &groups,
			`SELECT g.id, g.name, g.description, g.created_by, g.created_at
			 FROM groups g JOIN group_members gm ON gm.group_id = g.id
			 WHERE gm.user_id = ?
			 ORDER BY g.created_at DESC, g.rowid DESC`,
			userID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if len(groups) == 0 {
		return groups, nil
	}

	ids := make([]string, len(groups))
	byID := make(map[string]*models.Group, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
		byID[g.ID] = g
	}

	query, args, err := sqlx.In(
		`SELECT gm.group_id, gm.user_id, u.name, u.email, gm.joined_at
		 FROM group_members gm JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id IN (?)
		 ORDER BY gm.joined_at, gm.rowid`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build member query: %w", err)
	}

	var members []models.Member
	if err := s.db.SelectContext(ctx, &members, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	for _, m := range members {
		g := byID[m.GroupID]
		g.Members = append(g.Members, m)
	}
	return groups, nil
}

// AddGroupMember adds a user to a group. Re-adding an existing member is a no-op.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, userID string) error {
	return s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM groups WHERE id = ?`, groupID); err != nil {
			return fmt.Errorf("failed to check group existence: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
		}
		return insertMember(ctx, tx, groupID, userID, time.Now().Unix())
	})
}

func insertMember(ctx context.Context, tx *sqlx.Tx, groupID, userID string, joinedAt int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)`,
		groupID, userID, joinedAt,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

func listMembers(ctx context.Context, q queryer, groupID string) ([]models.Member, error) {
	var members []models.Member
	err := sqlx.SelectContext(ctx, q, &members,
		`SELECT gm.group_id, gm.user_id, u.name, u.email, gm.joined_at
		 FROM group_members gm JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = ?
		 ORDER BY gm.joined_at, gm.rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}
