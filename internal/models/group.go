package models

// Group represents a set of people sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `db:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Trip to Goa").
	Name string `db:"name"`

	// Description is optional free text.
	Description string `db:"description"`

	// CreatedBy is the user ID of the group's creator. The creator is always a member.
	CreatedBy string `db:"created_by"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `db:"created_at"`

	// Members is the current membership, ordered by join time.
	Members []Member `db:"-"`
}

// Member is a user's membership in a group.
// Unique per (group, user).
type Member struct {
	GroupID  string `db:"group_id"`
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	JoinedAt int64  `db:"joined_at"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the user IDs of all members in membership order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
