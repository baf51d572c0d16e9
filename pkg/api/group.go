package api

// CreateGroupRequest creates a group. The creator is always added as the first member.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CreatedBy   string   `json:"created_by"`
	MemberIDs   []string `json:"member_ids,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// ListGroupsRequest lists every group, or only the groups of UserID when set.
type ListGroupsRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type AddMemberResponse struct {
	Group *Group `json:"group"`
}

// JoinGroupRequest joins a user to a group by id or by email. Joining twice is a no-op.
type JoinGroupRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

// GetGroupBalancesResponse lists every member's balance in membership order.
// Suggestions is empty when the group is settled or suggestions are disabled.
type GetGroupBalancesResponse struct {
	GroupID     string           `json:"group_id"`
	Balances    []*MemberBalance `json:"balances"`
	Suggestions []*Transfer      `json:"suggestions"`
	Settled     bool             `json:"settled"`
}
