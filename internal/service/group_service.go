package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitly/internal/calculator"
	"github.com/mmynk/splitly/internal/models"
	"github.com/mmynk/splitly/internal/storage"
	"github.com/mmynk/splitly/pkg/api"
	"github.com/mmynk/splitly/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
	opts  options
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, opts ...Option) *GroupService {
	return &GroupService{store: store, opts: newOptions(opts)}
}

// CreateGroup creates a new group. The creator becomes its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"created_by", req.Msg.CreatedBy,
		"members_count", len(req.Msg.MemberIDs),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	if req.Msg.CreatedBy == "" {
		return nil, invalidArgument("created_by is required")
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		CreatedBy:   req.Msg.CreatedBy,
	}

	// Save to storage (generates ID and CreatedAt, loads members)
	if err := s.store.CreateGroup(ctx, group, req.Msg.MemberIDs); err != nil {
		return nil, fail("CreateGroup", err, "name", name)
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	if req.Msg.GroupID == "" {
		return nil, invalidArgument("group_id is required")
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("GetGroup", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups, or the groups of one user.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received", "user_id", req.Msg.UserID)

	groups, err := s.store.ListGroups(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("ListGroups", err, "user_id", req.Msg.UserID)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// AddMember adds an existing user to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	if req.Msg.GroupID == "" || req.Msg.UserID == "" {
		return nil, invalidArgument("group_id and user_id are required")
	}

	group, err := s.addMember(ctx, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, fail("AddMember", err, "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)
	}

	return connect.NewResponse(&api.AddMemberResponse{Group: toAPIGroup(group)}), nil
}

// JoinGroup adds a user to a group, identified by user ID or by email as in an
// invitation link. Joining a group twice is a no-op.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	slog.Info("JoinGroup request received",
		"group_id", req.Msg.GroupID,
		"user_id", req.Msg.UserID,
		"email", req.Msg.Email,
	)

	if req.Msg.GroupID == "" {
		return nil, invalidArgument("group_id is required")
	}

	userID := req.Msg.UserID
	if userID == "" {
		if strings.TrimSpace(req.Msg.Email) == "" {
			return nil, invalidArgument("user_id or email is required")
		}
		user, err := s.store.GetUserByEmail(ctx, req.Msg.Email)
		if err != nil {
			return nil, fail("JoinGroup", err, "email", req.Msg.Email)
		}
		userID = user.ID
	}

	group, err := s.addMember(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, fail("JoinGroup", err, "group_id", req.Msg.GroupID, "user_id", userID)
	}

	slog.Info("User joined group", "group_id", group.ID, "user_id", userID)

	return connect.NewResponse(&api.JoinGroupResponse{Group: toAPIGroup(group)}), nil
}

func (s *GroupService) addMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	if err := s.store.AddGroupMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// GetGroupBalances computes every member's net balance from one consistent
// snapshot of the group and, when enabled, the transfers that would settle it.
// Nothing is persisted: balances and suggestions are derived on every read.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidArgument("group_id is required")
	}

	snap, err := s.store.GetGroupSnapshot(ctx, groupID)
	if err != nil {
		return nil, fail("GetGroupBalances", err, "group_id", groupID)
	}

	resp, err := s.computeBalances(snap)
	s.opts.metrics.RecordBalanceComputation(outcomeOf(err))
	if err != nil {
		return nil, fail("GetGroupBalances", err, "group_id", groupID)
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"expenses_count", len(snap.Expenses),
		"settlements_count", len(snap.Settlements),
		"members_count", len(resp.Balances),
		"suggestions_count", len(resp.Suggestions),
	)

	return connect.NewResponse(resp), nil
}

func (s *GroupService) computeBalances(snap *storage.GroupSnapshot) (*api.GetGroupBalancesResponse, error) {
	expenses := make([]calculator.Expense, len(snap.Expenses))
	for i, e := range snap.Expenses {
		expenses[i] = engineExpense(e)
	}
	settlements := make([]calculator.Settlement, len(snap.Settlements))
	for i, st := range snap.Settlements {
		settlements[i] = engineSettlement(st)
	}

	balances, err := calculator.ComputeBalances(engineMembers(snap.Group), expenses, settlements)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(snap.Group.Members))
	for _, m := range snap.Group.Members {
		names[m.UserID] = m.Name
	}

	resp := &api.GetGroupBalancesResponse{
		GroupID:     snap.Group.ID,
		Balances:    make([]*api.MemberBalance, len(balances)),
		Suggestions: []*api.Transfer{},
		Settled:     true,
	}
	for i, b := range balances {
		resp.Balances[i] = &api.MemberBalance{
			UserID:  b.MemberID,
			Name:    names[b.MemberID],
			Net:     b.Net,
			Paid:    b.Paid,
			Share:   b.Share,
			Settled: b.Settled(),
		}
		resp.Settled = resp.Settled && b.Settled()
	}

	if !s.opts.suggestSettlements {
		return resp, nil
	}

	transfers, err := calculator.SuggestSettlements(balances)
	if err != nil {
		return nil, err
	}
	s.opts.metrics.ObserveSuggestedTransfers(len(transfers))

	for _, t := range transfers {
		resp.Suggestions = append(resp.Suggestions, &api.Transfer{
			From:     t.From,
			FromName: names[t.From],
			To:       t.To,
			ToName:   names[t.To],
			Amount:   t.Amount,
		})
	}
	return resp, nil
}
