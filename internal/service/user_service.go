package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitly/internal/models"
	"github.com/mmynk/splitly/internal/storage"
	"github.com/mmynk/splitly/pkg/api"
	"github.com/mmynk/splitly/pkg/api/apiconnect"
)

// UserService implements the Connect UserService
type UserService struct {
	apiconnect.UnimplementedUserServiceHandler
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new user. Emails are unique.
func (s *UserService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	slog.Info("CreateUser request received", "email", req.Msg.Email)

	name := strings.TrimSpace(req.Msg.Name)
	email := strings.TrimSpace(req.Msg.Email)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, invalidArgument("email %q is not valid", req.Msg.Email)
	}

	user := models.NewUser(name, email, strings.TrimSpace(req.Msg.Phone))
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fail("CreateUser", err, "email", email)
	}

	slog.Info("User created", "user_id", user.ID)

	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(user)}), nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	slog.Info("GetUser request received", "user_id", req.Msg.UserID)

	if req.Msg.UserID == "" {
		return nil, invalidArgument("user_id is required")
	}

	user, err := s.store.GetUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("GetUser", err, "user_id", req.Msg.UserID)
	}

	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	slog.Info("ListUsers request received")

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fail("ListUsers", err)
	}

	apiUsers := make([]*api.User, len(users))
	for i, u := range users {
		apiUsers[i] = toAPIUser(u)
	}

	slog.Info("ListUsers successful", "count", len(users))

	return connect.NewResponse(&api.ListUsersResponse{Users: apiUsers}), nil
}

// UpdateUser changes a user's profile. Empty fields keep their current value.
func (s *UserService) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	slog.Info("UpdateUser request received", "user_id", req.Msg.UserID)

	if req.Msg.UserID == "" {
		return nil, invalidArgument("user_id is required")
	}

	user, err := s.store.GetUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("UpdateUser", err, "user_id", req.Msg.UserID)
	}

	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(req.Msg.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, invalidArgument("email %q is not valid", req.Msg.Email)
		}
		user.Email = email
	}
	if phone := strings.TrimSpace(req.Msg.Phone); phone != "" {
		user.Phone = phone
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fail("UpdateUser", err, "user_id", user.ID)
	}

	slog.Info("User updated", "user_id", user.ID)

	return connect.NewResponse(&api.UpdateUserResponse{User: toAPIUser(user)}), nil
}

// GetUserActivity returns the expenses and settlements a user took part in across
// all of their groups, newest first.
func (s *UserService) GetUserActivity(ctx context.Context, req *connect.Request[api.GetUserActivityRequest]) (*connect.Response[api.GetUserActivityResponse], error) {
	userID := req.Msg.UserID
	slog.Info("GetUserActivity request received", "user_id", userID, "limit", req.Msg.Limit)

	if userID == "" {
		return nil, invalidArgument("user_id is required")
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, fail("GetUserActivity", err, "user_id", userID)
	}

	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
		groups      []*models.Group
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListSettlementsByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.store.ListGroups(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fail("GetUserActivity", err, "user_id", userID)
	}

	activities := mergeActivity(userID, expenses, settlements, groups)
	if limit := int(req.Msg.Limit); limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}

	out := make([]*api.Activity, len(activities))
	for i := range activities {
		out[i] = toAPIActivity(&activities[i])
	}

	slog.Info("GetUserActivity successful", "user_id", userID, "count", len(out))

	return connect.NewResponse(&api.GetUserActivityResponse{Activities: out}), nil
}

// mergeActivity interleaves expenses and settlements newest first. Entries
// recorded in the same second are ordered by ID so the feed is stable.
func mergeActivity(userID string, expenses []*models.Expense, settlements []*models.Settlement, groups []*models.Group) []models.Activity {
	groupNames := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}

	activities := make([]models.Activity, 0, len(expenses)+len(settlements))
	for _, e := range expenses {
		activities = append(activities, models.Activity{
			Kind:        models.ActivityExpense,
			ID:          e.ID,
			GroupID:     e.GroupID,
			GroupName:   groupNames[e.GroupID],
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			UserShare:   e.ShareOf(userID),
			CreatedAt:   e.CreatedAt,
		})
	}
	for _, st := range settlements {
		activities = append(activities, models.Activity{
			Kind:        models.ActivitySettlement,
			ID:          st.ID,
			GroupID:     st.GroupID,
			GroupName:   groupNames[st.GroupID],
			Description: st.Note,
			Amount:      st.Amount,
			PaidBy:      st.PaidBy,
			PaidTo:      st.PaidTo,
			CreatedAt:   st.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		if activities[i].CreatedAt != activities[j].CreatedAt {
			return activities[i].CreatedAt > activities[j].CreatedAt
		}
		return activities[i].ID < activities[j].ID
	})
	return activities
}
