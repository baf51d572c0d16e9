package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitly/internal/calculator"
	"github.com/mmynk/splitly/internal/models"
	"github.com/mmynk/splitly/internal/storage"
	"github.com/mmynk/splitly/pkg/api"
	"github.com/mmynk/splitly/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense records an expense after building its splits and checking them
// against the group's current members. Invalid expenses are never stored.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("CreateExpense request received",
		"group_id", msg.GroupID,
		"paid_by", msg.PaidBy,
		"amount", msg.Amount.String(),
		"split_method", msg.SplitMethod,
	)

	if msg.GroupID == "" {
		return nil, invalidArgument("group_id is required")
	}

	method, err := splitMethod(msg)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		return nil, fail("CreateExpense", err, "group_id", msg.GroupID)
	}

	splits, err := buildSplits(method, msg, group)
	if err != nil {
		return nil, fail("CreateExpense", err, "group_id", msg.GroupID, "split_method", method)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		PaidBy:      msg.PaidBy,
		Description: strings.TrimSpace(msg.Description),
		Amount:      msg.Amount,
		SplitMethod: method,
		Splits:      splits,
	}

	if err := calculator.ValidateExpense(engineMembers(group), engineExpense(expense)); err != nil {
		return nil, fail("CreateExpense", err, "group_id", msg.GroupID)
	}
	absorbResidual(expense)

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fail("CreateExpense", err, "group_id", msg.GroupID)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"splits_count", len(expense.Splits),
	)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// splitMethod resolves the requested split method. Without one, explicit splits
// mean custom and anything else means equal.
func splitMethod(msg *api.CreateExpenseRequest) (models.SplitMethod, error) {
	if msg.SplitMethod == "" {
		if len(msg.Splits) > 0 {
			return models.SplitCustom, nil
		}
		return models.SplitEqual, nil
	}
	method := models.SplitMethod(strings.ToLower(msg.SplitMethod))
	if !method.Valid() {
		return "", invalidArgument("unknown split_method %q", msg.SplitMethod)
	}
	return method, nil
}

func buildSplits(method models.SplitMethod, msg *api.CreateExpenseRequest, group *models.Group) ([]models.Split, error) {
	participants := msg.Participants
	if len(participants) == 0 {
		participants = group.MemberIDs()
	}

	var shares []calculator.Split
	var err error
	switch method {
	case models.SplitEqual:
		shares, err = calculator.SplitEqually(msg.Amount, participants)
	case models.SplitItemized:
		items := make([]calculator.Item, len(msg.Items))
		for i, item := range msg.Items {
			items[i] = calculator.Item{
				Description: item.Description,
				Amount:      item.Amount,
				AssignedTo:  item.AssignedTo,
			}
		}
		shares, err = calculator.SplitByItems(items, msg.Amount, msg.Subtotal, participants)
	case models.SplitCustom:
		if err := requireCents("amount", msg.Amount); err != nil {
			return nil, err
		}
		shares = make([]calculator.Split, len(msg.Splits))
		for i, sp := range msg.Splits {
			if err := requireCents(fmt.Sprintf("splits[%d].share", i), sp.Share); err != nil {
				return nil, err
			}
			shares[i] = calculator.Split{UserID: sp.UserID, Share: sp.Share}
		}
	}
	if err != nil {
		return nil, err
	}

	splits := make([]models.Split, 0, len(shares))
	for _, sh := range shares {
		// Members with nothing assigned on an itemized bill owe nothing.
		if method == models.SplitItemized && sh.Share.IsZero() {
			continue
		}
		splits = append(splits, models.Split{UserID: sh.UserID, Share: sh.Share})
	}
	return splits, nil
}

// absorbResidual moves the cent by which custom shares may miss the amount onto
// the largest share (first one on ties), so stored splits always sum to the amount.
func absorbResidual(expense *models.Expense) {
	if len(expense.Splits) == 0 {
		return
	}
	sum := decimal.Zero
	largest := 0
	for i, sp := range expense.Splits {
		sum = sum.Add(sp.Share)
		if sp.Share.GreaterThan(expense.Splits[largest].Share) {
			largest = i
		}
	}
	if residual := expense.Amount.Sub(sum); !residual.IsZero() {
		expense.Splits[largest].Share = expense.Splits[largest].Share.Add(residual)
	}
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id is required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail("GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, req *connect.Request[api.ListExpensesByGroupRequest]) (*connect.Response[api.ListExpensesByGroupResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ListExpensesByGroup request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidArgument("group_id is required")
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, fail("ListExpensesByGroup", err, "group_id", groupID)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fail("ListExpensesByGroup", err, "group_id", groupID)
	}

	apiExpenses := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		apiExpenses[i] = toAPIExpense(e)
	}

	slog.Info("ListExpensesByGroup successful", "group_id", groupID, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesByGroupResponse{Expenses: apiExpenses}), nil
}
