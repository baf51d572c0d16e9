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

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSettlement records a payment between two members exactly as entered.
// It does not have to match a suggested transfer.
func (s *SettlementService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	msg := req.Msg
	slog.Info("CreateSettlement request received",
		"group_id", msg.GroupID,
		"paid_by", msg.PaidBy,
		"paid_to", msg.PaidTo,
		"amount", msg.Amount.String(),
	)

	if msg.GroupID == "" {
		return nil, invalidArgument("group_id is required")
	}
	if err := requireCents("amount", msg.Amount); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		return nil, fail("CreateSettlement", err, "group_id", msg.GroupID)
	}

	settlement := &models.Settlement{
		GroupID:   group.ID,
		PaidBy:    msg.PaidBy,
		PaidTo:    msg.PaidTo,
		Amount:    msg.Amount,
		Note:      strings.TrimSpace(msg.Note),
		CreatedBy: msg.CreatedBy,
	}

	if err := calculator.ValidateSettlement(engineMembers(group), engineSettlement(settlement)); err != nil {
		return nil, fail("CreateSettlement", err, "group_id", msg.GroupID)
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fail("CreateSettlement", err, "group_id", msg.GroupID)
	}

	slog.Info("Settlement created", "settlement_id", settlement.ID, "group_id", settlement.GroupID)

	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlementsByGroup retrieves a group's settlements, newest first.
func (s *SettlementService) ListSettlementsByGroup(ctx context.Context, req *connect.Request[api.ListSettlementsByGroupRequest]) (*connect.Response[api.ListSettlementsByGroupResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ListSettlementsByGroup request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidArgument("group_id is required")
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, fail("ListSettlementsByGroup", err, "group_id", groupID)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, fail("ListSettlementsByGroup", err, "group_id", groupID)
	}

	return connect.NewResponse(&api.ListSettlementsByGroupResponse{Settlements: toAPISettlements(settlements)}), nil
}

// ListUserSettlements retrieves the settlements a user sent or received in any group.
func (s *SettlementService) ListUserSettlements(ctx context.Context, req *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error) {
	userID := req.Msg.UserID
	slog.Info("ListUserSettlements request received", "user_id", userID)

	if userID == "" {
		return nil, invalidArgument("user_id is required")
	}

	settlements, err := s.store.ListSettlementsByUser(ctx, userID)
	if err != nil {
		return nil, fail("ListUserSettlements", err, "user_id", userID)
	}

	return connect.NewResponse(&api.ListUserSettlementsResponse{Settlements: toAPISettlements(settlements)}), nil
}

// DeleteSettlement removes a settlement recorded by mistake.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	slog.Info("DeleteSettlement request received", "settlement_id", req.Msg.SettlementID)

	if req.Msg.SettlementID == "" {
		return nil, invalidArgument("settlement_id is required")
	}

	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		return nil, fail("DeleteSettlement", err, "settlement_id", req.Msg.SettlementID)
	}

	slog.Info("Settlement deleted", "settlement_id", req.Msg.SettlementID)

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

func toAPISettlements(settlements []*models.Settlement) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}
	return out
}
