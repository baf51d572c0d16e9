package api

import "github.com/shopspring/decimal"

type CreateSettlementRequest struct {
	GroupID   string          `json:"group_id"`
	PaidBy    string          `json:"paid_by"`
	PaidTo    string          `json:"paid_to"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
}

type CreateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsByGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsByGroupResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type ListUserSettlementsRequest struct {
	UserID string `json:"user_id"`
}

type ListUserSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}
