package service

import (
	"github.com/mmynk/splitly/internal/calculator"
	"github.com/mmynk/splitly/internal/models"
	"github.com/mmynk/splitly/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = &api.Member{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			JoinedAt: m.JoinedAt,
		}
	}
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		Members:     members,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splits := make([]*api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &api.Split{UserID: s.UserID, Share: s.Share}
	}
	return &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Description: e.Description,
		Amount:      e.Amount,
		SplitMethod: string(e.SplitMethod),
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        s.ID,
		GroupID:   s.GroupID,
		PaidBy:    s.PaidBy,
		PaidTo:    s.PaidTo,
		Amount:    s.Amount,
		Note:      s.Note,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}

func toAPIActivity(a *models.Activity) *api.Activity {
	return &api.Activity{
		Kind:        string(a.Kind),
		ID:          a.ID,
		GroupID:     a.GroupID,
		GroupName:   a.GroupName,
		Description: a.Description,
		Amount:      a.Amount,
		PaidBy:      a.PaidBy,
		PaidTo:      a.PaidTo,
		UserShare:   a.UserShare,
		CreatedAt:   a.CreatedAt,
	}
}

// Conversions into the balance engine's input types.

func engineMembers(g *models.Group) []calculator.Member {
	members := make([]calculator.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = calculator.Member{ID: m.UserID, GroupID: g.ID}
	}
	return members
}

func engineExpense(e *models.Expense) calculator.Expense {
	splits := make([]calculator.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = calculator.Split{UserID: s.UserID, Share: s.Share}
	}
	return calculator.Expense{
		ID:      e.ID,
		GroupID: e.GroupID,
		PaidBy:  e.PaidBy,
		Amount:  e.Amount,
		Splits:  splits,
	}
}

func engineSettlement(s *models.Settlement) calculator.Settlement {
	return calculator.Settlement{
		ID:      s.ID,
		GroupID: s.GroupID,
		PaidBy:  s.PaidBy,
		PaidTo:  s.PaidTo,
		Amount:  s.Amount,
	}
}
