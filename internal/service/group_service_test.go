package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitly/internal/metrics"
	"github.com/mmynk/splitly/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	alice := createUser(t, c, "Alice", "alice@example.com")
	bob := createUser(t, c, "Bob", "bob@example.com")

	group := createGroup(t, c, "Roommates", alice, bob)
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	if len(group.Members) != 2 || group.Members[0].UserID != alice.ID {
		t.Fatalf("members: expected creator first of 2, got %+v", group.Members)
	}
	if group.Members[1].Name != "Bob" {
		t.Errorf("member name: expected 'Bob', got '%s'", group.Members[1].Name)
	}

	tests := []struct {
		name string
		req  *api.CreateGroupRequest
		code connect.Code
	}{
		{"missing name", &api.CreateGroupRequest{CreatedBy: alice.ID}, connect.CodeInvalidArgument},
		{"missing creator", &api.CreateGroupRequest{Name: "X"}, connect.CodeInvalidArgument},
		{"unknown creator", &api.CreateGroupRequest{Name: "X", CreatedBy: "ghost"}, connect.CodeNotFound},
		{"unknown member", &api.CreateGroupRequest{Name: "X", CreatedBy: alice.ID, MemberIDs: []string{"ghost"}}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.groups.CreateGroup(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestGetAndListGroups(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	alice := createUser(t, c, "Alice", "alice@example.com")
	bob := createUser(t, c, "Bob", "bob@example.com")
	roommates := createGroup(t, c, "Roommates", alice, bob)
	createGroup(t, c, "Work Lunch", bob)

	got, err := c.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: roommates.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Msg.Group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", got.Msg.Group.Name)
	}

	_, err = c.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "nonexistent"}))
	assertCode(t, err, connect.CodeNotFound)

	all, err := c.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(all.Msg.Groups) != 2 {
		t.Errorf("groups: expected 2, got %d", len(all.Msg.Groups))
	}

	mine, err := c.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{UserID: alice.ID}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(mine.Msg.Groups) != 1 || mine.Msg.Groups[0].ID != roommates.ID {
		t.Errorf("expected only Roommates for alice, got %d groups", len(mine.Msg.Groups))
	}
}

func TestAddMemberAndJoinGroup(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	alice := createUser(t, c, "Alice", "alice@example.com")
	bob := createUser(t, c, "Bob", "bob@example.com")
	carol := createUser(t, c, "Carol", "carol@example.com")
	group := createGroup(t, c, "Trip", alice)

	added, err := c.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: group.ID, UserID: bob.ID}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if len(added.Msg.Group.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(added.Msg.Group.Members))
	}

	// Joining by email twice leaves a single membership.
	for i := 0; i < 2; i++ {
		joined, err := c.groups.JoinGroup(ctx, connect.NewRequest(&api.JoinGroupRequest{GroupID: group.ID, Email: "CAROL@example.com"}))
		if err != nil {
			t.Fatalf("JoinGroup failed: %v", err)
		}
		if len(joined.Msg.Group.Members) != 3 {
			t.Errorf("members after join %d: expected 3, got %d", i+1, len(joined.Msg.Group.Members))
		}
	}

	joined, err := c.groups.JoinGroup(ctx, connect.NewRequest(&api.JoinGroupRequest{GroupID: group.ID, UserID: carol.ID}))
	if err != nil {
		t.Fatalf("JoinGroup by user_id failed: %v", err)
	}
	if len(joined.Msg.Group.Members) != 3 {
		t.Errorf("members: expected 3, got %d", len(joined.Msg.Group.Members))
	}

	tests := []struct {
		name string
		req  *api.JoinGroupRequest
		code connect.Code
	}{
		{"no identity", &api.JoinGroupRequest{GroupID: group.ID}, connect.CodeInvalidArgument},
		{"unknown email", &api.JoinGroupRequest{GroupID: group.ID, Email: "nobody@example.com"}, connect.CodeNotFound},
		{"unknown group", &api.JoinGroupRequest{GroupID: "nonexistent", UserID: bob.ID}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.groups.JoinGroup(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestGetGroupBalances(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	alice := createUser(t, c, "Alice", "alice@example.com")
	bob := createUser(t, c, "Bob", "bob@example.com")
	carol := createUser(t, c, "Carol", "carol@example.com")
	group := createGroup(t, c, "Trip", alice, bob, carol)

	balances := func() *api.GetGroupBalancesResponse {
		t.Helper()
		resp, err := c.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("GetGroupBalances failed: %v", err)
		}
		return resp.Msg
	}

	empty := balances()
	if !empty.Settled || len(empty.Suggestions) != 0 {
		t.Errorf("new group should be settled with no suggestions, got %+v", empty)
	}

	// Alice pays 90, split equally three ways.
	_, err := c.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		GroupID:     group.ID,
		PaidBy:      alice.ID,
		Description: "Dinner",
		Amount:      d("90"),
		SplitMethod: "equal",
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	resp := balances()
	want := map[string]string{alice.ID: "60.00", bob.ID: "-30.00", carol.ID: "-30.00"}
	for i, b := range resp.Balances {
		if b.UserID != group.Members[i].UserID {
			t.Errorf("balances[%d]: expected membership order, got %s", i, b.UserID)
		}
		if got := b.Net.StringFixed(2); got != want[b.UserID] {
			t.Errorf("net for %s: expected %s, got %s", b.Name, want[b.UserID], got)
		}
	}
	if resp.Balances[0].Paid.StringFixed(2) != "90.00" || resp.Balances[0].Share.StringFixed(2) != "30.00" {
		t.Errorf("alice paid/share: got %s/%s", resp.Balances[0].Paid, resp.Balances[0].Share)
	}
	if resp.Settled {
		t.Error("expected group not to be settled")
	}

	if len(resp.Suggestions) != 2 {
		t.Fatalf("suggestions: expected 2, got %d", len(resp.Suggestions))
	}
	for _, s := range resp.Suggestions {
		if s.To != alice.ID || s.ToName != "Alice" || s.Amount.StringFixed(2) != "30.00" {
			t.Errorf("unexpected suggestion %+v", s)
		}
	}

	// Bob pays Alice back; only Carol still owes.
	_, err = c.settlements.CreateSettlement(ctx, connect.NewRequest(&api.CreateSettlementRequest{
		GroupID: group.ID,
		PaidBy:  bob.ID,
		PaidTo:  alice.ID,
		Amount:  d("30"),
	}))
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	resp = balances()
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].From != carol.ID {
		t.Fatalf("expected a single suggestion from carol, got %+v", resp.Suggestions)
	}
	if !resp.Balances[1].Settled {
		t.Error("expected bob to be settled")
	}

	_, err = c.settlements.CreateSettlement(ctx, connect.NewRequest(&api.CreateSettlementRequest{
		GroupID: group.ID,
		PaidBy:  carol.ID,
		PaidTo:  alice.ID,
		Amount:  d("30"),
	}))
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	resp = balances()
	if !resp.Settled || len(resp.Suggestions) != 0 {
		t.Errorf("expected settled group, got %+v", resp)
	}
}

func TestGetGroupBalances_UnevenCustomSplits(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	alice := createUser(t, c, "Alice", "alice@example.com")
	bob := createUser(t, c, "Bob", "bob@example.com")
	carol := createUser(t, c, "Carol", "carol@example.com")
	group := createGroup(t, c, "Trip", alice, bob, carol)

	// Each expense is a cent short; together they would be off by three cents.
	for _, payer := range []string{alice.ID, bob.ID, carol.ID} {
		_, err := c.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
			GroupID: group.ID,
			PaidBy:  payer,
			Amount:  d("100"),
			Splits: []*api.Split{
				{UserID: alice.ID, Share: d("33.33")},
				{UserID: bob.ID, Share: d("33.33")},
				{UserID: carol.ID, Share: d("33.33")},
			},
		}))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	resp, err := c.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	sum := decimal.Zero
	for _, b := range resp.Msg.Balances {
		sum = sum.Add(b.Net)
	}
	if !sum.IsZero() {
		t.Errorf("balances sum to %s, expected 0", sum)
	}
	want := map[string]string{alice.ID: "-0.02", bob.ID: "0.01", carol.ID: "0.01"}
	for _, b := range resp.Msg.Balances {
		if got := b.Net.StringFixed(2); got != want[b.UserID] {
			t.Errorf("net for %s: expected %s, got %s", b.Name, want[b.UserID], got)
		}
	}
}

func TestGetGroupBalances_SuggestionsDisabled(t *testing.T) {
	m := metrics.New()
	c := setupTestServer(t, WithSettlementSuggestions(false), WithMetrics(m))
	ctx := context.Background()

	alice := createUser(t, c, "Alice", "alice@example.com")
	bob := createUser(t, c, "Bob", "bob@example.com")
	group := createGroup(t, c, "Trip", alice, bob)

	_, err := c.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		GroupID: group.ID,
		PaidBy:  bob.ID,
		Amount:  d("10"),
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	resp, err := c.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	if len(resp.Msg.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %d", len(resp.Msg.Suggestions))
	}
	if resp.Msg.Balances[1].Net.StringFixed(2) != "5.00" {
		t.Errorf("bob net: expected 5.00, got %s", resp.Msg.Balances[1].Net)
	}

	_, err = c.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: "nonexistent"}))
	assertCode(t, err, connect.CodeNotFound)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	var computed float64
	for _, mf := range families {
		if mf.GetName() == "splitly_balances_computations_total" {
			for _, metric := range mf.GetMetric() {
				computed += metric.GetCounter().GetValue()
			}
		}
	}
	// The unknown group fails before the engine runs.
	if computed != 1 {
		t.Errorf("balance computations: expected 1, got %v", computed)
	}
}
