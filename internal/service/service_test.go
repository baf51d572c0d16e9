package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitly/internal/middleware"
	"github.com/mmynk/splitly/internal/storage/sqlite"
	"github.com/mmynk/splitly/pkg/api"
	"github.com/mmynk/splitly/pkg/api/apiconnect"
)

type testClients struct {
	users       apiconnect.UserServiceClient
	groups      apiconnect.GroupServiceClient
	expenses    apiconnect.ExpenseServiceClient
	settlements apiconnect.SettlementServiceClient
}

// setupTestServer serves all four services over a fresh SQLite database.
func setupTestServer(t *testing.T, opts ...Option) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, opts...), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		users:       apiconnect.NewUserServiceClient(http.DefaultClient, server.URL),
		groups:      apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createUser(t *testing.T, c *testClients, name, email string) *api.User {
	t.Helper()
	resp, err := c.users.CreateUser(context.Background(), connect.NewRequest(&api.CreateUserRequest{
		Name:  name,
		Email: email,
	}))
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return resp.Msg.User
}

func createGroup(t *testing.T, c *testClients, name string, creator *api.User, others ...*api.User) *api.Group {
	t.Helper()
	ids := make([]string, len(others))
	for i, u := range others {
		ids[i] = u.ID
	}
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:      name,
		CreatedBy: creator.ID,
		MemberIDs: ids,
	}))
	if err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", name, err)
	}
	return resp.Msg.Group
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code: expected %v, got %v (%v)", want, got, err)
	}
}
