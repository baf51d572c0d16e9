package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitly/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "splitly.v1.UserService"

const (
	UserServiceCreateUserProcedure      = "/splitly.v1.UserService/CreateUser"
	UserServiceGetUserProcedure         = "/splitly.v1.UserService/GetUser"
	UserServiceListUsersProcedure       = "/splitly.v1.UserService/ListUsers"
	UserServiceUpdateUserProcedure      = "/splitly.v1.UserService/UpdateUser"
	UserServiceGetUserActivityProcedure = "/splitly.v1.UserService/GetUserActivity"
)

// UserServiceClient is a client for the splitly.v1.UserService service.
type UserServiceClient interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error)
	GetUserActivity(context.Context, *connect.Request[api.GetUserActivityRequest]) (*connect.Response[api.GetUserActivityResponse], error)
}

// NewUserServiceClient constructs a client for the splitly.v1.UserService service.
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &userServiceClient{
		createUser:      connect.NewClient[api.CreateUserRequest, api.CreateUserResponse](httpClient, baseURL+UserServiceCreateUserProcedure, opts...),
		getUser:         connect.NewClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
		listUsers:       connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+UserServiceListUsersProcedure, opts...),
		updateUser:      connect.NewClient[api.UpdateUserRequest, api.UpdateUserResponse](httpClient, baseURL+UserServiceUpdateUserProcedure, opts...),
		getUserActivity: connect.NewClient[api.GetUserActivityRequest, api.GetUserActivityResponse](httpClient, baseURL+UserServiceGetUserActivityProcedure, opts...),
	}
}

type userServiceClient struct {
	createUser      *connect.Client[api.CreateUserRequest, api.CreateUserResponse]
	getUser         *connect.Client[api.GetUserRequest, api.GetUserResponse]
	listUsers       *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	updateUser      *connect.Client[api.UpdateUserRequest, api.UpdateUserResponse]
	getUserActivity *connect.Client[api.GetUserActivityRequest, api.GetUserActivityResponse]
}

func (c *userServiceClient) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *userServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *userServiceClient) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	return c.updateUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUserActivity(ctx context.Context, req *connect.Request[api.GetUserActivityRequest]) (*connect.Response[api.GetUserActivityResponse], error) {
	return c.getUserActivity.CallUnary(ctx, req)
}

// UserServiceHandler is an implementation of the splitly.v1.UserService service.
type UserServiceHandler interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error)
	GetUserActivity(context.Context, *connect.Request[api.GetUserActivityRequest]) (*connect.Response[api.GetUserActivityResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createUser := connect.NewUnaryHandler(UserServiceCreateUserProcedure, svc.CreateUser, opts...)
	getUser := connect.NewUnaryHandler(UserServiceGetUserProcedure, svc.GetUser, opts...)
	listUsers := connect.NewUnaryHandler(UserServiceListUsersProcedure, svc.ListUsers, opts...)
	updateUser := connect.NewUnaryHandler(UserServiceUpdateUserProcedure, svc.UpdateUser, opts...)
	getUserActivity := connect.NewUnaryHandler(UserServiceGetUserActivityProcedure, svc.GetUserActivity, opts...)
	return "/splitly.v1.UserService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceCreateUserProcedure:
			createUser.ServeHTTP(w, r)
		case UserServiceGetUserProcedure:
			getUser.ServeHTTP(w, r)
		case UserServiceListUsersProcedure:
			listUsers.ServeHTTP(w, r)
		case UserServiceUpdateUserProcedure:
			updateUser.ServeHTTP(w, r)
		case UserServiceGetUserActivityProcedure:
			getUserActivity.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.UserService.CreateUser is not implemented"))
}

func (UnimplementedUserServiceHandler) GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.UserService.GetUser is not implemented"))
}

func (UnimplementedUserServiceHandler) ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.UserService.ListUsers is not implemented"))
}

func (UnimplementedUserServiceHandler) UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.UserService.UpdateUser is not implemented"))
}

func (UnimplementedUserServiceHandler) GetUserActivity(context.Context, *connect.Request[api.GetUserActivityRequest]) (*connect.Response[api.GetUserActivityResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.UserService.GetUserActivity is not implemented"))
}
