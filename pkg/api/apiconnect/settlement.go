package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitly/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "splitly.v1.SettlementService"

const (
	SettlementServiceCreateSettlementProcedure       = "/splitly.v1.SettlementService/CreateSettlement"
	SettlementServiceListSettlementsByGroupProcedure = "/splitly.v1.SettlementService/ListSettlementsByGroup"
	SettlementServiceListUserSettlementsProcedure    = "/splitly.v1.SettlementService/ListUserSettlements"
	SettlementServiceDeleteSettlementProcedure       = "/splitly.v1.SettlementService/DeleteSettlement"
)

// SettlementServiceClient is a client for the splitly.v1.SettlementService service.
type SettlementServiceClient interface {
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListSettlementsByGroup(context.Context, *connect.Request[api.ListSettlementsByGroupRequest]) (*connect.Response[api.ListSettlementsByGroupResponse], error)
	ListUserSettlements(context.Context, *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
}

// NewSettlementServiceClient constructs a client for the splitly.v1.SettlementService service.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &settlementServiceClient{
		createSettlement:       connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+SettlementServiceCreateSettlementProcedure, opts...),
		listSettlementsByGroup: connect.NewClient[api.ListSettlementsByGroupRequest, api.ListSettlementsByGroupResponse](httpClient, baseURL+SettlementServiceListSettlementsByGroupProcedure, opts...),
		listUserSettlements:    connect.NewClient[api.ListUserSettlementsRequest, api.ListUserSettlementsResponse](httpClient, baseURL+SettlementServiceListUserSettlementsProcedure, opts...),
		deleteSettlement:       connect.NewClient[api.DeleteSettlementRequest, api.DeleteSettlementResponse](httpClient, baseURL+SettlementServiceDeleteSettlementProcedure, opts...),
	}
}

type settlementServiceClient struct {
	createSettlement       *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	listSettlementsByGroup *connect.Client[api.ListSettlementsByGroupRequest, api.ListSettlementsByGroupResponse]
	listUserSettlements    *connect.Client[api.ListUserSettlementsRequest, api.ListUserSettlementsResponse]
	deleteSettlement       *connect.Client[api.DeleteSettlementRequest, api.DeleteSettlementResponse]
}

func (c *settlementServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSettlementsByGroup(ctx context.Context, req *connect.Request[api.ListSettlementsByGroupRequest]) (*connect.Response[api.ListSettlementsByGroupResponse], error) {
	return c.listSettlementsByGroup.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListUserSettlements(ctx context.Context, req *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error) {
	return c.listUserSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

// SettlementServiceHandler is an implementation of the splitly.v1.SettlementService service.
type SettlementServiceHandler interface {
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListSettlementsByGroup(context.Context, *connect.Request[api.ListSettlementsByGroupRequest]) (*connect.Response[api.ListSettlementsByGroupResponse], error)
	ListUserSettlements(context.Context, *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createSettlement := connect.NewUnaryHandler(SettlementServiceCreateSettlementProcedure, svc.CreateSettlement, opts...)
	listSettlementsByGroup := connect.NewUnaryHandler(SettlementServiceListSettlementsByGroupProcedure, svc.ListSettlementsByGroup, opts...)
	listUserSettlements := connect.NewUnaryHandler(SettlementServiceListUserSettlementsProcedure, svc.ListUserSettlements, opts...)
	deleteSettlement := connect.NewUnaryHandler(SettlementServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...)
	return "/splitly.v1.SettlementService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceCreateSettlementProcedure:
			createSettlement.ServeHTTP(w, r)
		case SettlementServiceListSettlementsByGroupProcedure:
			listSettlementsByGroup.ServeHTTP(w, r)
		case SettlementServiceListUserSettlementsProcedure:
			listUserSettlements.ServeHTTP(w, r)
		case SettlementServiceDeleteSettlementProcedure:
			deleteSettlement.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.SettlementService.CreateSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListSettlementsByGroup(context.Context, *connect.Request[api.ListSettlementsByGroupRequest]) (*connect.Response[api.ListSettlementsByGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.SettlementService.ListSettlementsByGroup is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListUserSettlements(context.Context, *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.SettlementService.ListUserSettlements is not implemented"))
}

func (UnimplementedSettlementServiceHandler) DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitly.v1.SettlementService.DeleteSettlement is not implemented"))
}
