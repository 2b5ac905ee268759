package client

import (
	"context"
	"net/http"
	"net/url"

	"wedmarket/pkg/model"
)

const (
	MsgServiceCreated = "Service created successfully"
	MsgServiceUpdated = "Service updated successfully"
	MsgServiceDeleted = "Service deleted successfully"
	MsgStatusUpdated  = "Service status updated successfully"
)

// ServicesClient wraps the vendor services CRUD endpoints.
type ServicesClient struct {
	httpClient *HttpClient
}

func NewServicesClient(httpClient *HttpClient) *ServicesClient {
	return &ServicesClient{httpClient: httpClient}
}

type servicesResponse struct {
	envelope
	Services []model.Service `json:"services"`
}

type serviceResponse struct {
	envelope
	Service *model.Service `json:"service"`
	Data    *model.Service `json:"data"`
}

func (r serviceResponse) service() *model.Service {
	if r.Service != nil {
		return r.Service
	}
	return r.Data
}

type createServiceBody struct {
	model.ServiceInput
	VendorID string `json:"vendor_id"`
}

func (c *ServicesClient) FetchVendorServices(ctx context.Context, vendorID string) (Result[[]model.Service], error) {
	var out servicesResponse
	path := "/api/services/vendor/" + url.PathEscape(vendorID)
	if _, err := c.httpClient.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Result[[]model.Service]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[[]model.Service]{}, err
	}
	services := out.Services
	if services == nil {
		services = []model.Service{}
	}
	return Result[[]model.Service]{Data: services, Message: out.Message}, nil
}

func (c *ServicesClient) CreateService(ctx context.Context, vendorID string, input model.ServiceInput) (Result[*model.Service], error) {
	var out serviceResponse
	body := createServiceBody{ServiceInput: input, VendorID: vendorID}
	if _, err := c.httpClient.Call(ctx, http.MethodPost, "/api/services", body, &out); err != nil {
		return Result[*model.Service]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[*model.Service]{}, err
	}
	return Result[*model.Service]{Data: out.service(), Message: messageOr(out.Message, MsgServiceCreated)}, nil
}

func (c *ServicesClient) UpdateService(ctx context.Context, serviceID string, update model.ServiceUpdate) (Result[*model.Service], error) {
	return c.put(ctx, serviceID, update, MsgServiceUpdated)
}

// ToggleServiceStatus reuses the update endpoint with an is_active-only body.
func (c *ServicesClient) ToggleServiceStatus(ctx context.Context, serviceID string, active bool) (Result[*model.Service], error) {
	return c.put(ctx, serviceID, model.ServiceUpdate{IsActive: &active}, MsgStatusUpdated)
}

func (c *ServicesClient) DeleteService(ctx context.Context, serviceID string) (Result[struct{}], error) {
	var out envelope
	path := "/api/services/" + url.PathEscape(serviceID)
	if _, err := c.httpClient.Call(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return Result[struct{}]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[struct{}]{}, err
	}
	return Result[struct{}]{Message: messageOr(out.Message, MsgServiceDeleted)}, nil
}

func (c *ServicesClient) put(ctx context.Context, serviceID string, body any, defaultMsg string) (Result[*model.Service], error) {
	var out serviceResponse
	path := "/api/services/" + url.PathEscape(serviceID)
	if _, err := c.httpClient.Call(ctx, http.MethodPut, path, body, &out); err != nil {
		return Result[*model.Service]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[*model.Service]{}, err
	}
	return Result[*model.Service]{Data: out.service(), Message: messageOr(out.Message, defaultMsg)}, nil
}
