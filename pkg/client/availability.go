package client

import (
	"context"
	"net/http"
	"net/url"

	"wedmarket/pkg/model"
)

type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(httpClient *HttpClient) *AvailabilityClient {
	return &AvailabilityClient{httpClient: httpClient}
}

type availabilityRangeResponse struct {
	envelope
	Availability model.AvailabilityMap `json:"availability"`
}

type availabilityRecordResponse struct {
	envelope
	Data *model.AvailabilityRecord `json:"data"`
}

// CheckAvailabilityRange returns the vendor's records between two ISO dates, inclusive.
func (c *AvailabilityClient) CheckAvailabilityRange(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	path := "/api/availability/vendor/" + url.PathEscape(vendorID) + "?" + q.Encode()

	var out availabilityRangeResponse
	if _, err := c.httpClient.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if err := out.rejected(); err != nil {
		return nil, err
	}
	if out.Availability == nil {
		return model.AvailabilityMap{}, nil
	}
	return out.Availability, nil
}

func (c *AvailabilityClient) SetDate(ctx context.Context, vendorID, date string, update model.AvailabilityUpdate) (Result[*model.AvailabilityRecord], error) {
	var out availabilityRecordResponse
	if _, err := c.httpClient.Call(ctx, http.MethodPut, datePath(vendorID, date), update, &out); err != nil {
		return Result[*model.AvailabilityRecord]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[*model.AvailabilityRecord]{}, err
	}
	return Result[*model.AvailabilityRecord]{Data: out.Data, Message: out.Message}, nil
}

func (c *AvailabilityClient) ClearDate(ctx context.Context, vendorID, date string) error {
	_, err := c.httpClient.Call(ctx, http.MethodDelete, datePath(vendorID, date), nil, nil)
	return err
}

func datePath(vendorID, date string) string {
	return "/api/availability/vendor/" + url.PathEscape(vendorID) + "/date/" + url.PathEscape(date)
}
