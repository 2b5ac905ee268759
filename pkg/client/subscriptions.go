package client

import (
	"context"
	"net/http"
	"net/url"

	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/model"
)

type SubscriptionClient struct {
	httpClient *HttpClient
}

func NewSubscriptionClient(httpClient *HttpClient) *SubscriptionClient {
	return &SubscriptionClient{httpClient: httpClient}
}

type subscriptionResponse struct {
	envelope
	Subscription *model.Subscription `json:"subscription"`
}

// GetVendorSubscription returns the vendor's subscription. A vendor without one yields a
// nil Data and no error.
func (c *SubscriptionClient) GetVendorSubscription(ctx context.Context, vendorID string) (Result[*model.Subscription], error) {
	var out subscriptionResponse
	path := "/api/subscriptions/vendor/" + url.PathEscape(vendorID)
	if _, err := c.httpClient.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return Result[*model.Subscription]{}, nil
		}
		return Result[*model.Subscription]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[*model.Subscription]{}, err
	}
	return Result[*model.Subscription]{Data: out.Subscription, Message: out.Message}, nil
}
