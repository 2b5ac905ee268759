package client

import (
	"context"
	"net/http"
	"net/url"

	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/model"
)

type VendorClient struct {
	httpClient *HttpClient
}

func NewVendorClient(httpClient *HttpClient) *VendorClient {
	return &VendorClient{httpClient: httpClient}
}

type vendorLookupResponse struct {
	envelope
	Vendor *model.VendorRef `json:"vendor"`
}

type vendorProfileResponse struct {
	envelope
	Profile *model.VendorProfile `json:"profile"`
	Data    *model.VendorProfile `json:"data"`
}

// LookupByUser finds the vendor record owned by a user account.
func (c *VendorClient) LookupByUser(ctx context.Context, userID string) (Result[*model.VendorRef], error) {
	var out vendorLookupResponse
	path := "/api/vendors/user/" + url.PathEscape(userID)
	if _, err := c.httpClient.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Result[*model.VendorRef]{}, err
	}
	if err := out.rejected(); err != nil {
		return Result[*model.VendorRef]{}, err
	}
	if out.Vendor == nil || out.Vendor.ID == "" {
		return Result[*model.VendorRef]{}, apperrors.NotFoundWithID("Vendor", userID)
	}
	return Result[*model.VendorRef]{Data: out.Vendor, Message: out.Message}, nil
}

func (c *VendorClient) GetProfile(ctx context.Context, vendorID string) (Result[*model.VendorProfile], error) {
	return c.getProfile(ctx, "/api/vendor-profile/"+url.PathEscape(vendorID))
}

func (c *VendorClient) GetProfileByUser(ctx context.Context, userID string) (Result[*model.VendorProfile], error) {
	return c.getProfile(ctx, "/api/vendor-profile/user/"+url.PathEscape(userID))
}

// getProfile treats any 2xx as existence; the body is decoded when it is JSON and
// ignored otherwise.
func (c *VendorClient) getProfile(ctx context.Context, path string) (Result[*model.VendorProfile], error) {
	resp, err := c.httpClient.Call(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return Result[*model.VendorProfile]{}, err
	}

	var out vendorProfileResponse
	if decodeErr := resp.DecodeJSON(&out); decodeErr != nil {
		return Result[*model.VendorProfile]{}, nil
	}
	profile := out.Profile
	if profile == nil {
		profile = out.Data
	}
	return Result[*model.VendorProfile]{Data: profile, Message: out.Message}, nil
}
