package subscriptions

import (
	"context"
	"testing"

	"wedmarket/pkg/client"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/model"
)

type mockProfiles struct {
	getProfileFunc       func(ctx context.Context, vendorID string) (client.Result[*model.VendorProfile], error)
	getProfileByUserFunc func(ctx context.Context, userID string) (client.Result[*model.VendorProfile], error)
	profileCalls         []string
	byUserCalls          []string
}

func (m *mockProfiles) GetProfile(ctx context.Context, vendorID string) (client.Result[*model.VendorProfile], error) {
	m.profileCalls = append(m.profileCalls, vendorID)
	if m.getProfileFunc != nil {
		return m.getProfileFunc(ctx, vendorID)
	}
	return client.Result[*model.VendorProfile]{}, apperrors.NotFound("Vendor profile")
}

func (m *mockProfiles) GetProfileByUser(ctx context.Context, userID string) (client.Result[*model.VendorProfile], error) {
	m.byUserCalls = append(m.byUserCalls, userID)
	if m.getProfileByUserFunc != nil {
		return m.getProfileByUserFunc(ctx, userID)
	}
	return client.Result[*model.VendorProfile]{}, apperrors.NotFound("Vendor profile")
}

func found(ctx context.Context, id string) (client.Result[*model.VendorProfile], error) {
	return client.Result[*model.VendorProfile]{Data: &model.VendorProfile{ID: "profile-" + id}}, nil
}

func unavailable(ctx context.Context, id string) (client.Result[*model.VendorProfile], error) {
	return client.Result[*model.VendorProfile]{}, apperrors.Unavailable("marketplace API")
}

func TestEnsureVendorProfile(t *testing.T) {
	tests := []struct {
		name        string
		vendorID    string
		userID      string
		mock        *mockProfiles
		wantExists  bool
		wantError   string
		wantProfile []string
		wantByUser  []string
	}{
		{
			name:        "found by vendor id",
			vendorID:    "v1",
			userID:      "u1",
			mock:        &mockProfiles{getProfileFunc: found},
			wantExists:  true,
			wantProfile: []string{"v1"},
		},
		{
			name:        "user id used when vendor id is empty",
			userID:      "u1",
			mock:        &mockProfiles{getProfileFunc: found},
			wantExists:  true,
			wantProfile: []string{"u1"},
		},
		{
			name:        "404 retries by user",
			vendorID:    "v1",
			userID:      "u1",
			mock:        &mockProfiles{getProfileByUserFunc: found},
			wantExists:  true,
			wantProfile: []string{"v1"},
			wantByUser:  []string{"u1"},
		},
		{
			name:        "not found anywhere",
			vendorID:    "v1",
			userID:      "u1",
			mock:        &mockProfiles{},
			wantError:   MsgProfileNotFound,
			wantProfile: []string{"v1"},
			wantByUser:  []string{"u1"},
		},
		{
			name:        "transport failure on first lookup",
			vendorID:    "v1",
			userID:      "u1",
			mock:        &mockProfiles{getProfileFunc: unavailable},
			wantError:   MsgProfileUnverified,
			wantProfile: []string{"v1"},
		},
		{
			name:        "transport failure on user lookup",
			vendorID:    "v1",
			userID:      "u1",
			mock:        &mockProfiles{getProfileByUserFunc: unavailable},
			wantError:   MsgProfileUnverified,
			wantProfile: []string{"v1"},
			wantByUser:  []string{"u1"},
		},
		{
			name:      "no identifiers",
			mock:      &mockProfiles{},
			wantError: MsgProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewProfileChecker(tt.mock, nil)
			got := checker.EnsureVendorProfile(context.Background(), tt.vendorID, tt.userID)

			if got.Exists != tt.wantExists {
				t.Errorf("Exists = %v, want %v", got.Exists, tt.wantExists)
			}
			if got.Error != tt.wantError {
				t.Errorf("Error = %q, want %q", got.Error, tt.wantError)
			}
			if got.NotFound != (tt.wantError == MsgProfileNotFound) {
				t.Errorf("NotFound = %v for error %q", got.NotFound, got.Error)
			}
			if !equal(tt.mock.profileCalls, tt.wantProfile) {
				t.Errorf("profile lookups = %v, want %v", tt.mock.profileCalls, tt.wantProfile)
			}
			if !equal(tt.mock.byUserCalls, tt.wantByUser) {
				t.Errorf("by-user lookups = %v, want %v", tt.mock.byUserCalls, tt.wantByUser)
			}
		})
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
