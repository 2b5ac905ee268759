package subscriptions

import (
	"context"

	"wedmarket/pkg/client"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/logger"
	"wedmarket/pkg/model"
)

const (
	MsgProfileNotFound   = "Vendor profile not found. Please complete your vendor profile before adding services."
	MsgProfileUnverified = "Unable to verify vendor profile. Please check your connection and try again."
)

type ProfileFetcher interface {
	GetProfile(ctx context.Context, vendorID string) (client.Result[*model.VendorProfile], error)
	GetProfileByUser(ctx context.Context, userID string) (client.Result[*model.VendorProfile], error)
}

type ProfileCheck struct {
	Exists   bool                 `json:"exists"`
	NotFound bool                 `json:"notFound,omitempty"`
	Error    string               `json:"error,omitempty"`
	Profile  *model.VendorProfile `json:"profile,omitempty"`
}

type ProfileChecker struct {
	profiles ProfileFetcher
	log      *logger.Logger
}

func NewProfileChecker(profiles ProfileFetcher, log *logger.Logger) *ProfileChecker {
	if log == nil {
		log = logger.Discard()
	}
	return &ProfileChecker{profiles: profiles, log: log}
}

// EnsureVendorProfile checks that the vendor has completed a profile. The profile is
// looked up by vendorID (or userID when vendorID is empty); a 404 retries through the
// user endpoint.
func (p *ProfileChecker) EnsureVendorProfile(ctx context.Context, vendorID, userID string) ProfileCheck {
	target := vendorID
	if target == "" {
		target = userID
	}
	if target == "" {
		return ProfileCheck{NotFound: true, Error: MsgProfileNotFound}
	}

	res, err := p.profiles.GetProfile(ctx, target)
	if err == nil {
		return ProfileCheck{Exists: true, Profile: res.Data}
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return p.unverified(target, err)
	}

	if userID == "" {
		return ProfileCheck{NotFound: true, Error: MsgProfileNotFound}
	}

	res, err = p.profiles.GetProfileByUser(ctx, userID)
	if err == nil {
		return ProfileCheck{Exists: true, Profile: res.Data}
	}
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		p.log.Info("Vendor profile not found", "vendor_id", vendorID, "user_id", userID)
		return ProfileCheck{NotFound: true, Error: MsgProfileNotFound}
	}
	return p.unverified(userID, err)
}

func (p *ProfileChecker) unverified(id string, err error) ProfileCheck {
	p.log.Warn("Vendor profile check failed", "id", id, "error", err)
	return ProfileCheck{Error: MsgProfileUnverified}
}
