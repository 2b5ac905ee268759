// Package resolver picks the vendor identifier to use for an operation.
//
// Vendors are addressed either by the legacy user-scoped identifier or by their profile
// UUID. Resolution order is: the vendor ID stored in the session, then the user ID, and
// only the profile-aware variant asks the API for the profile ID. Nothing is cached, so
// every call re-evaluates from scratch.
package resolver

import (
	"context"
	"errors"

	"wedmarket/pkg/client"
	"wedmarket/pkg/logger"
	"wedmarket/pkg/model"

	"github.com/google/uuid"
)

var ErrUnresolved = errors.New("vendor id could not be resolved")

type VendorLookup interface {
	LookupByUser(ctx context.Context, userID string) (client.Result[*model.VendorRef], error)
}

type Resolver struct {
	lookup VendorLookup
	log    *logger.Logger
}

func New(lookup VendorLookup, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{lookup: lookup, log: log}
}

// Resolve returns the vendor identifier without touching the network.
func (r *Resolver) Resolve(ctx context.Context, userID, sessionVendorID string) (*model.VendorIDResolution, error) {
	if sessionVendorID != "" {
		return &model.VendorIDResolution{UserFormatID: sessionVendorID, Source: model.SourceSession}, nil
	}
	if userID != "" {
		return &model.VendorIDResolution{UserFormatID: userID, Source: model.SourceUser}, nil
	}
	r.log.Warn("Vendor id resolution failed: no session vendor and no user id")
	return nil, ErrUnresolved
}

// ResolveProfile also asks the API for the vendor profile owned by userID. When that
// lookup fails the user ID is still returned, tagged as a fallback.
func (r *Resolver) ResolveProfile(ctx context.Context, userID, sessionVendorID string) (*model.VendorIDResolution, error) {
	if sessionVendorID != "" {
		return &model.VendorIDResolution{UserFormatID: sessionVendorID, Source: model.SourceSession}, nil
	}
	if userID == "" {
		r.log.Warn("Vendor profile resolution failed: no session vendor and no user id")
		return nil, ErrUnresolved
	}

	res, err := r.lookup.LookupByUser(ctx, userID)
	if err != nil || res.Data == nil || res.Data.ID == "" {
		r.log.Warn("Vendor lookup failed, falling back to user id",
			"user_id", userID,
			"error", err,
		)
		return &model.VendorIDResolution{UserFormatID: userID, Source: model.SourceFallback}, nil
	}

	return &model.VendorIDResolution{
		UserFormatID: userID,
		ProfileID:    res.Data.ID,
		Source:       model.SourceAPI,
	}, nil
}

// IsProfileID reports whether id is a vendor profile UUID rather than a legacy id.
func IsProfileID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
