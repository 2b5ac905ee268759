package model

// VendorRef is the remote vendor record returned by the user lookup.
type VendorRef struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id,omitempty"`
	Name     string `json:"business_name,omitempty"`
	Category string `json:"category,omitempty"`
}

type VendorProfile struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Category     string `json:"category,omitempty"`
	Location     string `json:"location,omitempty"`
}

type VendorIDSource string

const (
	SourceSession  VendorIDSource = "session"
	SourceUser     VendorIDSource = "user"
	SourceAPI      VendorIDSource = "api"
	SourceFallback VendorIDSource = "fallback"
)

// VendorIDResolution names the identifiers to use for a vendor operation. UserFormatID is
// always set on a successful resolution; ProfileID only when a profile lookup succeeded.
type VendorIDResolution struct {
	UserFormatID string         `json:"userFormatId"`
	ProfileID    string         `json:"profileId,omitempty"`
	Source       VendorIDSource `json:"source"`
}

func (r *VendorIDResolution) PreferredID() string {
	if r.ProfileID != "" {
		return r.ProfileID
	}
	return r.UserFormatID
}
