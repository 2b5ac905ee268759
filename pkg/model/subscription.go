package model

type Tier string

const (
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Unlimited is the limit value meaning "no cap".
const Unlimited = -1

type SubscriptionLimits struct {
	MaxServices         int  `json:"max_services"`
	MaxImagesPerService int  `json:"max_images_per_service"`
	CanFeatureServices  bool `json:"can_feature_services"`
	AdvancedAnalytics   bool `json:"advanced_analytics"`
}

type SubscriptionPlan struct {
	ID     string             `json:"id,omitempty"`
	Name   string             `json:"name,omitempty"`
	Tier   Tier               `json:"tier"`
	Limits SubscriptionLimits `json:"limits"`
}

type Subscription struct {
	ID       string             `json:"id,omitempty"`
	VendorID string             `json:"vendor_id,omitempty"`
	Status   SubscriptionStatus `json:"status"`
	Plan     SubscriptionPlan   `json:"plan"`
}

// IsLapsed reports whether the subscription explicitly no longer grants its plan.
// An empty status is treated as active.
func (s *Subscription) IsLapsed() bool {
	switch s.Status {
	case SubscriptionInactive, SubscriptionCancelled, SubscriptionExpired:
		return true
	default:
		return false
	}
}
