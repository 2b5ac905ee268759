// Package subscriptions evaluates subscription plan limits for vendor actions.
package subscriptions

import (
	"fmt"

	"wedmarket/pkg/model"
)

const (
	DefaultMaxServices         = 5
	DefaultMaxImagesPerService = 5

	// FreePlanName names the plan of a vendor without an active subscription.
	FreePlanName = "free"
)

type ServiceLimitCheck struct {
	Allowed       bool       `json:"allowed"`
	IsUnlimited   bool       `json:"isUnlimited"`
	CurrentCount  int        `json:"currentCount"`
	MaxServices   int        `json:"maxServices"`
	CurrentTier   model.Tier `json:"currentTier,omitempty"`
	Message       string     `json:"message,omitempty"`
	SuggestedTier model.Tier `json:"suggestedTier,omitempty"`
}

type ImageLimitCheck struct {
	Allowed     bool `json:"allowed"`
	IsUnlimited bool `json:"isUnlimited"`
	Count       int  `json:"count"`
	MaxImages   int  `json:"maxImages"`
}

// CheckServiceLimit decides whether a vendor with currentCount services may create
// another one. Editing never counts against the limit.
func CheckServiceLimit(sub *model.Subscription, currentCount int, isEditing bool) ServiceLimitCheck {
	if isEditing {
		return ServiceLimitCheck{Allowed: true, IsUnlimited: true, CurrentCount: currentCount}
	}

	sub = effective(sub)
	maxServices := DefaultMaxServices
	var tier model.Tier
	if sub != nil {
		tier = sub.Plan.Tier
		// An omitted max_services decodes as 0, so 0 keeps the default.
		if sub.Plan.Limits.MaxServices != 0 {
			maxServices = sub.Plan.Limits.MaxServices
		}
	}

	check := ServiceLimitCheck{
		CurrentCount: currentCount,
		MaxServices:  maxServices,
		CurrentTier:  tier,
		IsUnlimited:  maxServices == model.Unlimited,
	}
	check.Allowed = check.IsUnlimited || currentCount < maxServices
	if check.Allowed {
		return check
	}

	check.SuggestedTier = NextTier(tier)
	check.Message = fmt.Sprintf(
		"You've reached the limit of %d services on your %s plan. Upgrade to %s to add more services.",
		maxServices, planName(tier), check.SuggestedTier,
	)
	return check
}

// CheckImageLimit decides whether a service may carry imageCount images.
func CheckImageLimit(sub *model.Subscription, imageCount int) ImageLimitCheck {
	sub = effective(sub)
	maxImages := DefaultMaxImagesPerService
	if sub != nil && sub.Plan.Limits.MaxImagesPerService != 0 {
		maxImages = sub.Plan.Limits.MaxImagesPerService
	}
	unlimited := maxImages == model.Unlimited
	return ImageLimitCheck{
		Allowed:     unlimited || imageCount <= maxImages,
		IsUnlimited: unlimited,
		Count:       imageCount,
		MaxImages:   maxImages,
	}
}

func CanFeatureService(sub *model.Subscription) bool {
	sub = effective(sub)
	return sub != nil && sub.Plan.Limits.CanFeatureServices
}

func HasAdvancedAnalytics(sub *model.Subscription) bool {
	sub = effective(sub)
	return sub != nil && sub.Plan.Limits.AdvancedAnalytics
}

// NextTier is the tier suggested to a vendor who hit a limit.
func NextTier(current model.Tier) model.Tier {
	if current == model.TierBasic {
		return model.TierPremium
	}
	return model.TierPro
}

// effective drops subscriptions that no longer grant their plan.
func effective(sub *model.Subscription) *model.Subscription {
	if sub == nil || sub.IsLapsed() {
		return nil
	}
	return sub
}

func planName(tier model.Tier) string {
	if tier == "" {
		return FreePlanName
	}
	return string(tier)
}
