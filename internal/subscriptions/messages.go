package subscriptions

import "wedmarket/pkg/model"

type Feature string

const (
	FeatureServices  Feature = "services"
	FeatureFeatured  Feature = "featured"
	FeatureImages    Feature = "images"
	FeatureAnalytics Feature = "analytics"
)

type UpgradeMessage struct {
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	SuggestedTier model.Tier `json:"suggestedTier"`
}

type messageKey struct {
	tier    model.Tier
	feature Feature
}

var upgradeMessages = map[messageKey]UpgradeMessage{
	{model.TierBasic, FeatureServices}: {
		Title:         "Service limit reached",
		Message:       "Upgrade to Premium to list more services and reach more couples.",
		SuggestedTier: model.TierPremium,
	},
	{model.TierBasic, FeatureFeatured}: {
		Title:         "Featured listings",
		Message:       "Upgrade to Premium to feature your services at the top of search results.",
		SuggestedTier: model.TierPremium,
	},
	{model.TierBasic, FeatureImages}: {
		Title:         "Image limit reached",
		Message:       "Upgrade to Premium to add more photos to each service.",
		SuggestedTier: model.TierPremium,
	},
	{model.TierBasic, FeatureAnalytics}: {
		Title:         "Advanced analytics",
		Message:       "Upgrade to Premium to see who views and books your services.",
		SuggestedTier: model.TierPremium,
	},
	{model.TierPremium, FeatureServices}: {
		Title:         "Service limit reached",
		Message:       "Upgrade to Pro for unlimited services.",
		SuggestedTier: model.TierPro,
	},
	{model.TierPremium, FeatureImages}: {
		Title:         "Image limit reached",
		Message:       "Upgrade to Pro for unlimited photos per service.",
		SuggestedTier: model.TierPro,
	},
	{model.TierPremium, FeatureAnalytics}: {
		Title:         "Advanced analytics",
		Message:       "Upgrade to Pro to unlock conversion and revenue analytics.",
		SuggestedTier: model.TierPro,
	},
	{model.TierPro, FeatureServices}: {
		Title:         "Need more capacity?",
		Message:       "Contact us about Enterprise for multi-location vendors.",
		SuggestedTier: model.TierEnterprise,
	},
}

// GetUpgradeMessage looks up the upgrade prompt for a feature the current tier lacks.
// Unknown combinations get a generic prompt.
func GetUpgradeMessage(tier model.Tier, feature Feature) UpgradeMessage {
	if msg, ok := upgradeMessages[messageKey{tier, feature}]; ok {
		return msg
	}
	return UpgradeMessage{
		Title:         "Upgrade required",
		Message:       "Upgrade your plan to unlock this feature.",
		SuggestedTier: NextTier(tier),
	}
}
