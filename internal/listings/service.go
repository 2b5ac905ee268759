// Package listings implements the vendor-facing service listing flows: resolving the
// vendor, verifying the profile, checking plan limits and calling the services API.
package listings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"wedmarket/internal/listings/validator"
	"wedmarket/internal/subscriptions"
	"wedmarket/internal/vendors/resolver"
	"wedmarket/pkg/client"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/logger"
	"wedmarket/pkg/model"
	"wedmarket/pkg/sanitizer"
)

const (
	StepResolveVendor = "resolve_vendor"
	StepEnsureProfile = "ensure_profile"
	StepValidateInput = "validate_input"
	StepLoadUsage     = "load_usage"
	StepCheckOwner    = "check_owner"
	StepCheckLimits   = "check_limits"
	StepCreateService = "create_service"
	StepUpdateService = "update_service"
	StepToggleStatus  = "toggle_status"
	StepDeleteService = "delete_service"
)

type VendorResolver interface {
	Resolve(ctx context.Context, userID, sessionVendorID string) (*model.VendorIDResolution, error)
}

type ProfileVerifier interface {
	EnsureVendorProfile(ctx context.Context, vendorID, userID string) subscriptions.ProfileCheck
}

type ServicesAPI interface {
	FetchVendorServices(ctx context.Context, vendorID string) (client.Result[[]model.Service], error)
	CreateService(ctx context.Context, vendorID string, input model.ServiceInput) (client.Result[*model.Service], error)
	UpdateService(ctx context.Context, serviceID string, update model.ServiceUpdate) (client.Result[*model.Service], error)
	DeleteService(ctx context.Context, serviceID string) (client.Result[struct{}], error)
	ToggleServiceStatus(ctx context.Context, serviceID string, active bool) (client.Result[*model.Service], error)
}

type SubscriptionSource interface {
	GetVendorSubscription(ctx context.Context, vendorID string) (client.Result[*model.Subscription], error)
}

// Actor identifies who performs a listing operation.
type Actor struct {
	UserID          string
	SessionVendorID string
}

type Result struct {
	Vendor  *model.VendorIDResolution `json:"vendor"`
	Service *model.Service            `json:"service,omitempty"`
	Message string                    `json:"message,omitempty"`
}

type Overview struct {
	Vendor       *model.VendorIDResolution       `json:"vendor"`
	Services     []model.Service                 `json:"services"`
	Subscription *model.Subscription             `json:"subscription,omitempty"`
	Limit        subscriptions.ServiceLimitCheck `json:"limit"`
	CanFeature   bool                            `json:"canFeature"`
}

type Service struct {
	resolver      VendorResolver
	profiles      ProfileVerifier
	services      ServicesAPI
	subscriptions SubscriptionSource
	validator     *validator.ServiceValidator
	log           *logger.Logger
}

func NewService(
	vendors VendorResolver,
	profiles ProfileVerifier,
	services ServicesAPI,
	subs SubscriptionSource,
	v *validator.ServiceValidator,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Discard()
	}
	if v == nil {
		v = validator.NewServiceValidator()
	}
	return &Service{
		resolver:      vendors,
		profiles:      profiles,
		services:      services,
		subscriptions: subs,
		validator:     v,
		log:           log,
	}
}

// flowState is shared by every listing flow; each flow only fills what it needs.
type flowState struct {
	actor     Actor
	serviceID string
	input     model.ServiceInput
	update    model.ServiceUpdate
	active    bool

	vendor       *model.VendorIDResolution
	existing     []model.Service
	target       *model.Service
	subscription *model.Subscription
	limit        subscriptions.ServiceLimitCheck
	result       Result
}

// AddService creates a listing for the acting vendor if the plan allows another one.
func (s *Service) AddService(ctx context.Context, actor Actor, input model.ServiceInput) (*Result, error) {
	st := &flowState{actor: actor, input: input}
	flow := Flow[flowState]{
		Name: "add_service",
		Steps: []Step[flowState]{
			NewStep(StepResolveVendor, s.resolveVendor),
			NewStep(StepEnsureProfile, s.ensureProfile),
			NewStep(StepValidateInput, s.validateInput),
			NewStep(StepLoadUsage, s.loadUsage),
			NewStep(StepCheckLimits, s.checkCreateLimits),
			NewStep(StepCreateService, s.createService),
		},
	}
	if err := flow.Run(ctx, s.log, st); err != nil {
		s.logFailure("add_service", st, err)
		return nil, err
	}

	s.log.Info("Service created",
		"vendor_id", st.vendor.UserFormatID,
		"vendor_source", st.vendor.Source,
		"service_id", serviceID(st.result.Service),
		"service_count", len(st.existing)+1,
	)
	return &st.result, nil
}

// UpdateService applies a partial update. Editing never counts against the service
// limit, but featuring and image limits still apply.
func (s *Service) UpdateService(ctx context.Context, actor Actor, id string, update model.ServiceUpdate) (*Result, error) {
	st := &flowState{actor: actor, serviceID: id, update: update}
	flow := Flow[flowState]{
		Name: "update_service",
		Steps: []Step[flowState]{
			NewStep(StepResolveVendor, s.resolveVendor),
			NewStep(StepValidateInput, s.validateUpdate),
			NewStep(StepLoadUsage, s.loadUsage),
			NewStep(StepCheckOwner, s.checkOwner),
			NewStep(StepCheckLimits, s.checkUpdateLimits),
			NewStep(StepUpdateService, s.updateService),
		},
	}
	if err := flow.Run(ctx, s.log, st); err != nil {
		s.logFailure("update_service", st, err)
		return nil, err
	}

	s.log.Info("Service updated", "vendor_id", st.vendor.UserFormatID, "service_id", id)
	return &st.result, nil
}

func (s *Service) SetFeatured(ctx context.Context, actor Actor, id string, featured bool) (*Result, error) {
	return s.UpdateService(ctx, actor, id, model.ServiceUpdate{Featured: &featured})
}

func (s *Service) ToggleStatus(ctx context.Context, actor Actor, id string, active bool) (*Result, error) {
	st := &flowState{actor: actor, serviceID: id, active: active}
	flow := Flow[flowState]{
		Name: "toggle_status",
		Steps: []Step[flowState]{
			NewStep(StepResolveVendor, s.resolveVendor),
			NewStep(StepLoadUsage, s.loadServices),
			NewStep(StepCheckOwner, s.checkOwner),
			NewStep(StepToggleStatus, s.toggleStatus),
		},
	}
	if err := flow.Run(ctx, s.log, st); err != nil {
		s.logFailure("toggle_status", st, err)
		return nil, err
	}

	s.log.Info("Service status changed", "vendor_id", st.vendor.UserFormatID, "service_id", id, "is_active", active)
	return &st.result, nil
}

func (s *Service) DeleteService(ctx context.Context, actor Actor, id string) (*Result, error) {
	st := &flowState{actor: actor, serviceID: id}
	flow := Flow[flowState]{
		Name: "delete_service",
		Steps: []Step[flowState]{
			NewStep(StepResolveVendor, s.resolveVendor),
			NewStep(StepLoadUsage, s.loadServices),
			NewStep(StepCheckOwner, s.checkOwner),
			NewStep(StepDeleteService, s.deleteService),
		},
	}
	if err := flow.Run(ctx, s.log, st); err != nil {
		s.logFailure("delete_service", st, err)
		return nil, err
	}

	s.log.Info("Service deleted", "vendor_id", st.vendor.UserFormatID, "service_id", id)
	return &st.result, nil
}

// ListServices returns the vendor's services together with the plan usage.
func (s *Service) ListServices(ctx context.Context, actor Actor) (*Overview, error) {
	st := &flowState{actor: actor}
	flow := Flow[flowState]{
		Name: "list_services",
		Steps: []Step[flowState]{
			NewStep(StepResolveVendor, s.resolveVendor),
			NewStep(StepLoadUsage, s.loadUsage),
		},
	}
	if err := flow.Run(ctx, s.log, st); err != nil {
		s.logFailure("list_services", st, err)
		return nil, err
	}

	return &Overview{
		Vendor:       st.vendor,
		Services:     st.existing,
		Subscription: st.subscription,
		Limit:        subscriptions.CheckServiceLimit(st.subscription, len(st.existing), false),
		CanFeature:   subscriptions.CanFeatureService(st.subscription),
	}, nil
}

func (s *Service) resolveVendor(ctx context.Context, st *flowState) error {
	res, err := s.resolver.Resolve(ctx, st.actor.UserID, st.actor.SessionVendorID)
	if err != nil {
		if errors.Is(err, resolver.ErrUnresolved) {
			return apperrors.Unauthorized("Unable to determine your vendor account. Please sign in again.")
		}
		return err
	}
	st.vendor = res
	st.result.Vendor = res
	return nil
}

func (s *Service) ensureProfile(ctx context.Context, st *flowState) error {
	check := s.profiles.EnsureVendorProfile(ctx, st.vendor.UserFormatID, st.actor.UserID)
	if check.Exists {
		return nil
	}
	if check.NotFound {
		return apperrors.New(apperrors.CodeNotFound, check.Error, http.StatusNotFound)
	}
	return apperrors.New(apperrors.CodeUnavailable, check.Error, http.StatusServiceUnavailable)
}

func (s *Service) validateInput(ctx context.Context, st *flowState) error {
	sanitizer.ServiceInput(&st.input)
	return validationError(s.validator.ValidateInput(&st.input))
}

func (s *Service) validateUpdate(ctx context.Context, st *flowState) error {
	if st.serviceID == "" {
		return apperrors.InvalidInput("Service ID cannot be empty")
	}
	sanitizer.ServiceUpdate(&st.update)
	return validationError(s.validator.ValidateUpdate(&st.update))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Service validation failed", verrs.Details())
	}
	return apperrors.Validation("Service validation failed", map[string]any{"error": err.Error()})
}

// loadUsage fetches the vendor's services and subscription concurrently. A failed
// subscription lookup is treated as no subscription, which applies the default limits.
func (s *Service) loadUsage(ctx context.Context, st *flowState) error {
	var (
		wg       sync.WaitGroup
		services client.Result[[]model.Service]
		subRes   client.Result[*model.Subscription]
		svcErr   error
		subErr   error
	)
	vendorID := st.vendor.UserFormatID

	wg.Add(2)
	go func() {
		defer wg.Done()
		services, svcErr = s.services.FetchVendorServices(ctx, vendorID)
	}()
	go func() {
		defer wg.Done()
		subRes, subErr = s.subscriptions.GetVendorSubscription(ctx, vendorID)
	}()
	wg.Wait()

	if svcErr != nil {
		return svcErr
	}
	if subErr != nil {
		s.log.Warn("Failed to load subscription, applying default limits",
			"vendor_id", vendorID,
			"error", subErr,
		)
	}
	st.existing = services.Data
	st.subscription = subRes.Data
	return nil
}

func (s *Service) loadServices(ctx context.Context, st *flowState) error {
	res, err := s.services.FetchVendorServices(ctx, st.vendor.UserFormatID)
	if err != nil {
		return err
	}
	st.existing = res.Data
	return nil
}

func (s *Service) checkOwner(ctx context.Context, st *flowState) error {
	if st.serviceID == "" {
		return apperrors.InvalidInput("Service ID cannot be empty")
	}
	for i := range st.existing {
		if st.existing[i].ID == st.serviceID {
			st.target = &st.existing[i]
			return nil
		}
	}
	return apperrors.NotFoundWithID("Service", st.serviceID)
}

func (s *Service) checkCreateLimits(ctx context.Context, st *flowState) error {
	st.limit = subscriptions.CheckServiceLimit(st.subscription, len(st.existing), false)
	if !st.limit.Allowed {
		upgrade := subscriptions.GetUpgradeMessage(st.limit.CurrentTier, subscriptions.FeatureServices)
		return apperrors.UpgradeRequired(st.limit.Message, map[string]any{
			"feature":        subscriptions.FeatureServices,
			"current_count":  st.limit.CurrentCount,
			"max_services":   st.limit.MaxServices,
			"suggested_tier": st.limit.SuggestedTier,
			"upgrade":        upgrade,
		})
	}
	if err := s.checkImages(st, len(st.input.Images)); err != nil {
		return err
	}
	if st.input.Featured {
		return s.checkFeature(st)
	}
	return nil
}

func (s *Service) checkUpdateLimits(ctx context.Context, st *flowState) error {
	st.limit = subscriptions.CheckServiceLimit(st.subscription, len(st.existing), true)
	if st.update.Images != nil {
		if err := s.checkImages(st, len(*st.update.Images)); err != nil {
			return err
		}
	}
	if st.update.Featured != nil && *st.update.Featured && !st.target.Featured {
		return s.checkFeature(st)
	}
	return nil
}

func (s *Service) checkImages(st *flowState, count int) error {
	check := subscriptions.CheckImageLimit(st.subscription, count)
	if check.Allowed {
		return nil
	}
	tier := currentTier(st.subscription)
	upgrade := subscriptions.GetUpgradeMessage(tier, subscriptions.FeatureImages)
	return apperrors.UpgradeRequired(
		fmt.Sprintf("Your plan allows up to %d images per service.", check.MaxImages),
		map[string]any{
			"feature":        subscriptions.FeatureImages,
			"image_count":    check.Count,
			"max_images":     check.MaxImages,
			"suggested_tier": upgrade.SuggestedTier,
			"upgrade":        upgrade,
		},
	)
}

func (s *Service) checkFeature(st *flowState) error {
	if subscriptions.CanFeatureService(st.subscription) {
		return nil
	}
	upgrade := subscriptions.GetUpgradeMessage(currentTier(st.subscription), subscriptions.FeatureFeatured)
	return apperrors.UpgradeRequired(upgrade.Message, map[string]any{
		"feature":        subscriptions.FeatureFeatured,
		"suggested_tier": upgrade.SuggestedTier,
		"upgrade":        upgrade,
	})
}

func (s *Service) createService(ctx context.Context, st *flowState) error {
	res, err := s.services.CreateService(ctx, st.vendor.UserFormatID, st.input)
	if err != nil {
		return err
	}
	st.result.Service = res.Data
	st.result.Message = res.Message
	return nil
}

func (s *Service) updateService(ctx context.Context, st *flowState) error {
	res, err := s.services.UpdateService(ctx, st.serviceID, st.update)
	if err != nil {
		return err
	}
	st.result.Service = res.Data
	st.result.Message = res.Message
	return nil
}

func (s *Service) toggleStatus(ctx context.Context, st *flowState) error {
	res, err := s.services.ToggleServiceStatus(ctx, st.serviceID, st.active)
	if err != nil {
		return err
	}
	st.result.Service = res.Data
	st.result.Message = res.Message
	return nil
}

func (s *Service) deleteService(ctx context.Context, st *flowState) error {
	res, err := s.services.DeleteService(ctx, st.serviceID)
	if err != nil {
		return err
	}
	st.result.Service = st.target
	st.result.Message = res.Message
	return nil
}

func (s *Service) logFailure(flow string, st *flowState, err error) {
	appErr := apperrors.AsAppError(err)
	attrs := []any{
		"flow", flow,
		"user_id", st.actor.UserID,
		"code", appErr.Code,
		"error", err,
	}
	if st.vendor != nil {
		attrs = append(attrs, "vendor_id", st.vendor.UserFormatID)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		s.log.Error("Listing flow failed", attrs...)
		return
	}
	s.log.Warn("Listing flow rejected", attrs...)
}

func currentTier(sub *model.Subscription) model.Tier {
	if sub == nil || sub.IsLapsed() {
		return ""
	}
	return sub.Plan.Tier
}

func serviceID(svc *model.Service) string {
	if svc == nil {
		return ""
	}
	return svc.ID
}
