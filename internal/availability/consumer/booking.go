// Package consumer keeps availability in step with booking lifecycle events.
package consumer

import (
	"context"

	"wedmarket/internal/availability/service"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/kafka"
	"wedmarket/pkg/logger"
)

type BookingApplier interface {
	ApplyBooking(ctx context.Context, eventType string, event service.BookingEvent) error
}

type BookingEventHandler struct {
	applier BookingApplier
	log     *logger.Logger
}

func NewBookingEventHandler(applier BookingApplier, log *logger.Logger) *BookingEventHandler {
	return &BookingEventHandler{applier: applier, log: log}
}

// Handle is a kafka.MessageHandler. Event types other than booking.confirmed and
// booking.cancelled share the topic and are skipped.
func (h *BookingEventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.EventType()
	if eventType != service.EventBookingConfirmed && eventType != service.EventBookingCancelled {
		h.log.Debug("Skipping booking event", "event_type", eventType, "event_id", msg.EventID())
		return nil
	}

	var event service.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}
	if event.VendorID == "" {
		event.VendorID = msg.Key
	}

	err := h.applier.ApplyBooking(ctx, eventType, event)
	if err == nil {
		return nil
	}

	appErr := apperrors.AsAppError(err)
	switch appErr.Code {
	case apperrors.CodeInternal, apperrors.CodeTimeout, apperrors.CodeUnavailable:
		return kafka.NewTransientError("failed to apply booking event", err)
	default:
		return kafka.NewPermanentError("rejected booking event", err)
	}
}
