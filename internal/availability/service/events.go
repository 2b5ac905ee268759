package service

import (
	"context"
	"time"

	"wedmarket/pkg/kafka"
	"wedmarket/pkg/model"
)

const (
	EventAvailabilityUpdated = "availability.updated"
	EventBookingConfirmed    = "booking.confirmed"
	EventBookingCancelled    = "booking.cancelled"

	EventSource        = "availability-service"
	EventSchemaVersion = "1"

	ActionSet   = "set"
	ActionClear = "clear"
)

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type AvailabilityEvent struct {
	Action        string              `json:"action"`
	VendorID      string              `json:"vendorId"`
	Date          string              `json:"date"`
	IsAvailable   bool                `json:"isAvailable"`
	BookingStatus model.BookingStatus `json:"bookingStatus,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// BookingEvent is the payload of booking.confirmed and booking.cancelled.
type BookingEvent struct {
	BookingID string `json:"bookingId"`
	VendorID  string `json:"vendorId"`
	Date      string `json:"date"`
}

func (s *availabilityService) publish(ctx context.Context, event AvailabilityEvent) {
	if s.publisher == nil {
		return
	}
	msg, err := kafka.NewMessage().
		WithKey(event.VendorID).
		WithValue(event).
		WithEventType(EventAvailabilityUpdated).
		WithSource(EventSource).
		WithSchemaVersion(EventSchemaVersion).
		Build()
	if err != nil {
		s.cfg.Log.Error("Failed to build availability event", "vendor_id", event.VendorID, "date", event.Date, "error", err)
		return
	}
	// The write already committed; a lost event is logged, not surfaced to the caller.
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish availability event",
			"vendor_id", event.VendorID,
			"date", event.Date,
			"action", event.Action,
			"error", err,
		)
	}
}

func eventFor(action string, record *model.AvailabilityRecord) AvailabilityEvent {
	return AvailabilityEvent{
		Action:        action,
		VendorID:      record.VendorID,
		Date:          record.Date,
		IsAvailable:   record.IsAvailable,
		BookingStatus: record.BookingStatus,
		Reason:        record.Reason,
		UpdatedAt:     record.UpdatedAt,
	}
}
