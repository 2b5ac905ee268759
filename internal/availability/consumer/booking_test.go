package consumer

import (
	"context"
	"errors"
	"testing"

	"wedmarket/internal/availability/service"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/kafka"
	"wedmarket/pkg/logger"
)

type mockApplier struct {
	applyFunc func(ctx context.Context, eventType string, event service.BookingEvent) error
	calls     int
}

func (m *mockApplier) ApplyBooking(ctx context.Context, eventType string, event service.BookingEvent) error {
	m.calls++
	if m.applyFunc != nil {
		return m.applyFunc(ctx, eventType, event)
	}
	return nil
}

func bookingMessage(t *testing.T, eventType string, payload any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().WithKey("vendor-1").WithValue(payload).WithEventType(eventType).Build()
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}
	return msg
}

func TestHandle_AppliesBookingEvents(t *testing.T) {
	var gotType string
	var gotEvent service.BookingEvent
	applier := &mockApplier{applyFunc: func(ctx context.Context, eventType string, event service.BookingEvent) error {
		gotType, gotEvent = eventType, event
		return nil
	}}
	h := NewBookingEventHandler(applier, logger.Discard())

	msg := bookingMessage(t, service.EventBookingConfirmed, map[string]string{"bookingId": "b-1", "date": "2025-06-14"})
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotType != service.EventBookingConfirmed {
		t.Errorf("expected %s, got %s", service.EventBookingConfirmed, gotType)
	}
	if gotEvent.VendorID != "vendor-1" {
		t.Errorf("vendor ID should fall back to the message key, got %q", gotEvent.VendorID)
	}
}

func TestHandle_SkipsOtherEvents(t *testing.T) {
	applier := &mockApplier{}
	h := NewBookingEventHandler(applier, logger.Discard())

	if err := h.Handle(context.Background(), bookingMessage(t, "booking.created", map[string]string{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applier.calls != 0 {
		t.Errorf("expected no calls, got %d", applier.calls)
	}
}

func TestHandle_ErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want kafka.ErrorType
	}{
		{"database failure retried", apperrors.Internal("Failed to save availability", errors.New("timeout")), kafka.ErrorTypeTransient},
		{"bad payload dropped", apperrors.InvalidInput("invalid booking event"), kafka.ErrorTypePermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := &mockApplier{applyFunc: func(ctx context.Context, eventType string, event service.BookingEvent) error {
				return tt.err
			}}
			h := NewBookingEventHandler(applier, logger.Discard())

			err := h.Handle(context.Background(), bookingMessage(t, service.EventBookingCancelled, map[string]string{"date": "2025-06-14"}))
			if got := kafka.ClassifyError(err); got != tt.want {
				t.Errorf("expected error type %v, got %v", tt.want, got)
			}
		})
	}

	h := NewBookingEventHandler(&mockApplier{}, logger.Discard())
	bad := kafka.Message{Value: []byte("{"), Headers: map[string]string{kafka.HeaderEventType: service.EventBookingConfirmed}}
	if got := kafka.ClassifyError(h.Handle(context.Background(), bad)); got != kafka.ErrorTypePermanent {
		t.Errorf("undecodable payload should be permanent, got %v", got)
	}
}
