package model

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func newTestValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return v
}

func floatPtr(f float64) *float64 { return &f }

func TestServiceInput_Validation(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		input       ServiceInput
		expectValid bool
	}{
		{
			name:        "valid service",
			input:       ServiceInput{Name: "Full day photography", Category: "photography", Price: floatPtr(1500)},
			expectValid: true,
		},
		{
			name:        "missing name",
			input:       ServiceInput{Category: "photography"},
			expectValid: false,
		},
		{
			name:        "missing category",
			input:       ServiceInput{Name: "DJ set"},
			expectValid: false,
		},
		{
			name:        "negative price",
			input:       ServiceInput{Name: "DJ set", Category: "music", Price: floatPtr(-1)},
			expectValid: false,
		},
		{
			name:        "inverted price range",
			input:       ServiceInput{Name: "DJ set", Category: "music", PriceRange: &PriceRange{Min: 500, Max: 100}},
			expectValid: false,
		},
		{
			name:        "invalid image url",
			input:       ServiceInput{Name: "DJ set", Category: "music", Images: []string{"not a url"}},
			expectValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.expectValid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.expectValid && err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestAvailabilityRecord_Validation(t *testing.T) {
	v := newTestValidator()

	valid := AvailabilityRecord{Date: "2025-06-14", VendorID: "v1", BookingStatus: BookingStatusBooked}
	if err := v.Struct(valid); err != nil {
		t.Errorf("expected valid record, got %v", err)
	}

	badDate := valid
	badDate.Date = "14/06/2025"
	if err := v.Struct(badDate); err == nil {
		t.Error("expected error for non-ISO date")
	}

	badStatus := valid
	badStatus.BookingStatus = "maybe"
	if err := v.Struct(badStatus); err == nil {
		t.Error("expected error for unknown booking status")
	}
}

func TestAvailabilityMap_Lookup(t *testing.T) {
	m := AvailabilityMap{
		"2025-06-14": {Date: "2025-06-14", IsAvailable: false, BookingStatus: BookingStatusBooked},
	}

	if rec := m.Lookup("2025-06-14"); rec == nil || rec.IsAvailable {
		t.Errorf("Lookup() = %+v, want booked record", rec)
	}
	if rec := m.Lookup("2025-06-15"); rec != nil {
		t.Errorf("Lookup() for missing day = %+v, want nil", rec)
	}
	if m.IsAvailable("2025-06-14") {
		t.Error("booked day should not be available")
	}
	if !m.IsAvailable("2025-06-15") {
		t.Error("day without a record should be available")
	}
}

func TestSubscription_IsLapsed(t *testing.T) {
	tests := []struct {
		status SubscriptionStatus
		want   bool
	}{
		{SubscriptionActive, false},
		{"", false},
		{SubscriptionInactive, true},
		{SubscriptionCancelled, true},
		{SubscriptionExpired, true},
	}
	for _, tt := range tests {
		sub := &Subscription{Status: tt.status}
		if got := sub.IsLapsed(); got != tt.want {
			t.Errorf("IsLapsed(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestVendorIDResolution_PreferredID(t *testing.T) {
	r := &VendorIDResolution{UserFormatID: "user-1", Source: SourceUser}
	if r.PreferredID() != "user-1" {
		t.Errorf("PreferredID() = %s, want user-1", r.PreferredID())
	}
	r.ProfileID = "9b2f3c1e-4d5a-4e6f-8a7b-1c2d3e4f5a6b"
	if r.PreferredID() != r.ProfileID {
		t.Errorf("PreferredID() = %s, want profile id", r.PreferredID())
	}
}
