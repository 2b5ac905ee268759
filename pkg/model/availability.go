package model

import "time"

type BookingStatus string

const (
	BookingStatusAvailable BookingStatus = "available"
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusBlocked   BookingStatus = "blocked"
	BookingStatusTentative BookingStatus = "tentative"
)

// AvailabilityRecord is a vendor's booking state for one calendar day. Date is an ISO
// "YYYY-MM-DD" string and, together with VendorID, identifies the record.
type AvailabilityRecord struct {
	ID            string        `json:"-" bson:"_id,omitempty"`
	Date          string        `json:"date" bson:"date" validate:"required,iso_date"`
	VendorID      string        `json:"vendorId" bson:"vendor_id" validate:"required,min=1,max=100"`
	IsAvailable   bool          `json:"isAvailable" bson:"is_available"`
	BookingStatus BookingStatus `json:"bookingStatus,omitempty" bson:"booking_status" validate:"omitempty,oneof=available booked blocked tentative"`
	Reason        string        `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=500"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updated_at"`
}

type AvailabilityUpdate struct {
	IsAvailable   *bool         `json:"isAvailable" validate:"required"`
	BookingStatus BookingStatus `json:"bookingStatus,omitempty" validate:"omitempty,oneof=available booked blocked tentative"`
	Reason        string        `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// AvailabilityMap holds the records of one vendor keyed by ISO date. Dates with no
// record are considered available.
type AvailabilityMap map[string]AvailabilityRecord

func (m AvailabilityMap) Lookup(date string) *AvailabilityRecord {
	rec, ok := m[date]
	if !ok {
		return nil
	}
	return &rec
}

func (m AvailabilityMap) IsAvailable(date string) bool {
	rec, ok := m[date]
	return !ok || rec.IsAvailable
}
