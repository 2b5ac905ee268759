package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	availabilityerrors "wedmarket/internal/availability/errors"
	"wedmarket/internal/availability/repository"
	"wedmarket/internal/availability/validator"
	"wedmarket/internal/calendar"
	"wedmarket/pkg/config"
	"wedmarket/pkg/dates"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type AvailabilityService interface {
	GetRange(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error)
	SetDate(ctx context.Context, vendorID, date string, update *model.AvailabilityUpdate) (*model.AvailabilityRecord, error)
	ClearDate(ctx context.Context, vendorID, date string) error
	MonthView(ctx context.Context, vendorID string, req MonthRequest) (*MonthView, error)
	ApplyBooking(ctx context.Context, eventType string, event BookingEvent) error
}

type MonthRequest struct {
	Month    string // YYYY-MM, empty for the current month
	Selected string
	MinDate  string
	MaxDate  string
}

type MonthView struct {
	VendorID     string                `json:"vendorId"`
	Month        string                `json:"month"`
	Weekdays     []string              `json:"weekdays"`
	Days         []calendar.Day        `json:"days"`
	Availability model.AvailabilityMap `json:"availability"`
}

type availabilityService struct {
	repo      repository.AvailabilityRepository
	validator *validator.AvailabilityValidator
	publisher EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

// NewAvailabilityService wires the service. A nil publisher disables events.
func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	validator *validator.AvailabilityValidator,
	publisher EventPublisher,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *availabilityService) GetRange(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}
	if err := s.checkRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.loadRange(ctx, vendorID, startDate, endDate)
}

// loadRange reads stored records without the client-facing span cap.
func (s *availabilityService) loadRange(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
	records, err := s.repo.FindRange(ctx, vendorID, startDate, endDate)
	if err != nil {
		s.cfg.Log.Error("Failed to load availability range",
			"vendor_id", vendorID,
			"start_date", startDate,
			"end_date", endDate,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}

	out := make(model.AvailabilityMap, len(records))
	for _, rec := range records {
		out[rec.Date] = *rec
	}
	return out, nil
}

func (s *availabilityService) checkRange(startDate, endDate string) error {
	span, err := dates.DaysBetween(startDate, endDate)
	if err != nil {
		return apperrors.InvalidInput(availabilityerrors.ErrInvalidDate.Error())
	}
	if span < 0 {
		return apperrors.InvalidInput(availabilityerrors.ErrInvalidRange.Error())
	}
	if span > s.cfg.MaxRangeDays {
		return apperrors.InvalidInput(fmt.Sprintf("%s of %d days", availabilityerrors.ErrRangeTooLarge.Error(), s.cfg.MaxRangeDays))
	}
	return nil
}

func (s *availabilityService) SetDate(ctx context.Context, vendorID, date string, update *model.AvailabilityUpdate) (*model.AvailabilityRecord, error) {
	if update == nil || update.IsAvailable == nil {
		return nil, apperrors.Validation("Invalid availability update", map[string]any{
			"fields": map[string]string{"isAvailable": "is required"},
		})
	}
	update.Reason = strings.TrimSpace(update.Reason)
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, validationError(err)
	}

	record := &model.AvailabilityRecord{
		Date:          date,
		VendorID:      strings.TrimSpace(vendorID),
		IsAvailable:   *update.IsAvailable,
		BookingStatus: defaultStatus(*update.IsAvailable, update.BookingStatus),
		Reason:        update.Reason,
	}
	if err := s.validator.ValidateRecord(record); err != nil {
		return nil, validationError(err)
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		s.cfg.Log.Error("Failed to save availability", "vendor_id", record.VendorID, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to save availability", err)
	}

	s.cfg.Log.Info("Availability updated",
		"vendor_id", record.VendorID,
		"date", record.Date,
		"is_available", record.IsAvailable,
		"booking_status", record.BookingStatus,
	)
	s.publish(ctx, eventFor(ActionSet, record))
	return record, nil
}

func (s *availabilityService) ClearDate(ctx context.Context, vendorID, date string) error {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return apperrors.InvalidInput("Vendor ID cannot be empty")
	}
	if !dates.IsISODate(date) {
		return apperrors.InvalidInput(availabilityerrors.ErrInvalidDate.Error())
	}

	if err := s.repo.Delete(ctx, vendorID, date); err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Availability record", vendorID+"/"+date)
		}
		s.cfg.Log.Error("Failed to clear availability", "vendor_id", vendorID, "date", date, "error", err)
		return apperrors.Internal("Failed to clear availability", err)
	}

	s.cfg.Log.Info("Availability cleared", "vendor_id", vendorID, "date", date)
	s.publish(ctx, AvailabilityEvent{
		Action:      ActionClear,
		VendorID:    vendorID,
		Date:        date,
		IsAvailable: true,
		UpdatedAt:   s.now().UTC(),
	})
	return nil
}

// MonthView builds the 42-cell grid of one month from the stored records.
func (s *availabilityService) MonthView(ctx context.Context, vendorID string, req MonthRequest) (*MonthView, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}

	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := s.now().In(loc)

	month := dates.FirstOfMonth(now.Year(), now.Month(), loc)
	if req.Month != "" {
		parsed, err := dates.ParseMonth(req.Month, loc)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid month parameter, must be YYYY-MM: " + req.Month)
		}
		month = parsed
	} else if req.Selected != "" {
		if selected, err := dates.Parse(req.Selected, loc); err == nil {
			month = dates.FirstOfMonth(selected.Year(), selected.Month(), loc)
		}
	}

	// The grid spans up to six days either side of the month.
	first := month.AddDate(0, 0, -int(month.Weekday()))
	last := first.AddDate(0, 0, calendar.GridCells-1)
	availability, err := s.loadRange(ctx, vendorID, dates.Format(first), dates.Format(last))
	if err != nil {
		return nil, err
	}

	days := calendar.BuildMonthGrid(calendar.GridInput{
		Year:         month.Year(),
		Month:        month.Month(),
		SelectedDate: req.Selected,
		MinDate:      req.MinDate,
		MaxDate:      req.MaxDate,
		Availability: availability,
		Now:          now,
		Location:     loc,
	})

	return &MonthView{
		VendorID:     strings.TrimSpace(vendorID),
		Month:        dates.FormatMonth(month),
		Weekdays:     calendar.WeekdayHeaders[:],
		Days:         days,
		Availability: availability,
	}, nil
}

// ApplyBooking mirrors booking lifecycle events onto the calendar. A confirmation marks
// the day booked; a cancellation frees it only if it is still marked booked, so days the
// vendor blocked by hand stay blocked.
func (s *availabilityService) ApplyBooking(ctx context.Context, eventType string, event BookingEvent) error {
	if strings.TrimSpace(event.VendorID) == "" || !dates.IsISODate(event.Date) {
		return apperrors.InvalidInput(fmt.Sprintf("invalid booking event: vendor %q date %q", event.VendorID, event.Date))
	}

	var record *model.AvailabilityRecord
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		record = nil
		existing, err := s.repo.FindByDate(sessCtx, event.VendorID, event.Date)
		if err != nil && !errors.Is(err, availabilityerrors.ErrNotFound) {
			return apperrors.Internal("Failed to load availability", err)
		}

		switch eventType {
		case EventBookingConfirmed:
			record = &model.AvailabilityRecord{
				VendorID:      event.VendorID,
				Date:          event.Date,
				IsAvailable:   false,
				BookingStatus: model.BookingStatusBooked,
				Reason:        bookingReason(event.BookingID),
			}
		case EventBookingCancelled:
			if existing == nil || existing.BookingStatus != model.BookingStatusBooked {
				return nil
			}
			record = &model.AvailabilityRecord{
				VendorID:      event.VendorID,
				Date:          event.Date,
				IsAvailable:   true,
				BookingStatus: model.BookingStatusAvailable,
			}
		default:
			return apperrors.InvalidInput("unsupported booking event type: " + eventType)
		}

		if err := s.repo.Upsert(sessCtx, record); err != nil {
			return apperrors.Internal("Failed to save availability", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if record == nil {
		s.cfg.Log.Debug("Booking event left availability unchanged",
			"event_type", eventType,
			"vendor_id", event.VendorID,
			"date", event.Date,
		)
		return nil
	}

	s.cfg.Log.Info("Availability updated from booking",
		"event_type", eventType,
		"booking_id", event.BookingID,
		"vendor_id", event.VendorID,
		"date", event.Date,
	)
	s.publish(ctx, eventFor(ActionSet, record))
	return nil
}

func bookingReason(bookingID string) string {
	if bookingID == "" {
		return "Booked"
	}
	return "Booking " + bookingID
}

// defaultStatus fills a missing booking status from the availability flag.
func defaultStatus(isAvailable bool, status model.BookingStatus) model.BookingStatus {
	if status != "" {
		return status
	}
	if isAvailable {
		return model.BookingStatusAvailable
	}
	return model.BookingStatusBlocked
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid availability update", verrs.Details())
	}
	return apperrors.Validation("Invalid availability update", map[string]any{"error": err.Error()})
}
