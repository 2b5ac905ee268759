// Package calendar builds availability-aware month grids and drives month navigation
// for a single vendor.
package calendar

import (
	"time"

	"wedmarket/pkg/dates"
	"wedmarket/pkg/model"
)

const (
	DaysPerWeek = 7
	GridWeeks   = 6
	GridCells   = DaysPerWeek * GridWeeks
)

// WeekdayHeaders lists the column headers of the grid, Sunday first.
var WeekdayHeaders = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Day struct {
	Date           string                    `json:"date"`
	DayOfMonth     int                       `json:"dayOfMonth"`
	IsCurrentMonth bool                      `json:"isCurrentMonth"`
	IsToday        bool                      `json:"isToday"`
	IsSelected     bool                      `json:"isSelected"`
	IsDisabled     bool                      `json:"isDisabled"`
	IsPast         bool                      `json:"isPast"`
	Availability   *model.AvailabilityRecord `json:"availability,omitempty"`
}

// Selectable reports whether choosing the day should reach the host: it must be enabled
// and not explicitly marked unavailable. Days without a record count as available.
func Selectable(day Day) bool {
	return !day.IsDisabled && (day.Availability == nil || day.Availability.IsAvailable)
}

type GridInput struct {
	Year         int
	Month        time.Month
	SelectedDate string
	MinDate      string
	MaxDate      string
	Availability model.AvailabilityMap
	Now          time.Time
	Location     *time.Location
}

// BuildMonthGrid returns the 42 cells of the month view: trailing days of the previous
// month, every day of the month, then leading days of the next month.
func BuildMonthGrid(in GridInput) []Day {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := dates.StartOfDay(now.In(loc))
	todayISO := dates.Format(today)

	first := dates.FirstOfMonth(in.Year, in.Month, loc)
	// The first cell is the Sunday on or before the 1st.
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]Day, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		iso := dates.Format(d)
		inMonth := d.Year() == first.Year() && d.Month() == first.Month()
		isPast := d.Before(today)

		days = append(days, Day{
			Date:           iso,
			DayOfMonth:     d.Day(),
			IsCurrentMonth: inMonth,
			IsToday:        inMonth && iso == todayISO,
			IsSelected:     in.SelectedDate != "" && iso == in.SelectedDate,
			IsPast:         isPast,
			IsDisabled:     !inMonth || isPast || outOfBounds(iso, in.MinDate, in.MaxDate),
			Availability:   in.Availability.Lookup(iso),
		})
	}
	return days
}

func outOfBounds(iso, minDate, maxDate string) bool {
	if minDate != "" && dates.Before(iso, minDate) {
		return true
	}
	if maxDate != "" && dates.After(iso, maxDate) {
		return true
	}
	return false
}

// FindDay returns the cell holding date, if the grid contains it.
func FindDay(days []Day, date string) (Day, bool) {
	for _, d := range days {
		if d.Date == date {
			return d, true
		}
	}
	return Day{}, false
}
