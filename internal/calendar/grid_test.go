package calendar

import (
	"testing"
	"time"

	"wedmarket/pkg/dates"
	"wedmarket/pkg/model"
)

// fixedNow is a mid-morning instant early in May 2025 so that June 2025 lies entirely in
// the future.
var fixedNow = time.Date(2025, time.May, 3, 10, 0, 0, 0, time.UTC)

func TestBuildMonthGrid_AlwaysFortyTwoCells(t *testing.T) {
	for year := 2024; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			days := BuildMonthGrid(GridInput{Year: year, Month: month, Now: fixedNow, Location: time.UTC})
			if len(days) != GridCells {
				t.Fatalf("%d-%02d: got %d cells, want %d", year, month, len(days), GridCells)
			}

			inMonth := 0
			for _, d := range days {
				if d.IsCurrentMonth {
					inMonth++
				}
			}
			if want := dates.DaysInMonth(year, month); inMonth != want {
				t.Errorf("%d-%02d: %d current-month cells, want %d", year, month, inMonth, want)
			}

			first, err := dates.Parse(days[0].Date, time.UTC)
			if err != nil {
				t.Fatal(err)
			}
			if first.Weekday() != time.Sunday {
				t.Errorf("%d-%02d: grid starts on %s, want Sunday", year, month, first.Weekday())
			}
		}
	}
}

func TestBuildMonthGrid_LayoutOfJune2025(t *testing.T) {
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, Now: fixedNow, Location: time.UTC})

	// June 1st 2025 is a Sunday, so there are no trailing May days.
	if days[0].Date != "2025-06-01" || !days[0].IsCurrentMonth {
		t.Errorf("first cell = %+v, want 2025-06-01 in month", days[0])
	}
	if days[29].Date != "2025-06-30" {
		t.Errorf("cell 29 = %s, want 2025-06-30", days[29].Date)
	}
	if days[30].Date != "2025-07-01" || days[30].IsCurrentMonth {
		t.Errorf("cell 30 = %+v, want 2025-07-01 outside month", days[30])
	}
	if days[41].Date != "2025-07-12" {
		t.Errorf("last cell = %s, want 2025-07-12", days[41].Date)
	}
}

func TestBuildMonthGrid_TrailingDaysOfPreviousMonth(t *testing.T) {
	// March 1st 2025 is a Saturday.
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.March, Now: fixedNow, Location: time.UTC})

	if days[0].Date != "2025-02-23" {
		t.Errorf("first cell = %s, want 2025-02-23", days[0].Date)
	}
	if days[6].Date != "2025-03-01" || days[6].DayOfMonth != 1 {
		t.Errorf("cell 6 = %+v, want March 1st", days[6])
	}
}

func TestBuildMonthGrid_DisabledCoversPastAndOtherMonths(t *testing.T) {
	now := time.Date(2025, time.June, 15, 18, 30, 0, 0, time.UTC)
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, Now: now, Location: time.UTC})

	for _, d := range days {
		if d.IsPast && !d.IsDisabled {
			t.Errorf("%s is past but not disabled", d.Date)
		}
		if !d.IsCurrentMonth && !d.IsDisabled {
			t.Errorf("%s is outside the month but not disabled", d.Date)
		}
	}

	today, _ := FindDay(days, "2025-06-15")
	if today.IsPast || today.IsDisabled || !today.IsToday {
		t.Errorf("today cell = %+v, want enabled and today", today)
	}
	yesterday, _ := FindDay(days, "2025-06-14")
	if !yesterday.IsPast || !yesterday.IsDisabled {
		t.Errorf("yesterday cell = %+v, want past and disabled", yesterday)
	}
}

func TestBuildMonthGrid_MinMaxBounds(t *testing.T) {
	days := BuildMonthGrid(GridInput{
		Year:     2025,
		Month:    time.June,
		MinDate:  "2025-06-10",
		MaxDate:  "2025-06-20",
		Now:      fixedNow,
		Location: time.UTC,
	})

	tests := []struct {
		date     string
		disabled bool
	}{
		{"2025-06-09", true},
		{"2025-06-10", false},
		{"2025-06-15", false},
		{"2025-06-20", false},
		{"2025-06-21", true},
	}
	for _, tt := range tests {
		d, ok := FindDay(days, tt.date)
		if !ok {
			t.Fatalf("%s missing from grid", tt.date)
		}
		if d.IsDisabled != tt.disabled {
			t.Errorf("%s disabled = %v, want %v", tt.date, d.IsDisabled, tt.disabled)
		}
	}
}

func TestBuildMonthGrid_SelectedExactlyOnce(t *testing.T) {
	tests := []struct {
		name     string
		selected string
	}{
		{"current month day", "2025-06-18"},
		{"adjacent month cell", "2025-07-05"},
		{"past day", "2025-06-02"},
	}

	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, SelectedDate: tt.selected, Now: now, Location: time.UTC})
			count := 0
			for _, d := range days {
				if d.IsSelected {
					count++
					if d.Date != tt.selected {
						t.Errorf("selected cell is %s, want %s", d.Date, tt.selected)
					}
				}
			}
			if count != 1 {
				t.Errorf("%d selected cells, want 1", count)
			}
		})
	}

	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, SelectedDate: "2025-09-01", Now: now, Location: time.UTC})
	for _, d := range days {
		if d.IsSelected {
			t.Errorf("no cell should be selected for a date outside the grid, got %s", d.Date)
		}
	}
}

func TestBuildMonthGrid_TodayOnlyInCurrentMonth(t *testing.T) {
	// July 1st is visible as a trailing cell of the June grid.
	now := time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC)
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, Now: now, Location: time.UTC})

	for _, d := range days {
		if d.IsToday {
			t.Errorf("%s marked today in a grid whose month does not contain today", d.Date)
		}
	}
}

func TestBuildMonthGrid_UsesGridLocationForToday(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	// 03:00 UTC on the 16th is still the evening of the 15th at UTC-7.
	now := time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC)
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, Now: now, Location: loc})

	d, _ := FindDay(days, "2025-06-15")
	if !d.IsToday || d.IsPast {
		t.Errorf("2025-06-15 = %+v, want today in UTC-7", d)
	}
}

func TestBuildMonthGrid_AttachesAvailability(t *testing.T) {
	avail := model.AvailabilityMap{
		"2025-06-14": {Date: "2025-06-14", IsAvailable: false, BookingStatus: model.BookingStatusBooked},
		"2025-06-21": {Date: "2025-06-21", IsAvailable: true, BookingStatus: model.BookingStatusTentative},
	}
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.June, Availability: avail, Now: fixedNow, Location: time.UTC})

	booked, _ := FindDay(days, "2025-06-14")
	if booked.Availability == nil || booked.Availability.IsAvailable {
		t.Errorf("2025-06-14 availability = %+v, want booked", booked.Availability)
	}
	if Selectable(booked) {
		t.Error("booked day must not be selectable")
	}

	free, _ := FindDay(days, "2025-06-15")
	if free.Availability != nil {
		t.Errorf("2025-06-15 should have no availability record, got %+v", free.Availability)
	}
	if !Selectable(free) {
		t.Error("day without a record should be selectable")
	}

	tentative, _ := FindDay(days, "2025-06-21")
	if !Selectable(tentative) {
		t.Error("available tentative day should be selectable")
	}
}

func TestBuildMonthGrid_NilAvailabilityNeverFails(t *testing.T) {
	days := BuildMonthGrid(GridInput{Year: 2025, Month: time.February})
	if len(days) != GridCells {
		t.Fatalf("got %d cells", len(days))
	}
}
