package cli

import (
	"context"
	"fmt"
	"strings"

	"wedmarket/internal/calendar"
	"wedmarket/pkg/dates"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/model"

	"github.com/spf13/cobra"
)

type calendarOutput struct {
	VendorID     string                `json:"vendorId"`
	Month        string                `json:"month"`
	SelectedDate string                `json:"selectedDate,omitempty"`
	Weekdays     []string              `json:"weekdays"`
	Days         []calendar.Day        `json:"days"`
	Availability model.AvailabilityMap `json:"availability"`
	Error        string                `json:"error,omitempty"`
}

type calendarFlags struct {
	month    string
	selected string
	minDate  string
	maxDate  string
	pick     string
}

func calendarCmd(app *App) *cobra.Command {
	var flags calendarFlags

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the availability calendar of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			vendorID, err := app.vendorID(cmd.Context())
			if err != nil {
				return err
			}
			out, err := loadCalendar(cmd.Context(), app, vendorID, flags)
			if err != nil {
				return err
			}
			if app.outputJSON {
				return writeJSON(app.Out, out)
			}
			renderCalendar(app, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.month, "month", "", "Month to show (YYYY-MM, default: selected or current month)")
	cmd.Flags().StringVar(&flags.selected, "selected", "", "Currently selected date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.minDate, "min", "", "Earliest selectable date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.maxDate, "max", "", "Latest selectable date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.pick, "select", "", "Select a date in the shown month (YYYY-MM-DD)")

	cmd.AddCommand(calendarSetCmd(app))
	cmd.AddCommand(calendarClearCmd(app))
	return cmd
}

func (f calendarFlags) validate() error {
	if f.month != "" {
		if _, err := dates.ParseMonth(f.month, nil); err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("invalid month %q (expected YYYY-MM)", f.month))
		}
	}
	named := []struct{ flag, value string }{
		{"--selected", f.selected},
		{"--min", f.minDate},
		{"--max", f.maxDate},
		{"--select", f.pick},
	}
	for _, n := range named {
		if n.value != "" && !dates.IsISODate(n.value) {
			return apperrors.InvalidInput(fmt.Sprintf("invalid %s %q (expected YYYY-MM-DD)", n.flag, n.value))
		}
	}
	return nil
}

// loadCalendar mounts a calendar for one month, waits for its availability and applies
// --select the way a click would.
func loadCalendar(ctx context.Context, app *App, vendorID string, flags calendarFlags) (*calendarOutput, error) {
	selected := flags.selected
	cal := calendar.New(app.Availability, calendar.Options{
		VendorID:     vendorID,
		SelectedDate: selected,
		MinDate:      flags.minDate,
		MaxDate:      flags.maxDate,
		OnDateSelect: func(date string) { selected = date },
		Location:     app.Location,
		Now:          app.Now,
		FetchTimeout: app.FetchTimeout,
		Log:          app.Log,
	})
	defer cal.Close()

	cal.Start(ctx)
	if flags.month != "" {
		month, _ := dates.ParseMonth(flags.month, app.Location)
		cal.ShowMonth(month.Year(), month.Month())
	}
	cal.Wait()

	if flags.pick != "" {
		if !cal.Select(flags.pick) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("%s cannot be selected", flags.pick))
		}
		cal.SetSelectedDate(selected)
	}

	snap := cal.Snapshot()
	return &calendarOutput{
		VendorID:     snap.VendorID,
		Month:        dates.FormatMonth(dates.FirstOfMonth(snap.Year, snap.Month, app.Location)),
		SelectedDate: snap.SelectedDate,
		Weekdays:     calendar.WeekdayHeaders[:],
		Days:         snap.Days,
		Availability: snap.Availability,
		Error:        snap.Error,
	}, nil
}

func renderCalendar(app *App, out *calendarOutput) {
	title := out.Month
	if month, err := dates.ParseMonth(out.Month, app.Location); err == nil {
		title = month.Format("January 2006")
	}
	app.printf("%s  %s\n", app.paint(ansiBold, title), app.paint(ansiDim, "vendor "+out.VendorID))
	if out.Error != "" {
		app.printf("%s\n", app.paint(ansiYellow, out.Error))
	}

	headers := make([]string, len(out.Weekdays))
	for i, h := range out.Weekdays {
		headers[i] = fmt.Sprintf("%4s", h)
	}
	app.printf("%s\n", strings.Join(headers, " "))

	for week := 0; week < calendar.GridWeeks; week++ {
		cells := make([]string, 0, calendar.DaysPerWeek)
		for _, day := range out.Days[week*calendar.DaysPerWeek : (week+1)*calendar.DaysPerWeek] {
			cells = append(cells, renderDay(app, day))
		}
		app.printf("%s\n", strings.Join(cells, " "))
	}

	app.printf("%s\n", app.paint(ansiDim, "* selected  x unavailable  - not selectable"))
	if out.SelectedDate != "" {
		app.printf("Selected: %s\n", out.SelectedDate)
	}
}

// renderDay formats one cell as four columns: the day number and a marker.
func renderDay(app *App, day calendar.Day) string {
	if !day.IsCurrentMonth {
		return app.paint(ansiDim, fmt.Sprintf("%3d ", day.DayOfMonth))
	}

	marker := " "
	code := ""
	switch {
	case day.IsSelected:
		marker, code = "*", ansiReverse
	case day.Availability != nil && !day.Availability.IsAvailable:
		marker, code = "x", ansiRed
	case day.IsDisabled:
		marker, code = "-", ansiDim
	case day.Availability != nil:
		code = ansiGreen
	}
	if day.IsToday {
		code += ansiBold
	}

	cell := fmt.Sprintf("%3d%s", day.DayOfMonth, marker)
	if code == "" {
		return cell
	}
	return app.paint(code, cell)
}

func calendarSetCmd(app *App) *cobra.Command {
	var unavailable bool
	var status string
	var reason string

	cmd := &cobra.Command{
		Use:   "set DATE",
		Short: "Mark a date available or unavailable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			if !dates.IsISODate(date) {
				return apperrors.InvalidInput(fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", date))
			}
			ctx := cmd.Context()
			vendorID, err := app.vendorID(ctx)
			if err != nil {
				return err
			}

			available := !unavailable
			res, err := app.Availability.SetDate(ctx, vendorID, date, model.AvailabilityUpdate{
				IsAvailable:   &available,
				BookingStatus: model.BookingStatus(status),
				Reason:        reason,
			})
			if err != nil {
				return err
			}
			if app.outputJSON {
				return writeJSON(app.Out, res.Data)
			}
			state := app.paint(ansiGreen, "available")
			if !available {
				state = app.paint(ansiRed, "unavailable")
			}
			app.printf("%s is now %s.\n", date, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unavailable, "unavailable", false, "Mark the date unavailable")
	cmd.Flags().StringVar(&status, "status", "", "Booking status (available, booked, blocked, tentative)")
	cmd.Flags().StringVar(&reason, "reason", "", "Note shown to the vendor")
	return cmd
}

func calendarClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear DATE",
		Short: "Remove the availability record of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			if !dates.IsISODate(date) {
				return apperrors.InvalidInput(fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", date))
			}
			ctx := cmd.Context()
			vendorID, err := app.vendorID(ctx)
			if err != nil {
				return err
			}
			if err := app.Availability.ClearDate(ctx, vendorID, date); err != nil {
				return err
			}
			if app.outputJSON {
				return writeJSON(app.Out, map[string]string{"vendorId": vendorID, "date": date, "status": "cleared"})
			}
			app.printf("%s cleared.\n", date)
			return nil
		},
	}
}
