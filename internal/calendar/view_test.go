package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wedmarket/pkg/model"
)

type mockFetcher struct {
	checkFunc func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockFetcher) CheckAvailabilityRange(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
	m.mu.Lock()
	m.calls = append(m.calls, vendorID+":"+startDate+".."+endDate)
	m.mu.Unlock()
	if m.checkFunc != nil {
		return m.checkFunc(ctx, vendorID, startDate, endDate)
	}
	return model.AvailabilityMap{}, nil
}

func (m *mockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func june2025(fetcher AvailabilityFetcher, onSelect func(string)) *Calendar {
	return New(fetcher, Options{
		VendorID:     "vendor-1",
		SelectedDate: "2025-06-18",
		OnDateSelect: onSelect,
		Location:     time.UTC,
		Now:          func() time.Time { return fixedNow },
	})
}

func TestCalendar_FetchesWholeVisibleMonth(t *testing.T) {
	fetcher := &mockFetcher{}
	cal := june2025(fetcher, nil)
	cal.Start(context.Background())
	cal.Wait()

	calls := fetcher.Calls()
	if len(calls) != 1 || calls[0] != "vendor-1:2025-06-01..2025-06-30" {
		t.Errorf("calls = %v, want one fetch for June", calls)
	}

	cal.NextMonth()
	cal.Wait()
	calls = fetcher.Calls()
	if len(calls) != 2 || calls[1] != "vendor-1:2025-07-01..2025-07-31" {
		t.Errorf("calls = %v, want a second fetch for July", calls)
	}

	cal.PrevMonth()
	cal.PrevMonth()
	cal.Wait()
	snap := cal.Snapshot()
	if snap.Year != 2025 || snap.Month != time.May {
		t.Errorf("displayed month = %d-%s, want 2025-May", snap.Year, snap.Month)
	}
}

func TestCalendar_LoadingAndError(t *testing.T) {
	release := make(chan struct{})
	fetcher := &mockFetcher{
		checkFunc: func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
			<-release
			return nil, errors.New("availability API returned 500")
		},
	}
	cal := june2025(fetcher, nil)
	cal.Start(context.Background())

	if snap := cal.Snapshot(); !snap.Loading {
		t.Error("expected Loading while the fetch is outstanding")
	}

	close(release)
	cal.Wait()

	snap := cal.Snapshot()
	if snap.Loading {
		t.Error("expected Loading to clear after the fetch")
	}
	if snap.Error != ErrLoadAvailability {
		t.Errorf("Error = %q, want %q", snap.Error, ErrLoadAvailability)
	}
	if len(snap.Availability) != 0 {
		t.Errorf("availability should be empty after a failure, got %v", snap.Availability)
	}

	// The grid stays usable: an enabled day with no data is still selectable.
	d, _ := FindDay(snap.Days, "2025-06-15")
	if !Selectable(d) {
		t.Error("days should default to available after a failed fetch")
	}
}

func TestCalendar_SelectRespectsAvailability(t *testing.T) {
	fetcher := &mockFetcher{
		checkFunc: func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
			return model.AvailabilityMap{
				"2025-06-14": {Date: "2025-06-14", VendorID: vendorID, IsAvailable: false, BookingStatus: model.BookingStatusBooked},
			}, nil
		},
	}

	var selected []string
	cal := june2025(fetcher, func(date string) { selected = append(selected, date) })
	cal.Start(context.Background())
	cal.Wait()

	if cal.Select("2025-06-14") {
		t.Error("Select() on an unavailable day should return false")
	}
	if len(selected) != 0 {
		t.Errorf("OnDateSelect must not be called for an unavailable day, got %v", selected)
	}

	if !cal.Select("2025-06-15") {
		t.Error("Select() on an available day should return true")
	}
	if len(selected) != 1 || selected[0] != "2025-06-15" {
		t.Errorf("OnDateSelect calls = %v, want exactly [2025-06-15]", selected)
	}
}

func TestCalendar_SelectIgnoresDisabledDays(t *testing.T) {
	var selected []string
	cal := New(&mockFetcher{}, Options{
		VendorID:     "vendor-1",
		SelectedDate: "2025-06-18",
		MaxDate:      "2025-06-20",
		OnDateSelect: func(date string) { selected = append(selected, date) },
		Location:     time.UTC,
		Now:          func() time.Time { return time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC) },
	})
	cal.Start(context.Background())
	cal.Wait()

	for _, date := range []string{"2025-06-09", "2025-06-21", "2025-07-02", "2025-08-15"} {
		if cal.Select(date) {
			t.Errorf("Select(%s) should be a no-op", date)
		}
	}
	if len(selected) != 0 {
		t.Errorf("OnDateSelect calls = %v, want none", selected)
	}
}

func TestCalendar_SelectionOwnedByHost(t *testing.T) {
	cal := june2025(&mockFetcher{}, func(string) {})
	cal.Start(context.Background())
	cal.Wait()

	cal.Select("2025-06-20")
	if snap := cal.Snapshot(); snap.SelectedDate != "2025-06-18" {
		t.Errorf("Select() must not change the selection, got %s", snap.SelectedDate)
	}

	cal.SetSelectedDate("2025-06-20")
	day, _ := FindDay(cal.Snapshot().Days, "2025-06-20")
	if !day.IsSelected {
		t.Error("SetSelectedDate() should mark the new day selected")
	}

	cal.NextMonth()
	cal.Wait()
	if snap := cal.Snapshot(); snap.SelectedDate != "2025-06-20" {
		t.Errorf("navigation must not change the selection, got %s", snap.SelectedDate)
	}
}

func TestCalendar_DiscardsStaleResponses(t *testing.T) {
	juneRelease := make(chan struct{})
	fetcher := &mockFetcher{
		checkFunc: func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
			if startDate == "2025-06-01" {
				// The slow June response ignores cancellation and arrives after July's.
				<-juneRelease
				return model.AvailabilityMap{
					"2025-06-14": {Date: "2025-06-14", IsAvailable: false},
				}, nil
			}
			return model.AvailabilityMap{
				"2025-07-04": {Date: "2025-07-04", IsAvailable: false},
			}, nil
		},
	}

	cal := june2025(fetcher, nil)
	cal.Start(context.Background())
	cal.NextMonth()

	// Let July finish first, then release June.
	deadline := time.After(2 * time.Second)
	for {
		snap := cal.Snapshot()
		if !snap.Loading {
			break
		}
		select {
		case <-deadline:
			t.Fatal("July fetch did not complete")
		case <-time.After(5 * time.Millisecond):
		}
	}
	close(juneRelease)
	cal.Wait()

	snap := cal.Snapshot()
	if snap.Month != time.July {
		t.Fatalf("displayed month = %s, want July", snap.Month)
	}
	if _, ok := snap.Availability["2025-06-14"]; ok {
		t.Error("stale June availability leaked into the July view")
	}
	if _, ok := snap.Availability["2025-07-04"]; !ok {
		t.Error("July availability missing")
	}
	if snap.Loading || snap.Error != "" {
		t.Errorf("unexpected state Loading=%v Error=%q", snap.Loading, snap.Error)
	}
}

func TestCalendar_NavigationCancelsInFlightFetch(t *testing.T) {
	cancelled := make(chan struct{}, 1)
	fetcher := &mockFetcher{
		checkFunc: func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
			if startDate == "2025-06-01" {
				<-ctx.Done()
				cancelled <- struct{}{}
				return nil, ctx.Err()
			}
			return model.AvailabilityMap{}, nil
		},
	}

	cal := june2025(fetcher, nil)
	cal.Start(context.Background())
	cal.NextMonth()
	cal.Wait()

	select {
	case <-cancelled:
	default:
		t.Fatal("June fetch was not cancelled by navigation")
	}
	if snap := cal.Snapshot(); snap.Error != "" {
		t.Errorf("a cancelled stale fetch must not surface an error, got %q", snap.Error)
	}
}

func TestCalendar_FetchTimeout(t *testing.T) {
	fetcher := &mockFetcher{
		checkFunc: func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	cal := New(fetcher, Options{
		VendorID:     "vendor-1",
		Location:     time.UTC,
		Now:          func() time.Time { return fixedNow },
		FetchTimeout: 20 * time.Millisecond,
	})
	cal.Start(context.Background())
	cal.Wait()

	snap := cal.Snapshot()
	if snap.Loading || snap.Error != ErrLoadAvailability {
		t.Errorf("after timeout Loading=%v Error=%q", snap.Loading, snap.Error)
	}
}

func TestCalendar_NoVendorNoFetch(t *testing.T) {
	fetcher := &mockFetcher{}
	cal := New(fetcher, Options{Location: time.UTC, Now: func() time.Time { return fixedNow }})
	cal.Start(context.Background())
	cal.Wait()

	if len(fetcher.Calls()) != 0 {
		t.Errorf("expected no fetch without a vendor, got %v", fetcher.Calls())
	}
	if cal.Snapshot().Loading {
		t.Error("calendar without vendor must not be loading")
	}

	cal.SetVendor("vendor-2")
	cal.Wait()
	if calls := fetcher.Calls(); len(calls) != 1 || calls[0] != "vendor-2:2025-05-01..2025-05-31" {
		t.Errorf("calls = %v, want fetch for vendor-2 in May", calls)
	}
}

func TestCalendar_CloseCancelsAndIgnoresResults(t *testing.T) {
	fetcher := &mockFetcher{
		checkFunc: func(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error) {
			<-ctx.Done()
			return model.AvailabilityMap{"2025-06-14": {Date: "2025-06-14"}}, nil
		},
	}
	cal := june2025(fetcher, nil)
	cal.Start(context.Background())
	cal.Close()

	if snap := cal.Snapshot(); len(snap.Availability) != 0 {
		t.Errorf("results arriving after Close must be ignored, got %v", snap.Availability)
	}

	cal.NextMonth()
	cal.Wait()
	if n := len(fetcher.Calls()); n != 1 {
		t.Errorf("closed calendar must not fetch again, got %d calls", n)
	}
}

func TestCalendar_TodayReturnsToCurrentMonth(t *testing.T) {
	fetcher := &mockFetcher{}
	cal := june2025(fetcher, nil)
	cal.Start(context.Background())
	cal.NextMonth()
	cal.Today()
	cal.Wait()

	snap := cal.Snapshot()
	if snap.Year != fixedNow.Year() || snap.Month != fixedNow.Month() {
		t.Errorf("Today() displayed %d-%s, want %d-%s", snap.Year, snap.Month, fixedNow.Year(), fixedNow.Month())
	}
}

func TestCalendar_WaitDuringNavigation(t *testing.T) {
	fetcher := &mockFetcher{}
	cal := june2025(fetcher, nil)
	cal.Start(context.Background())

	const rounds = 500
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < rounds; i++ {
			cal.Wait()
		}
	}()
	for i := 0; i < rounds; i++ {
		cal.NextMonth()
	}
	<-done
	cal.Wait()

	snap := cal.Snapshot()
	if snap.Loading {
		t.Error("no fetch should be in flight after Wait")
	}
	want := time.Date(2025, time.June+rounds, 1, 0, 0, 0, 0, time.UTC)
	if snap.Year != want.Year() || snap.Month != want.Month() {
		t.Errorf("displayed %d-%s, want %d-%s", snap.Year, snap.Month, want.Year(), want.Month())
	}
	if n := len(fetcher.Calls()); n != rounds+1 {
		t.Errorf("expected %d fetches, got %d", rounds+1, n)
	}
}
