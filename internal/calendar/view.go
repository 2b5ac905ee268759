package calendar

import (
	"context"
	"sync"
	"time"

	"wedmarket/pkg/dates"
	"wedmarket/pkg/logger"
	"wedmarket/pkg/model"
)

const (
	ErrLoadAvailability = "Unable to load availability"
	DefaultFetchTimeout = 10 * time.Second
)

type AvailabilityFetcher interface {
	CheckAvailabilityRange(ctx context.Context, vendorID, startDate, endDate string) (model.AvailabilityMap, error)
}

type Options struct {
	VendorID     string
	SelectedDate string
	MinDate      string
	MaxDate      string
	OnDateSelect func(date string)
	Location     *time.Location
	Now          func() time.Time
	FetchTimeout time.Duration
	Log          *logger.Logger
}

type Snapshot struct {
	Year         int
	Month        time.Month
	VendorID     string
	SelectedDate string
	Loading      bool
	Error        string
	Availability model.AvailabilityMap
	Days         []Day
}

// Calendar is the month view of one vendor's availability. It owns the displayed month
// and the availability of that month; the selected date belongs to the host, which is
// told about clicks through OnDateSelect and pushes the new value back with
// SetSelectedDate.
//
// Every fetch is tagged with a sequence number. Navigating cancels the outstanding fetch
// and any response that is not for the latest sequence is dropped, so the availability
// shown always belongs to the visible month.
type Calendar struct {
	fetcher  AvailabilityFetcher
	onSelect func(string)
	loc      *time.Location
	now      func() time.Time
	timeout  time.Duration
	log      *logger.Logger

	mu           sync.Mutex
	baseCtx      context.Context
	year         int
	month        time.Month
	vendorID     string
	selected     string
	minDate      string
	maxDate      string
	availability model.AvailabilityMap
	loading      bool
	errMsg       string
	seq          uint64
	cancel       context.CancelFunc
	closed       bool

	// inflight counts running fetches; idle is closed when it drops to zero.
	inflight int
	idle     chan struct{}
}

func New(fetcher AvailabilityFetcher, opts Options) *Calendar {
	c := &Calendar{
		fetcher:      fetcher,
		onSelect:     opts.OnDateSelect,
		loc:          opts.Location,
		now:          opts.Now,
		timeout:      opts.FetchTimeout,
		log:          opts.Log,
		vendorID:     opts.VendorID,
		selected:     opts.SelectedDate,
		minDate:      opts.MinDate,
		maxDate:      opts.MaxDate,
		availability: model.AvailabilityMap{},
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.timeout <= 0 {
		c.timeout = DefaultFetchTimeout
	}
	if c.log == nil {
		c.log = logger.Discard()
	}

	shown := c.now().In(c.loc)
	if sel, err := dates.Parse(opts.SelectedDate, c.loc); opts.SelectedDate != "" && err == nil {
		shown = sel
	}
	c.year, c.month = shown.Year(), shown.Month()
	return c
}

// Start mounts the calendar and loads the visible month. ctx bounds every later fetch.
func (c *Calendar) Start(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()
	c.refresh()
}

func (c *Calendar) PrevMonth() {
	c.shiftMonth(-1)
}

func (c *Calendar) NextMonth() {
	c.shiftMonth(1)
}

// Today jumps back to the month containing the current date.
func (c *Calendar) Today() {
	now := c.now().In(c.loc)
	c.mu.Lock()
	changed := c.year != now.Year() || c.month != now.Month()
	c.year, c.month = now.Year(), now.Month()
	c.mu.Unlock()
	if changed {
		c.refresh()
	}
}

// ShowMonth displays an arbitrary month.
func (c *Calendar) ShowMonth(year int, month time.Month) {
	c.mu.Lock()
	changed := c.year != year || c.month != month
	c.year, c.month = year, month
	c.mu.Unlock()
	if changed {
		c.refresh()
	}
}

func (c *Calendar) shiftMonth(delta int) {
	c.mu.Lock()
	t := dates.FirstOfMonth(c.year, c.month, c.loc).AddDate(0, delta, 0)
	c.year, c.month = t.Year(), t.Month()
	c.mu.Unlock()
	c.refresh()
}

func (c *Calendar) SetVendor(vendorID string) {
	c.mu.Lock()
	changed := c.vendorID != vendorID
	c.vendorID = vendorID
	c.mu.Unlock()
	if changed {
		c.refresh()
	}
}

func (c *Calendar) SetSelectedDate(date string) {
	c.mu.Lock()
	c.selected = date
	c.mu.Unlock()
}

func (c *Calendar) SetBounds(minDate, maxDate string) {
	c.mu.Lock()
	c.minDate, c.maxDate = minDate, maxDate
	c.mu.Unlock()
}

// Select handles a click on date. It returns false without calling OnDateSelect when the
// day is not in the visible grid, is disabled, or is marked unavailable.
func (c *Calendar) Select(date string) bool {
	c.mu.Lock()
	day, ok := FindDay(c.gridLocked(), date)
	c.mu.Unlock()

	if !ok || !Selectable(day) {
		return false
	}
	if c.onSelect != nil {
		c.onSelect(date)
	}
	return true
}

func (c *Calendar) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	availability := make(model.AvailabilityMap, len(c.availability))
	for k, v := range c.availability {
		availability[k] = v
	}
	return Snapshot{
		Year:         c.year,
		Month:        c.month,
		VendorID:     c.vendorID,
		SelectedDate: c.selected,
		Loading:      c.loading,
		Error:        c.errMsg,
		Availability: availability,
		Days:         c.gridLocked(),
	}
}

// Wait blocks until no fetch is in flight. Navigation may run concurrently; fetches it
// starts while Wait is blocked are waited for as well.
func (c *Calendar) Wait() {
	for {
		c.mu.Lock()
		if c.inflight == 0 {
			c.mu.Unlock()
			return
		}
		idle := c.idle
		c.mu.Unlock()
		<-idle
	}
}

// Close unmounts the calendar: the outstanding fetch is cancelled and later results are
// ignored.
func (c *Calendar) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.Wait()
}

func (c *Calendar) gridLocked() []Day {
	return BuildMonthGrid(GridInput{
		Year:         c.year,
		Month:        c.month,
		SelectedDate: c.selected,
		MinDate:      c.minDate,
		MaxDate:      c.maxDate,
		Availability: c.availability,
		Now:          c.now(),
		Location:     c.loc,
	})
}

func (c *Calendar) refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	seq := c.seq
	c.availability = model.AvailabilityMap{}
	c.errMsg = ""

	if c.vendorID == "" {
		c.loading = false
		c.mu.Unlock()
		return
	}

	base := c.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, c.timeout)
	c.cancel = cancel
	c.loading = true

	vendorID := c.vendorID
	start, end := dates.MonthRange(c.year, c.month)
	if c.inflight == 0 {
		c.idle = make(chan struct{})
	}
	c.inflight++
	c.mu.Unlock()

	go c.fetch(ctx, cancel, seq, vendorID, start, end)
}

func (c *Calendar) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, vendorID, start, end string) {
	defer cancel()

	availability, err := c.fetcher.CheckAvailabilityRange(ctx, vendorID, start, end)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.fetchDoneLocked()

	if c.closed || seq != c.seq {
		c.log.Debug("Discarding stale availability response",
			"vendor_id", vendorID,
			"start_date", start,
			"seq", seq,
		)
		return
	}

	c.loading = false
	c.cancel = nil
	if err != nil {
		c.log.Warn("Failed to load availability",
			"vendor_id", vendorID,
			"start_date", start,
			"end_date", end,
			"error", err,
		)
		c.errMsg = ErrLoadAvailability
		c.availability = model.AvailabilityMap{}
		return
	}
	if availability == nil {
		availability = model.AvailabilityMap{}
	}
	c.availability = availability
}

func (c *Calendar) fetchDoneLocked() {
	c.inflight--
	if c.inflight == 0 {
		close(c.idle)
	}
}
