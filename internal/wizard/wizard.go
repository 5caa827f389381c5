// Package wizard drives the multi-step reservation flow: party size, date,
// time, zone, contact details, review. It owns the draft, gates step
// transitions, and keeps the draft consistent with the latest availability
// table via synchronous reconciliation.
package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/intermediaal/e-table-reservation/internal/availability"
	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/pkg/validator"
	"github.com/intermediaal/e-table-reservation/internal/timeslot"
)

const (
	defaultQuietWindow = 400 * time.Millisecond
	fetchTimeout       = 10 * time.Second
	dateLayout         = "2006-01-02"
)

// Fetcher loads the availability table for a (date, guests) pair.
type Fetcher interface {
	Slots(ctx context.Context, date string, guests int) ([]domain.Slot, error)
}

// Submitter creates the reservation upstream.
type Submitter interface {
	Create(ctx context.Context, req domain.ReservationRequest) (*domain.CreatedReservation, error)
}

// Wizard is one booking session's state machine. Safe for use from UI
// callbacks and the debounce timer goroutine; all mutation goes through the
// mutex.
type Wizard struct {
	mu         sync.Mutex
	slug       string
	step       Step
	draft      domain.Draft
	table      availability.Table
	fetchedFor string

	fetcher   Fetcher
	submitter Submitter

	quiet    time.Duration
	maxParty int
	today    func() time.Time
	timer    *time.Timer
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithQuietWindow sets the debounce window for guests/date changes.
func WithQuietWindow(d time.Duration) Option {
	return func(w *Wizard) { w.quiet = d }
}

// WithMaxPartySize caps the party size; zero means uncapped.
func WithMaxPartySize(n int) Option {
	return func(w *Wizard) { w.maxParty = n }
}

// WithToday overrides the clock used for date validation.
func WithToday(f func() time.Time) Option {
	return func(w *Wizard) { w.today = f }
}

// New builds a wizard for one business, positioned at the party-size step.
func New(slug string, f Fetcher, s Submitter, opts ...Option) *Wizard {
	w := &Wizard{
		slug:      slug,
		step:      StepPartySize,
		fetcher:   f,
		submitter: s,
		quiet:     defaultQuietWindow,
		today:     time.Now,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Restore loads previously parked session state (step, draft and the table
// it was fetched against), as the HTTP layer does between requests.
func (w *Wizard) Restore(step Step, d domain.Draft, slots []domain.Slot, fetchedFor string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step.Valid() {
		w.step = step
	}
	w.draft = d
	w.table = availability.NewTable(slots)
	w.fetchedFor = fetchedFor
}

// SeedDraft builds the initial draft: today's date, the next whole hour if
// it falls inside the service window, one guest.
func SeedDraft(now time.Time, win timeslot.Window) domain.Draft {
	d := domain.Draft{
		Guests: 1,
		Date:   now.Format(dateLayout),
	}
	next := now.Truncate(time.Hour).Add(time.Hour)
	hhmm := next.Format("15:04")
	if win.Contains(hhmm) {
		d.Time = hhmm
	}
	return d
}

// Close stops any pending debounce timer.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Draft() domain.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *Wizard) Table() availability.Table {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.table
}

// FetchedFor returns the "date|guests" key the current table was fetched
// against, empty when the table is cleared.
func (w *Wizard) FetchedFor() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fetchedFor
}

func fetchKey(date string, guests int) string {
	return fmt.Sprintf("%s|%d", date, guests)
}

// SetGuests records the party size and schedules a debounced availability
// refresh. Setting the same value again is a no-op.
func (w *Wizard) SetGuests(n int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n < 1 || (w.maxParty > 0 && n > w.maxParty) {
		return ErrGuestsOutOfRange
	}
	if n == w.draft.Guests {
		return nil
	}
	w.draft.Guests = n
	w.scheduleRefreshLocked()
	return nil
}

// SetDate records the date ("YYYY-MM-DD", today or later) and schedules a
// debounced availability refresh.
func (w *Wizard) SetDate(date string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrDateInvalid
	}
	if date < w.today().Format(dateLayout) {
		return ErrDateInvalid
	}
	if date == w.draft.Date {
		return nil
	}
	w.draft.Date = date
	w.scheduleRefreshLocked()
	return nil
}

// SelectTime records a time selection. The time must be present in the
// current table and, when a zone is already selected, must list that zone.
func (w *Wizard) SelectTime(hhmm string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.table.TimeAvailableForZone(hhmm, w.draft.ZoneID) {
		return ErrTimeUnavailable
	}
	w.draft.Time = hhmm
	return nil
}

// ClearTime drops the time selection.
func (w *Wizard) ClearTime() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Time = ""
}

// SelectZone records a zone selection. nil means "any zone" and always
// succeeds. A zone no slot of the day lists is rejected outright; a zone
// valid elsewhere in the day is accepted and clears a time selection it
// cannot serve.
func (w *Wizard) SelectZone(zoneID *int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if zoneID == nil {
		w.draft.ZoneID = nil
		return nil
	}
	if !w.table.Empty() && !w.table.ZoneEverAvailable(*zoneID) {
		return ErrZoneUnavailable
	}
	w.draft.ZoneID = zoneID
	if w.draft.Time != "" && !w.table.TimeAvailableForZone(w.draft.Time, zoneID) {
		w.draft.Time = ""
	}
	return nil
}

// SetContact records the contact fields without validating them; validation
// happens on Advance out of the contact step and again on Submit.
func (w *Wizard) SetContact(fullName, email, phone, specialRequests string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.FullName = fullName
	w.draft.Email = email
	w.draft.Phone = phone
	w.draft.SpecialRequests = specialRequests
}

// scheduleRefreshLocked coalesces guests/date changes: the fetch fires once
// the quiet window elapses without another change. When the pair is
// incomplete the table is cleared instead and no times are bookable.
func (w *Wizard) scheduleRefreshLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.draft.Guests < 1 || w.draft.Date == "" {
		w.table = availability.Table{}
		w.fetchedFor = ""
		availability.Reconcile(w.table, &w.draft)
		return
	}
	w.timer = time.AfterFunc(w.quiet, func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_ = w.RefreshNow(ctx)
	})
}

// RefreshNow fetches the availability table for the current (date, guests)
// pair, skipping the debounce window. The fetch is skipped when the pair
// hasn't changed since the last successful fetch. Reconciliation runs under
// the lock before the new table is observable.
func (w *Wizard) RefreshNow(ctx context.Context) error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	date, guests := w.draft.Date, w.draft.Guests
	if guests < 1 || date == "" {
		w.table = availability.Table{}
		w.fetchedFor = ""
		availability.Reconcile(w.table, &w.draft)
		w.mu.Unlock()
		return nil
	}
	key := fetchKey(date, guests)
	if key == w.fetchedFor {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	slots, err := w.fetcher.Slots(ctx, date, guests)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// A newer change superseded this fetch; drop the stale response.
	if w.draft.Date != date || w.draft.Guests != guests {
		return nil
	}
	w.table = availability.NewTable(slots)
	w.fetchedFor = key
	availability.Reconcile(w.table, &w.draft)
	return nil
}

// Advance moves forward one step when the current step's predicate holds.
// Entering the time step triggers a refresh when the table is stale.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()
	step := w.step
	w.mu.Unlock()

	if step == StepReview {
		return ErrAtLastStep
	}
	if err := w.stepError(step); err != nil {
		return err
	}

	w.mu.Lock()
	w.step = step + 1
	entering := w.step
	stale := w.fetchedFor != fetchKey(w.draft.Date, w.draft.Guests)
	w.mu.Unlock()

	if (entering == StepTime || entering == StepZone) && stale {
		return w.RefreshNow(ctx)
	}
	return nil
}

// Retreat moves back one step; it never checks validity.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step <= StepPartySize {
		return ErrAtFirstStep
	}
	w.step--
	return nil
}

// stepError reports why the named step blocks forward navigation, nil when
// it doesn't.
func (w *Wizard) stepError(step Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch step {
	case StepPartySize:
		if w.draft.Guests < 1 || (w.maxParty > 0 && w.draft.Guests > w.maxParty) {
			return ErrGuestsOutOfRange
		}
	case StepDate:
		if _, err := time.Parse(dateLayout, w.draft.Date); err != nil {
			return ErrDateInvalid
		}
		if w.draft.Date < w.today().Format(dateLayout) {
			return ErrDateInvalid
		}
	case StepTime:
		if w.draft.Time == "" {
			return ErrTimeRequired
		}
	case StepZone:
		// Zone is optional; nil means any zone.
	case StepContact:
		if errs := validator.Validate(w.draft.Contact()); errs != nil {
			return ErrContactInvalid
		}
	}
	return nil
}

// Submit validates the whole draft, sends it upstream and clears the
// session on success. On failure the wizard stays on the review step and
// the upstream error is returned as-is for display.
func (w *Wizard) Submit(ctx context.Context) (*domain.CreatedReservation, error) {
	for _, step := range []Step{StepPartySize, StepDate, StepTime, StepContact} {
		if err := w.stepError(step); err != nil {
			return nil, err
		}
	}

	w.mu.Lock()
	if !w.table.ZoneAvailableAt(w.draft.Time, w.draft.ZoneID) {
		w.mu.Unlock()
		return nil, ErrDraftIncomplete
	}
	req := domain.ReservationRequest{
		CustomerName:  w.draft.FullName,
		CustomerEmail: w.draft.Email,
		CustomerPhone: w.draft.Phone,
		Date:          w.draft.Date,
		Time:          w.draft.Time,
		Guests:        w.draft.Guests,
		Requests:      w.draft.SpecialRequests,
		ZoneID:        w.draft.ZoneID,
		BusinessSlug:  w.slug,
	}
	w.mu.Unlock()

	created, err := w.submitter.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.draft = domain.Draft{}
	w.table = availability.Table{}
	w.fetchedFor = ""
	w.step = StepPartySize
	w.mu.Unlock()
	return created, nil
}
