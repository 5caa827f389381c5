package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intermediaal/e-table-reservation/internal/availability"
	"github.com/intermediaal/e-table-reservation/internal/calendar"
	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/pkg/token"
	"github.com/intermediaal/e-table-reservation/internal/session"
	"github.com/intermediaal/e-table-reservation/internal/timeslot"
	"github.com/intermediaal/e-table-reservation/internal/wizard"
)

// Service runs wizard sessions over the session store. Each request
// rebuilds the wizard from parked state, applies one operation and parks
// the result again, so the handlers stay stateless.
type Service struct {
	up     Upstream
	store  session.Store
	tokens *token.Service
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
}

func NewService(up Upstream, store session.Store, tokens *token.Service, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{
		up:     up,
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// slotsFetcher adapts the upstream client to the wizard's Fetcher for one
// business.
type slotsFetcher struct {
	up   Upstream
	slug string
}

func (f slotsFetcher) Slots(ctx context.Context, date string, guests int) ([]domain.Slot, error) {
	return f.up.Slots(ctx, f.slug, date, guests)
}

type reservationSubmitter struct {
	up Upstream
}

func (s reservationSubmitter) Create(ctx context.Context, req domain.ReservationRequest) (*domain.CreatedReservation, error) {
	return s.up.CreateReservation(ctx, req)
}

// StartSession creates a wizard session for one business: loads settings,
// zones and booking limits, seeds the draft and mints the session token.
func (s *Service) StartSession(ctx context.Context, slug string) (*StartSessionResponse, error) {
	settings, err := s.up.Settings(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !settings.Config.IsActive {
		return nil, ErrBookingInactive
	}

	zones, err := s.up.Areas(ctx, slug)
	if err != nil {
		return nil, err
	}

	maxParty := 0
	if info, err := s.up.BookingInfo(ctx, slug); err != nil {
		// Limits are advisory; a missing endpoint must not block booking.
		s.log.Warn("booking info unavailable", zap.String("slug", slug), zap.Error(err))
	} else {
		maxParty = info.MaxPartySize
	}

	win := s.window(settings)
	state := &session.State{
		BusinessSlug: slug,
		Step:         wizard.StepPartySize,
		Draft:        wizard.SeedDraft(s.now(), win),
		Zones:        zones,
		Settings:     *settings,
		MaxPartySize: maxParty,
		CreatedAt:    s.now(),
	}

	id := uuid.NewString()
	if err := s.store.Set(ctx, id, state, s.ttl); err != nil {
		return nil, err
	}

	sessionToken, err := s.tokens.Generate(id, slug)
	if err != nil {
		return nil, err
	}

	return &StartSessionResponse{
		SessionToken: sessionToken,
		Session:      s.view(id, state),
	}, nil
}

// GetState returns the current session view.
func (s *Service) GetState(ctx context.Context, id string) (*SessionView, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(id, state)
	return &v, nil
}

// PatchDraft applies partial draft updates. A guests or date change
// triggers a synchronous availability refresh with reconciliation before
// the new state is parked, so the response can never show a selection the
// fresh table contradicts.
func (s *Service) PatchDraft(ctx context.Context, id string, req PatchDraftRequest) (*SessionView, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	w := s.rebuild(state)
	defer w.Close()

	before := w.Draft()
	if req.Guests != nil {
		if err := w.SetGuests(*req.Guests); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		if err := w.SetDate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Guests != nil || req.Date != nil {
		after := w.Draft()
		if after.Guests != before.Guests || after.Date != before.Date {
			if err := w.RefreshNow(ctx); err != nil {
				return nil, err
			}
		}
	}
	if req.AnyZone != nil && *req.AnyZone {
		if err := w.SelectZone(nil); err != nil {
			return nil, err
		}
	} else if req.ZoneID != nil {
		if err := w.SelectZone(req.ZoneID); err != nil {
			return nil, err
		}
	}
	if req.Time != nil {
		if *req.Time == "" {
			w.ClearTime()
		} else if err := w.SelectTime(*req.Time); err != nil {
			return nil, err
		}
	}
	if req.FullName != nil || req.Email != nil || req.Phone != nil || req.SpecialRequests != nil {
		d := w.Draft()
		w.SetContact(
			orKeep(req.FullName, d.FullName),
			orKeep(req.Email, d.Email),
			orKeep(req.Phone, d.Phone),
			orKeep(req.SpecialRequests, d.SpecialRequests),
		)
	}

	return s.park(ctx, id, state, w)
}

// Advance moves the session forward one step.
func (s *Service) Advance(ctx context.Context, id string) (*SessionView, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	w := s.rebuild(state)
	defer w.Close()
	if err := w.Advance(ctx); err != nil {
		return nil, err
	}
	return s.park(ctx, id, state, w)
}

// Retreat moves the session back one step; never gated.
func (s *Service) Retreat(ctx context.Context, id string) (*SessionView, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	w := s.rebuild(state)
	defer w.Close()
	if err := w.Retreat(); err != nil {
		return nil, err
	}
	return s.park(ctx, id, state, w)
}

// Submit sends the finished draft upstream and clears the session.
func (s *Service) Submit(ctx context.Context, id string) (*SubmitResponse, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	w := s.rebuild(state)
	defer w.Close()

	created, err := w.Submit(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Clear(ctx, id); err != nil {
		s.log.Warn("session cleanup failed", zap.String("session_id", id), zap.Error(err))
	}

	return &SubmitResponse{
		ID:        created.ID,
		ViewToken: created.ViewToken,
		Status:    string(created.Status),
	}, nil
}

// CalendarMonth renders one month's grid for the session. Weekdays the
// business marks closed are flagged for display; they don't affect the
// availability table.
func (s *Service) CalendarMonth(ctx context.Context, id, monthStr string) (*CalendarView, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	today := s.now()
	view := calendar.MonthOf(today)
	if monthStr != "" {
		view, err = calendar.ParseMonth(monthStr)
		if err != nil {
			return nil, ErrBadMonth
		}
	}

	minDate := today.Format("2006-01-02")
	cells := calendar.Build(view, today, state.Draft.Date, minDate)

	out := make([]CalendarCell, 0, len(cells))
	for _, c := range cells {
		d, _ := time.Parse("2006-01-02", c.Date)
		out = append(out, CalendarCell{
			Cell:   c,
			Closed: state.Settings.ClosedOn(d.Weekday().String()),
		})
	}

	return &CalendarView{
		Month:           view.String(),
		Label:           view.Label(),
		CanNavigateBack: calendar.CanNavigateBack(view, minDate),
		Cells:           out,
	}, nil
}

func (s *Service) load(ctx context.Context, id string) (*session.State, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		if err == session.ErrNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return state, nil
}

// rebuild reconstructs a wizard from parked state. The server applies
// changes synchronously, so the debounce window is irrelevant here; the
// distinct-until-changed check in RefreshNow still prevents redundant
// fetches.
func (s *Service) rebuild(state *session.State) *wizard.Wizard {
	w := wizard.New(
		state.BusinessSlug,
		slotsFetcher{up: s.up, slug: state.BusinessSlug},
		reservationSubmitter{up: s.up},
		wizard.WithMaxPartySize(state.MaxPartySize),
		wizard.WithToday(s.now),
	)
	w.Restore(state.Step, state.Draft, state.Slots, state.FetchedFor)
	return w
}

// park writes the wizard's state back to the store and renders the view.
func (s *Service) park(ctx context.Context, id string, state *session.State, w *wizard.Wizard) (*SessionView, error) {
	state.Step = w.Step()
	state.Draft = w.Draft()
	state.Slots = w.Table().Slots()
	state.FetchedFor = w.FetchedFor()
	if err := s.store.Set(ctx, id, state, s.ttl); err != nil {
		return nil, err
	}
	v := s.view(id, state)
	return &v, nil
}

func (s *Service) window(settings *domain.ReservationSettings) timeslot.Window {
	win, err := timeslot.ParseWindow(
		settings.Config.GlobalStartTime,
		settings.Config.GlobalEndTime,
		timeslot.DefaultStepMinutes,
	)
	if err != nil {
		// Settings without a usable window fall back to all-day service.
		win = timeslot.Window{StartMinute: 0, EndMinute: 24 * 60, StepMinutes: timeslot.DefaultStepMinutes}
	}
	return win
}

func (s *Service) view(id string, state *session.State) SessionView {
	table := availability.NewTable(state.Slots)
	win := s.window(&state.Settings)

	times := make([]TimeOption, 0)
	for _, t := range win.Times() {
		times = append(times, TimeOption{
			Time:      t,
			Available: table.TimeAvailableForZone(t, state.Draft.ZoneID),
		})
	}

	zones := make([]ZoneOption, 0, len(state.Zones))
	for _, z := range state.Zones {
		zid := z.ID
		zones = append(zones, ZoneOption{
			ID:        z.ID,
			Name:      z.Name,
			Icon:      z.Icon,
			Available: table.ZoneAvailableAt(state.Draft.Time, &zid),
		})
	}

	return SessionView{
		SessionID:    id,
		BusinessSlug: state.BusinessSlug,
		Step:         int(state.Step),
		StepName:     state.Step.String(),
		Draft:        state.Draft,
		Times:        times,
		Zones:        zones,
		MaxPartySize: state.MaxPartySize,
		Background:   state.Settings.Config.BackgroundPhoto,
		Icon:         state.Settings.Config.Icon,
	}
}

func orKeep(v *string, current string) string {
	if v != nil {
		return *v
	}
	return current
}
