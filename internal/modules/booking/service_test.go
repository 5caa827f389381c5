package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/pkg/token"
	"github.com/intermediaal/e-table-reservation/internal/session"
	"github.com/intermediaal/e-table-reservation/internal/upstream"
	"github.com/intermediaal/e-table-reservation/internal/wizard"
)

// fakeUpstream serves canned responses and counts slot fetches.
type fakeUpstream struct {
	mu         sync.Mutex
	settings   *domain.ReservationSettings
	zones      []domain.Zone
	info       *domain.BookingInfo
	infoErr    error
	slots      []domain.Slot
	slotCalls  int
	created    *domain.CreatedReservation
	lastCreate domain.ReservationRequest
}

func (f *fakeUpstream) Areas(_ context.Context, _ string) ([]domain.Zone, error) {
	return f.zones, nil
}

func (f *fakeUpstream) Slots(_ context.Context, _ string, _ string, _ int) ([]domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slotCalls++
	return f.slots, nil
}

func (f *fakeUpstream) CreateReservation(_ context.Context, req domain.ReservationRequest) (*domain.CreatedReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreate = req
	if f.created == nil {
		return nil, &upstream.APIError{Kind: upstream.KindServer, Status: 500, Message: "boom"}
	}
	return f.created, nil
}

func (f *fakeUpstream) Settings(_ context.Context, _ string) (*domain.ReservationSettings, error) {
	return f.settings, nil
}

func (f *fakeUpstream) BookingInfo(_ context.Context, _ string) (*domain.BookingInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func activeSettings() *domain.ReservationSettings {
	return &domain.ReservationSettings{
		Config: domain.ReservationConfig{
			IsActive:        true,
			GlobalStartTime: "10:00",
			GlobalEndTime:   "22:00",
		},
		Hours: []domain.DayHours{
			{DayOfWeek: "MONDAY", Closed: true},
			{DayOfWeek: "TUESDAY", Closed: false},
		},
	}
}

func newTestService(t *testing.T, up *fakeUpstream) (*Service, *session.Memory) {
	t.Helper()
	store := session.NewMemory()
	svc := NewService(up, store, token.New("test-secret", time.Hour), time.Hour, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	}
	return svc, store
}

func defaultUpstream() *fakeUpstream {
	return &fakeUpstream{
		settings: activeSettings(),
		zones: []domain.Zone{
			{ID: 1, Name: "Terrace"},
			{ID: 2, Name: "Main Hall"},
		},
		info: &domain.BookingInfo{MaxPartySize: 10},
		slots: []domain.Slot{
			{Time: "19:00:00", AvailableZoneIDs: []int64{1, 2}},
			{Time: "20:00:00", AvailableZoneIDs: []int64{2}},
		},
		created: &domain.CreatedReservation{ID: 7, ViewToken: "tok-abc", Status: domain.ReservationConfirmed},
	}
}

func TestStartSessionSeedsDraft(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)

	resp, err := svc.StartSession(context.Background(), "intermedia")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionToken)
	assert.Equal(t, "party_size", resp.Session.StepName)
	assert.Equal(t, 1, resp.Session.Draft.Guests)
	assert.Equal(t, "2026-09-01", resp.Session.Draft.Date)
	assert.Equal(t, "13:00", resp.Session.Draft.Time, "next whole hour inside the service window")
	assert.Equal(t, 10, resp.Session.MaxPartySize)
	assert.Len(t, resp.Session.Zones, 2)

	claims, err := token.New("test-secret", time.Hour).Validate(resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.SessionID, claims.SessionID)
	assert.Equal(t, "intermedia", claims.BusinessSlug)
}

func TestStartSessionInactiveBusiness(t *testing.T) {
	up := defaultUpstream()
	up.settings.Config.IsActive = false
	svc, _ := newTestService(t, up)

	_, err := svc.StartSession(context.Background(), "intermedia")
	assert.ErrorIs(t, err, ErrBookingInactive)
}

func TestStartSessionToleratesMissingBookingInfo(t *testing.T) {
	up := defaultUpstream()
	up.infoErr = &upstream.APIError{Kind: upstream.KindNotFound, Status: 404, Message: "no limits"}
	svc, _ := newTestService(t, up)

	resp, err := svc.StartSession(context.Background(), "intermedia")
	require.NoError(t, err)
	assert.Zero(t, resp.Session.MaxPartySize)
}

func TestGetStateUnknownSession(t *testing.T) {
	svc, _ := newTestService(t, defaultUpstream())
	_, err := svc.GetState(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func startSession(t *testing.T, svc *Service) string {
	t.Helper()
	resp, err := svc.StartSession(context.Background(), "intermedia")
	require.NoError(t, err)
	return resp.Session.SessionID
}

func intp(n int) *int       { return &n }
func strp(s string) *string { return &s }
func int64p(n int64) *int64 { return &n }
func boolp(b bool) *bool    { return &b }

func TestPatchDraftRefreshesAvailability(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	view, err := svc.PatchDraft(ctx, id, PatchDraftRequest{
		Guests: intp(2),
		Date:   strp("2026-09-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, up.slotCalls, "one synchronous fetch for the changed pair")

	byTime := map[string]bool{}
	for _, opt := range view.Times {
		byTime[opt.Time] = opt.Available
	}
	assert.True(t, byTime["19:00"])
	assert.True(t, byTime["20:00"])
	assert.False(t, byTime["18:00"])
}

func TestPatchDraftUnchangedPairSkipsFetch(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	_, err := svc.PatchDraft(ctx, id, PatchDraftRequest{Guests: intp(2), Date: strp("2026-09-10")})
	require.NoError(t, err)
	_, err = svc.PatchDraft(ctx, id, PatchDraftRequest{Guests: intp(2), Date: strp("2026-09-10")})
	require.NoError(t, err)

	assert.Equal(t, 1, up.slotCalls, "identical pair must not refetch")
}

func TestPatchDraftZoneFiltering(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	_, err := svc.PatchDraft(ctx, id, PatchDraftRequest{Guests: intp(2), Date: strp("2026-09-10")})
	require.NoError(t, err)

	// No slot of the day lists zone 3.
	_, err = svc.PatchDraft(ctx, id, PatchDraftRequest{ZoneID: int64p(3)})
	assert.ErrorIs(t, err, wizard.ErrZoneUnavailable)

	// Zone 2 narrows the time universe to the slots listing it.
	view, err := svc.PatchDraft(ctx, id, PatchDraftRequest{ZoneID: int64p(2)})
	require.NoError(t, err)
	byTime := map[string]bool{}
	for _, opt := range view.Times {
		byTime[opt.Time] = opt.Available
	}
	assert.True(t, byTime["19:00"])
	assert.True(t, byTime["20:00"])

	// Zone 1 cannot serve 20:00.
	view, err = svc.PatchDraft(ctx, id, PatchDraftRequest{ZoneID: int64p(1)})
	require.NoError(t, err)
	byTime = map[string]bool{}
	for _, opt := range view.Times {
		byTime[opt.Time] = opt.Available
	}
	assert.True(t, byTime["19:00"])
	assert.False(t, byTime["20:00"])
}

func TestPatchDraftAnyZoneReset(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	_, err := svc.PatchDraft(ctx, id, PatchDraftRequest{Guests: intp(2), Date: strp("2026-09-10")})
	require.NoError(t, err)
	_, err = svc.PatchDraft(ctx, id, PatchDraftRequest{ZoneID: int64p(1)})
	require.NoError(t, err)

	view, err := svc.PatchDraft(ctx, id, PatchDraftRequest{AnyZone: boolp(true)})
	require.NoError(t, err)
	assert.Nil(t, view.Draft.ZoneID)
}

func TestPatchDraftClearsTimeWithEmptyString(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	_, err := svc.PatchDraft(ctx, id, PatchDraftRequest{Guests: intp(2), Date: strp("2026-09-10")})
	require.NoError(t, err)
	_, err = svc.PatchDraft(ctx, id, PatchDraftRequest{Time: strp("19:00")})
	require.NoError(t, err)

	view, err := svc.PatchDraft(ctx, id, PatchDraftRequest{Time: strp("")})
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Time)
}

func TestAdvanceAndRetreat(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	// The seeded draft already has one guest, so the first gate passes.
	view, err := svc.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "date", view.StepName)

	view, err = svc.Retreat(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "party_size", view.StepName)

	_, err = svc.Retreat(ctx, id)
	assert.ErrorIs(t, err, wizard.ErrAtFirstStep)
}

func TestSubmitClearsSession(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	_, err := svc.PatchDraft(ctx, id, PatchDraftRequest{Guests: intp(2), Date: strp("2026-09-10")})
	require.NoError(t, err)
	_, err = svc.PatchDraft(ctx, id, PatchDraftRequest{Time: strp("19:00")})
	require.NoError(t, err)
	_, err = svc.PatchDraft(ctx, id, PatchDraftRequest{
		FullName: strp("Jane Doe"),
		Email:    strp("jane@example.com"),
		Phone:    strp("+1 555 0100"),
	})
	require.NoError(t, err)

	resp, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.ViewToken)
	assert.Equal(t, string(domain.ReservationConfirmed), resp.Status)
	assert.Equal(t, "intermedia", up.lastCreate.BusinessSlug)
	assert.Nil(t, up.lastCreate.ZoneID)

	_, err = svc.GetState(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitIncompleteDraft(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)

	_, err := svc.Submit(context.Background(), id)
	assert.ErrorIs(t, err, wizard.ErrContactInvalid)
}

func TestCalendarMonthClosedDays(t *testing.T) {
	up := defaultUpstream()
	svc, _ := newTestService(t, up)
	id := startSession(t, svc)
	ctx := context.Background()

	view, err := svc.CalendarMonth(ctx, id, "2026-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-09", view.Month)
	assert.Equal(t, "September 2026", view.Label)
	assert.False(t, view.CanNavigateBack, "the view month holds today")
	require.Len(t, view.Cells, 42)

	for _, c := range view.Cells {
		d, err := time.Parse("2006-01-02", c.Date)
		require.NoError(t, err)
		if d.Weekday() == time.Monday {
			assert.True(t, c.Closed, "Mondays are marked closed: %s", c.Date)
		} else {
			assert.False(t, c.Closed, "only Mondays are closed: %s", c.Date)
		}
	}

	next, err := svc.CalendarMonth(ctx, id, "2026-10")
	require.NoError(t, err)
	assert.True(t, next.CanNavigateBack)

	_, err = svc.CalendarMonth(ctx, id, "2026/10")
	assert.ErrorIs(t, err, ErrBadMonth)
}
