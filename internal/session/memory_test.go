package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/wizard"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	state := &State{
		BusinessSlug: "intermedia",
		Step:         wizard.StepDate,
		Draft:        domain.Draft{Guests: 2, Date: "2025-09-10"},
		FetchedFor:   "2025-09-10|2",
	}
	require.NoError(t, m.Set(ctx, "sid-1", state, time.Minute))

	got, err := m.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, wizard.StepDate, got.Step)
	assert.Equal(t, 2, got.Draft.Guests)

	// The store hands back copies, not aliases.
	got.Draft.Guests = 9
	again, err := m.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Draft.Guests)
}

func TestMemoryMissingID(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	require.NoError(t, m.Set(ctx, "sid-1", &State{BusinessSlug: "intermedia"}, 30*time.Minute))

	current = current.Add(29 * time.Minute)
	_, err := m.Get(ctx, "sid-1")
	assert.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = m.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "sid-1", &State{}, time.Minute))
	require.NoError(t, m.Clear(ctx, "sid-1"))

	_, err := m.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, m.Clear(ctx, "sid-1"), "clearing twice is harmless")
}
