package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qms-backend/internal/domain/events"
)

var base = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func mkEvent(id string, typ events.EventType, status events.Status, sev events.Severity, created time.Time, due *time.Time) events.Event {
	return events.Event{
		ID:          id,
		Type:        typ,
		Title:       "t-" + id,
		Description: "d-" + id,
		Department:  "QA",
		Initiator:   "qa",
		Status:      status,
		Severity:    sev,
		Priority:    events.PriorityLow,
		DueDate:     due,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func ptr(t time.Time) *time.Time { return &t }

func ids(items []events.Event) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestEventRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	e := mkEvent("1", "CAPA", events.StatusOpen, events.SeverityLow, base, nil)
	require.NoError(t, repo.Create(ctx, e))
	assert.Error(t, repo.Create(ctx, e), "id duplicado")

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	// created_at no cambia aunque el update lo traiga distinto
	upd := got
	upd.Title = "renamed"
	upd.CreatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, upd))

	got, err = repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, base, got.CreatedAt)

	assert.ErrorIs(t, repo.Update(ctx, mkEvent("nope", "x", "x", "x", base, nil)), events.ErrNotFound)

	ok, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, events.ErrNotFound)
}

func TestEventRepo_List_FiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	require.NoError(t, repo.Create(ctx, mkEvent("old", "CAPA", events.StatusOpen, events.SeverityHigh, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("new", "CAPA", events.StatusClosed, events.SeverityHigh, base.Add(2*time.Hour), nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("mid", "Audit", events.StatusOpen, events.SeverityLow, base.Add(time.Hour), nil)))

	all, err := repo.List(ctx, events.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))

	capa, err := repo.List(ctx, events.ListFilter{EventType: "CAPA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids(capa))

	openHigh, err := repo.List(ctx, events.ListFilter{Status: "Open", Severity: "High"})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ids(openHigh))

	// match exacto, sensible a mayúsculas
	none, err := repo.List(ctx, events.ListFilter{EventType: "capa"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEventRepo_HighRisk_NullsLast(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	require.NoError(t, repo.Create(ctx, mkEvent("nodue", "Deviation", events.StatusOpen, events.SeverityCritical, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("jan5", "Deviation", events.StatusOpen, events.SeverityHigh, base, ptr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))))
	require.NoError(t, repo.Create(ctx, mkEvent("jan1", "Deviation", events.StatusOpen, events.SeverityLow, base, ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))))
	require.NoError(t, repo.Create(ctx, mkEvent("future-low", "Deviation", events.StatusOpen, events.SeverityLow, base, ptr(base.Add(24*time.Hour)))))

	items, err := repo.HighRisk(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"jan1", "jan5", "nodue"}, ids(items))
}

func TestEventRepo_OpenSince(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	require.NoError(t, repo.Create(ctx, mkEvent("in", "Audit", events.StatusInProgress, events.SeverityLow, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("closed", "Audit", events.StatusClosed, events.SeverityLow, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("before", "Audit", events.StatusOpen, events.SeverityLow, base.Add(-time.Second), nil)))

	items, err := repo.OpenSince(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"in"}, ids(items))
}

func TestEventRepo_CAPATrends(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	require.NoError(t, repo.Create(ctx, mkEvent("1", "CAPA", events.StatusClosed, events.SeverityLow, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("2", "capa", events.StatusOpen, events.SeverityHigh, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("3", "Preventive CAPA", events.StatusOpen, events.SeverityHigh, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("4", "Change Control", events.StatusOpen, events.SeverityHigh, base, nil)))

	rows, err := repo.CAPATrends(ctx)
	require.NoError(t, err)
	assert.Equal(t, []events.TrendRow{
		{Status: "Open", Severity: "High", Count: 2},
		{Status: "Closed", Severity: "Low", Count: 1},
	}, rows)
}
