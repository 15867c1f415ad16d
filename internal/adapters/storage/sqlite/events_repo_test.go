package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qms-backend/internal/domain/events"
)

var base = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *EventsRepo {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "nested", "qms.sqlite"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewEventsRepo(db)
}

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

func TestEventsRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	att := "sop-12.pdf"
	e := mkEvent("1", "CAPA", events.StatusOpen, events.SeverityLow, base, ptr(base.Add(48*time.Hour)))
	e.Attachments = &att
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, e.Title, got.Title)
	assert.True(t, got.CreatedAt.Equal(base))
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(*e.DueDate))
	require.NotNil(t, got.Attachments)
	assert.Equal(t, att, *got.Attachments)

	got.Status = events.StatusClosed
	got.DueDate = nil
	got.Attachments = nil
	got.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, events.StatusClosed, got.Status)
	assert.Nil(t, got.DueDate)
	assert.Nil(t, got.Attachments)
	assert.True(t, got.CreatedAt.Equal(base))
	assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))

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

func TestEventsRepo_List_FiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Create(ctx, mkEvent("old", "CAPA", events.StatusOpen, events.SeverityHigh, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("new", "CAPA", events.StatusClosed, events.SeverityHigh, base.Add(2*time.Hour), nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("mid", "Audit", events.StatusOpen, events.SeverityLow, base.Add(time.Hour), nil)))

	all, err := repo.List(ctx, events.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))

	openHigh, err := repo.List(ctx, events.ListFilter{Status: "Open", Severity: "High", EventType: "CAPA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ids(openHigh))
}

func TestEventsRepo_HighRisk_NullsLast(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Create(ctx, mkEvent("nodue", "Deviation", events.StatusOpen, events.SeverityCritical, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("jan5", "Deviation", events.StatusClosed, events.SeverityHigh, base, ptr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))))
	require.NoError(t, repo.Create(ctx, mkEvent("jan1", "Deviation", events.StatusOpen, events.SeverityLow, base, ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))))
	require.NoError(t, repo.Create(ctx, mkEvent("closed-low", "Deviation", events.StatusClosed, events.SeverityLow, base, ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))))
	require.NoError(t, repo.Create(ctx, mkEvent("future-low", "Deviation", events.StatusOpen, events.SeverityLow, base, ptr(base.Add(24*time.Hour)))))

	items, err := repo.HighRisk(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"jan1", "jan5", "nodue"}, ids(items))
}

func TestEventsRepo_OpenSince(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Create(ctx, mkEvent("in", "Audit", events.StatusInProgress, events.SeverityLow, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("closed", "Audit", events.StatusClosed, events.SeverityLow, base, nil)))
	require.NoError(t, repo.Create(ctx, mkEvent("before", "Audit", events.StatusOpen, events.SeverityLow, base.Add(-time.Hour), nil)))

	items, err := repo.OpenSince(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"in"}, ids(items))
}

func TestEventsRepo_CAPATrends(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

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
