package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"qms-backend/internal/domain/events"
)

const eventColumns = `
	id, event_type,
	title, description,
	department, initiator,
	status, severity, priority,
	due_date, created_at, updated_at,
	attachments
`

type EventsRepo struct {
	db *sql.DB
}

var _ events.Repository = (*EventsRepo)(nil)

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qms_events (`+eventColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		e.ID,
		string(e.Type),
		e.Title,
		e.Description,
		e.Department,
		e.Initiator,
		string(e.Status),
		string(e.Severity),
		string(e.Priority),
		e.DueDate,
		e.CreatedAt,
		e.UpdatedAt,
		e.Attachments,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM qms_events WHERE id = $1`, id)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Event{}, events.ErrNotFound
		}
		return events.Event{}, err
	}
	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, filter events.ListFilter) ([]events.Event, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + eventColumns + ` FROM qms_events WHERE 1=1`)

	args := []any{}
	argN := 1

	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}
	if filter.Severity != "" {
		sb.WriteString(fmt.Sprintf(" AND severity = $%d", argN))
		args = append(args, string(filter.Severity))
		argN++
	}
	if filter.EventType != "" {
		sb.WriteString(fmt.Sprintf(" AND event_type = $%d", argN))
		args = append(args, string(filter.EventType))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	return r.query(ctx, sb.String(), args...)
}

// Update reescribe todo salvo id y created_at (last-writer-wins).
func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE qms_events SET
			event_type = $2,
			title = $3,
			description = $4,
			department = $5,
			initiator = $6,
			status = $7,
			severity = $8,
			priority = $9,
			due_date = $10,
			updated_at = $11,
			attachments = $12
		WHERE id = $1
	`,
		e.ID,
		string(e.Type),
		e.Title,
		e.Description,
		e.Department,
		e.Initiator,
		string(e.Status),
		string(e.Severity),
		string(e.Priority),
		e.DueDate,
		e.UpdatedAt,
		e.Attachments,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM qms_events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *EventsRepo) HighRisk(ctx context.Context, now time.Time) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM qms_events
		WHERE severity IN ('High', 'Critical')
		   OR (status <> 'Closed' AND due_date IS NOT NULL AND due_date < $1)
		ORDER BY due_date ASC NULLS LAST
	`, now)
}

func (r *EventsRepo) OpenSince(ctx context.Context, since time.Time) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM qms_events
		WHERE status <> 'Closed' AND created_at >= $1
		ORDER BY created_at DESC
	`, since)
}

// CAPATrends: sin orden secundario; los empates dependen del plan de Postgres.
func (r *EventsRepo) CAPATrends(ctx context.Context) ([]events.TrendRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, severity, COUNT(*) AS n
		FROM qms_events
		WHERE event_type ILIKE '%CAPA%'
		GROUP BY status, severity
		ORDER BY n DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("capa trends: %w", err)
	}
	defer rows.Close()

	out := make([]events.TrendRow, 0)
	for rows.Next() {
		var status, severity string
		var n int
		if err := rows.Scan(&status, &severity, &n); err != nil {
			return nil, err
		}
		out = append(out, events.TrendRow{
			Status:   events.Status(status),
			Severity: events.Severity(severity),
			Count:    n,
		})
	}
	return out, rows.Err()
}

func (r *EventsRepo) query(ctx context.Context, q string, args ...any) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (events.Event, error) {
	var e events.Event
	var typ, status, severity, priority string
	var due sql.NullTime
	var attachments sql.NullString

	if err := s.Scan(
		&e.ID,
		&typ,
		&e.Title,
		&e.Description,
		&e.Department,
		&e.Initiator,
		&status,
		&severity,
		&priority,
		&due,
		&e.CreatedAt,
		&e.UpdatedAt,
		&attachments,
	); err != nil {
		return events.Event{}, err
	}

	e.Type = events.EventType(typ)
	e.Status = events.Status(status)
	e.Severity = events.Severity(severity)
	e.Priority = events.Priority(priority)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	if due.Valid {
		t := due.Time.UTC()
		e.DueDate = &t
	}
	if attachments.Valid {
		a := attachments.String
		e.Attachments = &a
	}

	return e, nil
}
