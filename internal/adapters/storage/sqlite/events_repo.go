package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"qms-backend/internal/domain/events"
)

type EventsRepo struct {
	db *gorm.DB
}

var _ events.Repository = (*EventsRepo)(nil)

func NewEventsRepo(db *gorm.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	row := toRow(e)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	var row eventRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return events.Event{}, events.ErrNotFound
		}
		return events.Event{}, fmt.Errorf("query event by id: %w", err)
	}
	return row.toEvent(), nil
}

func (r *EventsRepo) List(ctx context.Context, filter events.ListFilter) ([]events.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventRow{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", string(filter.Severity))
	}
	if filter.EventType != "" {
		q = q.Where("event_type = ?", string(filter.EventType))
	}

	return find(q.Order("created_at DESC"))
}

func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	row := toRow(e)
	res := r.db.WithContext(ctx).Model(&eventRow{}).Where("id = ?", row.ID).Updates(map[string]any{
		"event_type":  row.EventType,
		"title":       row.Title,
		"description": row.Description,
		"department":  row.Department,
		"initiator":   row.Initiator,
		"status":      row.Status,
		"severity":    row.Severity,
		"priority":    row.Priority,
		"due_date":    row.DueDate,
		"updated_at":  row.UpdatedAt,
		"attachments": row.Attachments,
	})
	if res.Error != nil {
		return fmt.Errorf("update event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&eventRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete event: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *EventsRepo) HighRisk(ctx context.Context, now time.Time) ([]events.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventRow{}).
		Where("severity IN ?", []string{string(events.SeverityHigh), string(events.SeverityCritical)}).
		Or("status <> ? AND due_date IS NOT NULL AND due_date < ?", string(events.StatusClosed), now.UTC()).
		// sqlite ordena NULL primero en ASC
		Order("due_date IS NULL, due_date ASC")

	return find(q)
}

func (r *EventsRepo) OpenSince(ctx context.Context, since time.Time) ([]events.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventRow{}).
		Where("status <> ? AND created_at >= ?", string(events.StatusClosed), since.UTC()).
		Order("created_at DESC")

	return find(q)
}

func (r *EventsRepo) CAPATrends(ctx context.Context) ([]events.TrendRow, error) {
	var rows []struct {
		Status   string
		Severity string
		Count    int
	}

	err := r.db.WithContext(ctx).Model(&eventRow{}).
		Select("status, severity, COUNT(*) AS count").
		Where("LOWER(event_type) LIKE ?", "%capa%").
		Group("status, severity").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("capa trends: %w", err)
	}

	out := make([]events.TrendRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, events.TrendRow{
			Status:   events.Status(row.Status),
			Severity: events.Severity(row.Severity),
			Count:    row.Count,
		})
	}
	return out, nil
}

func find(q *gorm.DB) ([]events.Event, error) {
	var rows []eventRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	out := make([]events.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEvent())
	}
	return out, nil
}
