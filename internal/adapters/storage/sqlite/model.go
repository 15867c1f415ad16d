package sqlite

import (
	"time"

	"qms-backend/internal/domain/events"
)

type eventRow struct {
	ID          string     `gorm:"column:id;type:text;primaryKey"`
	EventType   string     `gorm:"column:event_type;size:50;not null;index"`
	Title       string     `gorm:"column:title;size:150;not null;index"`
	Description string     `gorm:"column:description;type:text;not null"`
	Department  string     `gorm:"column:department;size:80;not null;index"`
	Initiator   string     `gorm:"column:initiator;size:80;not null;index"`
	Status      string     `gorm:"column:status;size:30;not null;index"`
	Severity    string     `gorm:"column:severity;size:30;not null;index"`
	Priority    string     `gorm:"column:priority;size:30;not null;index"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	Attachments *string    `gorm:"column:attachments;size:255"`
}

func (eventRow) TableName() string {
	return "qms_events"
}

func toRow(e events.Event) eventRow {
	return eventRow{
		ID:          e.ID,
		EventType:   string(e.Type),
		Title:       e.Title,
		Description: e.Description,
		Department:  e.Department,
		Initiator:   e.Initiator,
		Status:      string(e.Status),
		Severity:    string(e.Severity),
		Priority:    string(e.Priority),
		DueDate:     utcPtr(e.DueDate),
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
		Attachments: e.Attachments,
	}
}

func (r eventRow) toEvent() events.Event {
	e := events.Event{
		ID:          r.ID,
		Type:        events.EventType(r.EventType),
		Title:       r.Title,
		Description: r.Description,
		Department:  r.Department,
		Initiator:   r.Initiator,
		Status:      events.Status(r.Status),
		Severity:    events.Severity(r.Severity),
		Priority:    events.Priority(r.Priority),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
		Attachments: r.Attachments,
	}
	if r.DueDate != nil {
		t := r.DueDate.UTC()
		e.DueDate = &t
	}
	return e
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
