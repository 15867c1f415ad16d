package events

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) (bool, error)

	// Consultas de solo lectura para analytics.
	HighRisk(ctx context.Context, now time.Time) ([]Event, error)
	OpenSince(ctx context.Context, since time.Time) ([]Event, error)
	CAPATrends(ctx context.Context) ([]TrendRow, error)
}

// ListFilter: match exacto; campo vacío = sin filtro.
type ListFilter struct {
	Status    Status
	Severity  Severity
	EventType EventType
}

// TrendRow es una fila de conteo (status x severity) para eventos CAPA.
type TrendRow struct {
	Status   Status   `json:"status"`
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}
