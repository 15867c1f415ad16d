package events

import "time"

// Event es un registro de calidad/compliance (desviación, CAPA, control de cambios, auditoría...).
type Event struct {
	ID string

	Type        EventType
	Title       string
	Description string
	Department  string
	Initiator   string

	Status   Status
	Severity Severity
	Priority Priority

	DueDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Referencia opaca (path o URL).
	Attachments *string
}

// IsClosed compara exacto, igual que los filtros en SQL.
func (e Event) IsClosed() bool {
	return e.Status == StatusClosed
}

// IsHighSeverity: High o Critical.
func (e Event) IsHighSeverity() bool {
	return e.Severity == SeverityHigh || e.Severity == SeverityCritical
}

// IsOverdue: abierto, con due_date y vencido respecto de now.
func (e Event) IsOverdue(now time.Time) bool {
	return !e.IsClosed() && e.DueDate != nil && e.DueDate.Before(now)
}

// IsHighRisk es el predicado de high_risk.
func (e Event) IsHighRisk(now time.Time) bool {
	return e.IsHighSeverity() || e.IsOverdue(now)
}
