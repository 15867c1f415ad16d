package events

// Los valores conocidos son convención: el store acepta cualquier string.

// EventType es texto libre; estos son los usuales.
type EventType string

const (
	EventTypeDeviation     EventType = "Deviation"
	EventTypeCAPA          EventType = "CAPA"
	EventTypeChangeControl EventType = "Change Control"
	EventTypeAudit         EventType = "Audit"
)

// Status del evento.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In-Progress"
	StatusClosed     Status = "Closed"
)

// Severity del evento.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Priority del evento.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)
