package analytics

import (
	"context"
	"time"

	"qms-backend/internal/domain/events"
)

// DefaultTimeframeDays aplica cuando no se indica ventana (o es <= 0).
const DefaultTimeframeDays = 30

// closureSummaryMax: corte duro en caracteres (runes), no respeta palabras.
const closureSummaryMax = 600

const escalationStep = "Escalate to QA lead; initiate immediate containment."

var baseNextSteps = []string{
	"Confirm root cause using 5-Why or Fishbone.",
	"Assign action owner with target due date.",
	"Update status to In-Progress; define interim controls.",
	"Attach supporting evidence (SOP refs, logs, screenshots).",
	"Plan effectiveness check and acceptance criteria.",
}

// Engine corre las consultas de solo lectura sobre el store.
type Engine struct {
	repo events.Repository
	now  func() time.Time
}

func NewEngine(repo events.Repository) *Engine {
	return &Engine{
		repo: repo,
		now:  time.Now,
	}
}

// HighRisk: severity High/Critical, o abierto y vencido. Orden due_date asc, nulls al final.
func (e *Engine) HighRisk(ctx context.Context) ([]events.Event, error) {
	return e.repo.HighRisk(ctx, e.now().UTC())
}

// OpenSummary es el resultado de OpenInWindow.
type OpenSummary struct {
	TimeframeDays    int
	Items            []events.Event
	CountsBySeverity map[string]int
	CountsByStatus   map[string]int
}

// OpenInWindow: no cerrados creados en los últimos `days` días, más conteos
// independientes por severity y por status.
func (e *Engine) OpenInWindow(ctx context.Context, days int) (OpenSummary, error) {
	if days <= 0 {
		days = DefaultTimeframeDays
	}
	since := windowStart(e.now().UTC(), days)

	items, err := e.repo.OpenSince(ctx, since)
	if err != nil {
		return OpenSummary{}, err
	}

	bySeverity := map[string]int{}
	byStatus := map[string]int{}
	for _, ev := range items {
		bySeverity[string(ev.Severity)]++
		byStatus[string(ev.Status)]++
	}

	return OpenSummary{
		TimeframeDays:    days,
		Items:            items,
		CountsBySeverity: bySeverity,
		CountsByStatus:   byStatus,
	}, nil
}

// earliestWindowStart: año 1, dentro del rango de Postgres y con orden textual válido en sqlite.
var earliestWindowStart = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)

// windowStart resta days días calendario a now. time.Duration desborda pasados
// ~106751 días, así que se usa AddDate y se acota al año 1.
func windowStart(now time.Time, days int) time.Time {
	// cota gruesa: más días que los que hay desde el año 1
	if days > now.Year()*366 {
		return earliestWindowStart
	}
	since := now.AddDate(0, 0, -days)
	if since.Before(earliestWindowStart) {
		return earliestWindowStart
	}
	return since
}

// CAPATrends: conteo (status, severity) de eventos cuyo tipo contiene "capa".
func (e *Engine) CAPATrends(ctx context.Context) ([]events.TrendRow, error) {
	return e.repo.CAPATrends(ctx)
}

// NextSteps es la tabla de decisión estática para un evento.
type NextSteps struct {
	Event events.Event
	Steps []string
}

func (e *Engine) SuggestNextSteps(ctx context.Context, id string) (NextSteps, error) {
	ev, err := e.lookup(ctx, id)
	if err != nil {
		return NextSteps{}, err
	}

	steps := make([]string, 0, len(baseNextSteps)+1)
	if ev.IsHighSeverity() {
		steps = append(steps, escalationStep)
	}
	steps = append(steps, baseNextSteps...)

	return NextSteps{Event: ev, Steps: steps}, nil
}

// ClosureTemplate es la propuesta de cierre, pendiente de completar por una persona.
type ClosureTemplate struct {
	Summary            string   `json:"summary"`
	ActionsTaken       []string `json:"actions_taken"`
	Verification       string   `json:"verification"`
	EffectivenessCheck string   `json:"effectiveness_check"`
	ProposedStatus     string   `json:"proposed_status"`
}

type ClosureDraft struct {
	Event    events.Event
	Template ClosureTemplate
}

func (e *Engine) ClosureDraft(ctx context.Context, id string) (ClosureDraft, error) {
	ev, err := e.lookup(ctx, id)
	if err != nil {
		return ClosureDraft{}, err
	}

	return ClosureDraft{
		Event: ev,
		Template: ClosureTemplate{
			Summary:            truncateRunes(ev.Description, closureSummaryMax),
			ActionsTaken:       []string{"[list actions]"},
			Verification:       "Evidence attached and reviewed.",
			EffectivenessCheck: "Scheduled within 30 days of closure.",
			ProposedStatus:     string(events.StatusClosed),
		},
	}, nil
}

func (e *Engine) lookup(ctx context.Context, id string) (events.Event, error) {
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}
	return e.repo.GetByID(ctx, id)
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
