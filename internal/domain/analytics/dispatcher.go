package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"qms-backend/internal/domain/events"
	"qms-backend/internal/platform/logger"
	"qms-backend/internal/ports/enrichment"
)

const (
	ActionHighRisk         = "high_risk"
	ActionSummarizeOpen    = "summarize_open_last_month"
	ActionSuggestNextSteps = "suggest_next_steps"
	ActionCAPATrends       = "capa_trends"
	ActionClosureDraft     = "closure_draft"
)

// Actions en el orden en que se listan en el error de acción desconocida.
var Actions = []string{
	ActionHighRisk,
	ActionSummarizeOpen,
	ActionSuggestNextSteps,
	ActionCAPATrends,
	ActionClosureDraft,
}

// Request es una acción + parámetros opcionales.
type Request struct {
	Action        string
	EventID       string
	TimeframeDays int
}

// Dispatcher rutea una acción a una consulta del Engine y pasa el resultado
// por el Enricher. Todos los errores vuelven in-band como {"error": "..."}.
type Dispatcher struct {
	engine   *Engine
	enricher enrichment.Enricher
	log      logger.Logger
}

// NewDispatcher: enricher puede ser nil (sin enriquecimiento).
func NewDispatcher(engine *Engine, enricher enrichment.Enricher, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		engine:   engine,
		enricher: enricher,
		log:      log.With(map[string]any{"component": "analytics"}),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) map[string]any {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	eventID := strings.TrimSpace(req.EventID)

	switch action {
	case ActionHighRisk:
		items, err := d.engine.HighRisk(ctx)
		if err != nil {
			return d.internalError(action, err)
		}
		out := make([]highRiskItem, 0, len(items))
		for _, e := range items {
			out = append(out, toHighRiskItem(e))
		}
		return d.wrap(ctx, "High-risk events", map[string]any{
			"items":    out,
			"count":    len(out),
			"criteria": "High/Critical severity or open & overdue",
		})

	case ActionSummarizeOpen:
		sum, err := d.engine.OpenInWindow(ctx, req.TimeframeDays)
		if err != nil {
			return d.internalError(action, err)
		}
		return d.wrap(ctx, "Open events (last month)", map[string]any{
			"timeframe_days":     sum.TimeframeDays,
			"counts_by_severity": sum.CountsBySeverity,
			"counts_by_status":   sum.CountsByStatus,
			"total_open":         len(sum.Items),
		})

	case ActionSuggestNextSteps:
		if eventID == "" {
			return errorPayload(fmt.Sprintf("Missing 'event_id' for %s", action))
		}
		ns, err := d.engine.SuggestNextSteps(ctx, eventID)
		if err != nil {
			return d.lookupError(action, eventID, err)
		}
		ref := toEventRef(ns.Event)
		ref.Priority = string(ns.Event.Priority)
		return d.wrap(ctx, fmt.Sprintf("Next steps for Event #%s", ns.Event.ID), map[string]any{
			"event":                ref,
			"suggested_next_steps": ns.Steps,
		})

	case ActionCAPATrends:
		rows, err := d.engine.CAPATrends(ctx)
		if err != nil {
			return d.internalError(action, err)
		}
		return d.wrap(ctx, "CAPA trends", map[string]any{
			"trend_table": rows,
			"note":        "Counts for CAPA events grouped by status x severity",
		})

	case ActionClosureDraft:
		if eventID == "" {
			return errorPayload(fmt.Sprintf("Missing 'event_id' for %s", action))
		}
		cd, err := d.engine.ClosureDraft(ctx, eventID)
		if err != nil {
			return d.lookupError(action, eventID, err)
		}
		return d.wrap(ctx, fmt.Sprintf("Closure draft for Event #%s", cd.Event.ID), map[string]any{
			"event":                     toEventRef(cd.Event),
			"proposed_closure_template": cd.Template,
		})
	}

	return errorPayload("Unknown action. Use one of: " + strings.Join(Actions, ", "))
}

// wrap agrega el título de la tarjeta y pasa por el Enricher.
func (d *Dispatcher) wrap(ctx context.Context, title string, payload map[string]any) map[string]any {
	payload["title"] = title
	if d.enricher == nil {
		return payload
	}
	return d.enricher.Enrich(ctx, title, payload)
}

func (d *Dispatcher) lookupError(action, eventID string, err error) map[string]any {
	if errors.Is(err, events.ErrNotFound) {
		return errorPayload(fmt.Sprintf("Event %s not found", eventID))
	}
	return d.internalError(action, err)
}

func (d *Dispatcher) internalError(action string, err error) map[string]any {
	d.log.Error("analytics query failed", map[string]any{"action": action, "err": err.Error()})
	return errorPayload("internal error")
}

func errorPayload(msg string) map[string]any {
	return map[string]any{"error": msg}
}

type highRiskItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Severity   string  `json:"severity"`
	Status     string  `json:"status"`
	Department string  `json:"department"`
	DueDate    *string `json:"due_date"`
}

func toHighRiskItem(e events.Event) highRiskItem {
	item := highRiskItem{
		ID:         e.ID,
		Title:      e.Title,
		Severity:   string(e.Severity),
		Status:     string(e.Status),
		Department: e.Department,
	}
	if e.DueDate != nil {
		s := e.DueDate.UTC().Format(time.RFC3339)
		item.DueDate = &s
	}
	return item
}

// eventRef es la vista resumida del evento que viaja en los payloads.
type eventRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Severity   string `json:"severity"`
	Priority   string `json:"priority,omitempty"`
	Department string `json:"department"`
}

func toEventRef(e events.Event) eventRef {
	return eventRef{
		ID:         e.ID,
		Title:      e.Title,
		Type:       string(e.Type),
		Status:     string(e.Status),
		Severity:   string(e.Severity),
		Department: e.Department,
	}
}
