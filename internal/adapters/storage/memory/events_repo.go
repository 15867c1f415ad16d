package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"qms-backend/internal/domain/events"
)

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]events.Event

	// orden de inserción = "orden de storage" para desempates
	order []string
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID: make(map[string]events.Event),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	r.order = append(r.order, e.ID)
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) List(ctx context.Context, filter events.ListFilter) ([]events.Event, error) {
	out := r.collect(func(e events.Event) bool {
		if filter.Status != "" && e.Status != filter.Status {
			return false
		}
		if filter.Severity != "" && e.Severity != filter.Severity {
			return false
		}
		if filter.EventType != "" && e.Type != filter.EventType {
			return false
		}
		return true
	})

	sortByCreatedDesc(out)
	return out, nil
}

func (r *eventRepo) Update(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[e.ID]
	if !ok {
		return events.ErrNotFound
	}
	// created_at es inmutable
	e.CreatedAt = prev.CreatedAt
	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *eventRepo) HighRisk(ctx context.Context, now time.Time) ([]events.Event, error) {
	out := r.collect(func(e events.Event) bool {
		return e.IsHighRisk(now)
	})

	// due_date asc, nulls al final
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

func (r *eventRepo) OpenSince(ctx context.Context, since time.Time) ([]events.Event, error) {
	out := r.collect(func(e events.Event) bool {
		return !e.IsClosed() && !e.CreatedAt.Before(since)
	})

	sortByCreatedDesc(out)
	return out, nil
}

func (r *eventRepo) CAPATrends(ctx context.Context) ([]events.TrendRow, error) {
	type key struct {
		status   events.Status
		severity events.Severity
	}

	counts := map[key]int{}
	keys := make([]key, 0)

	r.mu.RLock()
	for _, id := range r.order {
		e := r.byID[id]
		if !strings.Contains(strings.ToLower(string(e.Type)), "capa") {
			continue
		}
		k := key{status: e.Status, severity: e.Severity}
		if _, seen := counts[k]; !seen {
			keys = append(keys, k)
		}
		counts[k]++
	}
	r.mu.RUnlock()

	out := make([]events.TrendRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, events.TrendRow{Status: k.status, Severity: k.severity, Count: counts[k]})
	}

	// Empates: quedan en orden de primera aparición.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}

func (r *eventRepo) collect(keep func(events.Event) bool) []events.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, id := range r.order {
		e := r.byID[id]
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func sortByCreatedDesc(out []events.Event) {
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
