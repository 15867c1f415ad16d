package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Type        EventType
	Title       string
	Description string
	Department  string
	Initiator   string
	Status      Status
	Severity    Severity
	Priority    Priority
	DueDate     *time.Time
	Attachments *string
}

// Create exige el registro completo. Status/Severity/Priority no se validan contra
// los valores conocidos: cualquier string no vacío pasa. El trim es solo para el
// chequeo de vacío; los valores se guardan tal cual llegan.
func (s *Service) Create(ctx context.Context, in CreateInput) (Event, error) {
	required := []string{
		string(in.Type),
		in.Title,
		in.Description,
		in.Department,
		in.Initiator,
		string(in.Status),
		string(in.Severity),
		string(in.Priority),
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return Event{}, ErrInvalidInput
		}
	}

	now := s.now().UTC()
	e := Event{
		ID:          uuid.NewString(),
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Department:  in.Department,
		Initiator:   in.Initiator,
		Status:      in.Status,
		Severity:    in.Severity,
		Priority:    in.Priority,
		DueDate:     utcPtr(in.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
		Attachments: in.Attachments,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	return s.repo.List(ctx, filter)
}

// NullableTime distingue "no enviado" de "enviado como null" en un update parcial.
type NullableTime struct {
	Present bool
	Value   *time.Time
}

// NullableString idem para strings que se pueden limpiar.
type NullableString struct {
	Present bool
	Value   *string
}

// UpdateInput: nil / Present=false = no tocar.
type UpdateInput struct {
	Type        *EventType
	Title       *string
	Description *string
	Department  *string
	Initiator   *string
	Status      *Status
	Severity    *Severity
	Priority    *Priority
	DueDate     NullableTime
	Attachments NullableString
}

// Update mergea los campos enviados y refresca UpdatedAt.
// Sin chequeo de concurrencia optimista: gana el último que escribe.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Event, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}

	if in.Type != nil {
		current.Type = *in.Type
	}
	if in.Title != nil {
		current.Title = *in.Title
	}
	if in.Description != nil {
		current.Description = *in.Description
	}
	if in.Department != nil {
		current.Department = *in.Department
	}
	if in.Initiator != nil {
		current.Initiator = *in.Initiator
	}
	if in.Status != nil {
		current.Status = *in.Status
	}
	if in.Severity != nil {
		current.Severity = *in.Severity
	}
	if in.Priority != nil {
		current.Priority = *in.Priority
	}
	if in.DueDate.Present {
		current.DueDate = utcPtr(in.DueDate.Value)
	}
	if in.Attachments.Present {
		current.Attachments = in.Attachments.Value
	}

	// updated_at nunca retrocede, aunque el reloj lo haga.
	now := s.now().UTC()
	if now.After(current.UpdatedAt) {
		current.UpdatedAt = now
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Event{}, err
	}
	return current, nil
}

// Delete es un borrado físico. Devuelve false si no existía.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
