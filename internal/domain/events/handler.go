package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc))

		er.Get("/{eventID}", getEventHandler(svc))
		er.Put("/{eventID}", updateEventHandler(svc))
		er.Delete("/{eventID}", deleteEventHandler(svc))
	})
}

// createEventRequest es el cuerpo para registrar un evento de calidad.
type createEventRequest struct {
	EventType   EventType `json:"event_type" example:"Deviation"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Department  string    `json:"department"`
	Initiator   string    `json:"initiator"`
	Status      Status    `json:"status" example:"Open"`
	Severity    Severity  `json:"severity" example:"Medium"`
	Priority    Priority  `json:"priority" example:"Medium"`
	DueDate     *string   `json:"due_date"` // RFC3339, YYYY-MM-DDTHH:MM o YYYY-MM-DD; opcional
	Attachments *string   `json:"attachments"`
}

// updateEventRequest: punteros para update parcial, nil = no tocar.
// due_date y attachments se pueden limpiar enviando null (ver updateEventHandler).
type updateEventRequest struct {
	EventType   *EventType `json:"event_type"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Department  *string    `json:"department"`
	Initiator   *string    `json:"initiator"`
	Status      *Status    `json:"status"`
	Severity    *Severity  `json:"severity"`
	Priority    *Priority  `json:"priority"`
	DueDate     *string    `json:"due_date"`
	Attachments *string    `json:"attachments"`
}

// eventResponse representa un evento devuelto por la API.
type eventResponse struct {
	ID          string     `json:"id"`
	EventType   EventType  `json:"event_type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Department  string     `json:"department"`
	Initiator   string     `json:"initiator"`
	Status      Status     `json:"status"`
	Severity    Severity   `json:"severity"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Attachments *string    `json:"attachments"`
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Registra un evento de calidad (Deviation, CAPA, Change Control, Audit...). Todos los campos salvo due_date y attachments son obligatorios. Status/severity/priority no se validan contra un enum.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body createEventRequest true "Datos del evento"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / due_date inválido / campos faltantes"
// @Failure 500 {string} string "internal error"
// @Router /events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		due, err := parseOptionalDate(req.DueDate)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			Type:        req.EventType,
			Title:       req.Title,
			Description: req.Description,
			Department:  req.Department,
			Initiator:   req.Initiator,
			Status:      req.Status,
			Severity:    req.Severity,
			Priority:    req.Priority,
			DueDate:     due,
			Attachments: req.Attachments,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Lista eventos ordenados por created_at descendente. Filtros opcionales por match exacto. Sin paginación.
// @Tags events
// @Produce json
// @Param status query string false "Status exacto (ej: Open)"
// @Param severity query string false "Severity exacta (ej: High)"
// @Param event_type query string false "Tipo exacto (ej: CAPA)"
// @Success 200 {array} eventResponse
// @Failure 500 {string} string "internal error"
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			Status:    Status(q.Get("status")),
			Severity:  Severity(q.Get("severity")),
			EventType: EventType(q.Get("event_type")),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Obtener evento
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// updateEventHandler godoc
// @Summary Actualizar evento
// @Description Update parcial: solo cambian los campos enviados. due_date y attachments aceptan null para limpiarlos.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a modificar"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / due_date inválido"
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [put]
func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		// Decodificar a map primero para detectar presencia de due_date/attachments
		// (null = limpiar, ausente = no tocar).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateEventRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			Type:        req.EventType,
			Title:       req.Title,
			Description: req.Description,
			Department:  req.Department,
			Initiator:   req.Initiator,
			Status:      req.Status,
			Severity:    req.Severity,
			Priority:    req.Priority,
		}

		if _, exists := raw["due_date"]; exists {
			due, err := parseOptionalDate(req.DueDate)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.DueDate = NullableTime{Present: true, Value: due}
		}
		if _, exists := raw["attachments"]; exists {
			in.Attachments = NullableString{Present: true, Value: req.Attachments}
		}

		updated, err := svc.Update(r.Context(), eventID, in)
		if err != nil {
			writeLookupError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(updated))
	}
}

// deleteEventHandler godoc
// @Summary Borrar evento
// @Description Borrado físico, sin tombstone.
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} map[string]bool
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [delete]
func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.Delete(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// dueDateLayouts: el front manda datetime-local (sin zona ni segundos).
// Sin zona se interpreta como UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseOptionalDate: nil o "" = sin fecha.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.New("due_date must be RFC3339 or YYYY-MM-DD")
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		EventType:   e.Type,
		Title:       e.Title,
		Description: e.Description,
		Department:  e.Department,
		Initiator:   e.Initiator,
		Status:      e.Status,
		Severity:    e.Severity,
		Priority:    e.Priority,
		DueDate:     e.DueDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Attachments: e.Attachments,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (events/analytics)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
