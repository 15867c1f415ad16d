package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, d *Dispatcher) {
	r.Post("/ai/analyze", analyzeHandler(d))
}

// analyzeRequest es el cuerpo de POST /ai/analyze.
// event_id se acepta como string o número (el front manda Number).
type analyzeRequest struct {
	Action        string          `json:"action" enums:"high_risk,summarize_open_last_month,suggest_next_steps,capa_trends,closure_draft"`
	EventID       json.RawMessage `json:"event_id" swaggertype:"string"`
	TimeframeDays *int            `json:"timeframe_days" example:"30"`
}

// analyzeHandler godoc
// @Summary Ejecutar acción de analytics
// @Description Corre una de las acciones (high_risk, summarize_open_last_month, suggest_next_steps, capa_trends, closure_draft) y, si hay credencial configurada, agrega gemini_text y model. Los errores de acción (faltante, desconocida, evento inexistente) vuelven como 200 con {"error": "..."}.
// @Tags ai
// @Accept json
// @Produce json
// @Param payload body analyzeRequest true "Acción y parámetros"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {string} string "invalid json"
// @Router /ai/analyze [post]
func analyzeHandler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		days := DefaultTimeframeDays
		if req.TimeframeDays != nil && *req.TimeframeDays > 0 {
			days = *req.TimeframeDays
		}

		out := d.Dispatch(r.Context(), Request{
			Action:        req.Action,
			EventID:       rawID(req.EventID),
			TimeframeDays: days,
		})

		writeJSON(w, http.StatusOK, out)
	}
}

// rawID normaliza event_id: "abc" -> abc, 12 -> 12, null/ausente/0 -> "".
// El 0 numérico cuenta como faltante (nunca es un id válido); el string "0" no.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil && f == 0 {
			return ""
		}
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return ""
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (events/analytics)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
