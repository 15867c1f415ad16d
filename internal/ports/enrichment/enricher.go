package enrichment

import "context"

// Enricher agrega narrativa generada externamente a un payload de analytics.
// Nunca falla: si no hay texto disponible devuelve el payload sin cambios.
type Enricher interface {
	Enrich(ctx context.Context, title string, payload map[string]any) map[string]any
}

// Campos que se agregan al payload cuando hubo texto.
const (
	FieldText  = "gemini_text"
	FieldModel = "model"
)
