package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"qms-backend/internal/platform/httpclient"
	"qms-backend/internal/platform/logger"
	"qms-backend/internal/ports/enrichment"
)

const (
	DefaultModel   = "gemini-2.5-pro"
	DefaultTimeout = 40 * time.Second
)

// DefaultEndpoints: estable primero, beta como fallback.
func DefaultEndpoints() []string {
	return []string{
		"https://generativelanguage.googleapis.com/v1",
		"https://generativelanguage.googleapis.com/v1beta",
	}
}

const systemInstruction = "You are a Quality Management System (QMS) assistant for a life-science company. " +
	"Write a concise response with bullet points, neutral/regulated tone, and actionable clarity. "

// Config del gateway. Se inyecta; el gateway no lee env vars.
type Config struct {
	APIKey string
	Model  string

	// Base URLs en orden de intento; a cada una se le agrega /models/{model}:generateContent.
	Endpoints []string

	// Timeout por intento.
	Timeout time.Duration

	// Opcional, para tests.
	Transport http.RoundTripper
}

type Gateway struct {
	apiKey    string
	model     string
	endpoints []string
	http      *httpclient.Client
	log       logger.Logger
}

var _ enrichment.Enricher = (*Gateway)(nil)

func New(cfg Config, log logger.Logger) *Gateway {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	endpoints := make([]string, 0, len(cfg.Endpoints))
	for _, e := range cfg.Endpoints {
		if e = strings.TrimRight(strings.TrimSpace(e), "/"); e != "" {
			endpoints = append(endpoints, e)
		}
	}
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Gateway{
		apiKey:    strings.TrimSpace(cfg.APIKey),
		model:     model,
		endpoints: endpoints,
		http:      httpclient.NewWithTransport(timeout, cfg.Transport),
		log:       log.With(map[string]any{"component": "gemini"}),
	}
}

func (g *Gateway) IsConfigured() bool {
	return g != nil && g.apiKey != ""
}

// Enrich devuelve payload + gemini_text/model si hubo texto; si no, payload tal cual.
func (g *Gateway) Enrich(ctx context.Context, title string, payload map[string]any) map[string]any {
	if !g.IsConfigured() {
		return payload
	}
	text, model, ok := g.Generate(ctx, buildPrompt(title, payload))
	if !ok {
		return payload
	}

	out := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		out[k] = v
	}
	out[enrichment.FieldText] = text
	out[enrichment.FieldModel] = model
	return out
}

// Generate prueba los endpoints en orden y se queda con el primer éxito.
func (g *Gateway) Generate(ctx context.Context, prompt string) (text string, model string, ok bool) {
	if !g.IsConfigured() {
		return "", "", false
	}

	for _, base := range g.endpoints {
		res := g.attempt(ctx, base, prompt)
		switch res.kind {
		case outcomeSuccess:
			return res.text, res.model, true
		case outcomeNotFound:
			g.log.Info("endpoint not available, trying next", map[string]any{"endpoint": base, "model": g.model})
		case outcomeTransient:
			g.log.Warn("endpoint attempt failed, trying next", map[string]any{"endpoint": base, "model": g.model, "err": res.err.Error()})
		}
	}

	return "", "", false
}

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeNotFound
	outcomeTransient
)

type outcome struct {
	kind  outcomeKind
	text  string
	model string
	err   error
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Gateway) attempt(ctx context.Context, base, prompt string) outcome {
	fullURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, g.model, url.QueryEscape(g.apiKey))

	body := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	var resp generateResponse
	if err := g.http.PostJSON(ctx, fullURL, nil, body, &resp); err != nil {
		if status, ok := httpclient.StatusCode(err); ok && status == http.StatusNotFound {
			return outcome{kind: outcomeNotFound}
		}
		// el error de red incluye la URL (con la key): no se loguea tal cual
		return outcome{kind: outcomeTransient, err: redact(err, g.apiKey)}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return outcome{kind: outcomeTransient, err: errors.New("malformed response: no candidates")}
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return outcome{kind: outcomeTransient, err: errors.New("malformed response: empty text")}
	}

	return outcome{kind: outcomeSuccess, text: text, model: g.model}
}

// buildPrompt: el título va en su propia línea; el JSON de contexto no lo repite.
func buildPrompt(title string, payload map[string]any) string {
	ctxData := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "title" {
			continue
		}
		ctxData[k] = v
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(ctxData)

	return systemInstruction +
		"Card Title: " + title + "\n" +
		"Context JSON:\n" +
		strings.TrimRight(buf.String(), "\n")
}

func redact(err error, secret string) error {
	if secret == "" {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), url.QueryEscape(secret), "REDACTED")
	return errors.New(strings.ReplaceAll(msg, secret, "REDACTED"))
}
